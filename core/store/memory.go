package store

import (
	"sync"
	"time"

	"github.com/fieldops/planboard/core/model"
)

// MemoryAssets is the in-memory AssetStore. Insertion order is preserved
// for All(), matching what the board and backlog expect from the store.
type MemoryAssets struct {
	mu    sync.RWMutex
	order []string
	data  map[string]model.Asset
}

func NewMemoryAssets() *MemoryAssets {
	return &MemoryAssets{data: map[string]model.Asset{}}
}

func (s *MemoryAssets) Put(a model.Asset) {
	s.mu.Lock()
	if _, ok := s.data[a.ID]; !ok {
		s.order = append(s.order, a.ID)
	}
	s.data[a.ID] = a
	s.mu.Unlock()
}

func (s *MemoryAssets) Get(id string) (model.Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.data[id]
	return a, ok
}

func (s *MemoryAssets) All() []model.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Asset, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out
}

// MemoryTechnicians is the in-memory TechnicianStore.
type MemoryTechnicians struct {
	mu    sync.RWMutex
	order []string
	data  map[string]model.Technician
}

func NewMemoryTechnicians() *MemoryTechnicians {
	return &MemoryTechnicians{data: map[string]model.Technician{}}
}

func (s *MemoryTechnicians) Put(t model.Technician) {
	s.mu.Lock()
	if _, ok := s.data[t.ID]; !ok {
		s.order = append(s.order, t.ID)
	}
	s.data[t.ID] = t
	s.mu.Unlock()
}

func (s *MemoryTechnicians) Get(id string) (model.Technician, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.data[id]
	return t, ok
}

func (s *MemoryTechnicians) All() []model.Technician {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Technician, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out
}

func (s *MemoryTechnicians) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return nil
	}
	delete(s.data, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryPackages is the in-memory PackageStore.
type MemoryPackages struct {
	mu    sync.RWMutex
	order []string
	data  map[string]model.WorkPackage
}

func NewMemoryPackages() *MemoryPackages {
	return &MemoryPackages{data: map[string]model.WorkPackage{}}
}

func (s *MemoryPackages) Put(p model.WorkPackage) {
	s.mu.Lock()
	if _, ok := s.data[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.data[p.ID] = p
	s.mu.Unlock()
}

func (s *MemoryPackages) Get(id string) (model.WorkPackage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[id]
	return p, ok
}

func (s *MemoryPackages) All() []model.WorkPackage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.WorkPackage, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out
}

// MemoryAssignments is the in-memory AssignmentStore.
type MemoryAssignments struct {
	mu    sync.RWMutex
	order []string
	data  map[string]model.Assignment
}

func NewMemoryAssignments() *MemoryAssignments {
	return &MemoryAssignments{data: map[string]model.Assignment{}}
}

func (s *MemoryAssignments) Put(a model.Assignment) {
	s.mu.Lock()
	if _, ok := s.data[a.ID]; !ok {
		s.order = append(s.order, a.ID)
	}
	s.data[a.ID] = a
	s.mu.Unlock()
}

func (s *MemoryAssignments) Get(id string) (model.Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.data[id]
	return a, ok
}

func (s *MemoryAssignments) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return
	}
	delete(s.data, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *MemoryAssignments) All() []model.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Assignment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out
}

func (s *MemoryAssignments) ForDay(technicianID string, date time.Time) []model.Assignment {
	day := model.Day(date)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Assignment
	for _, id := range s.order {
		a := s.data[id]
		if a.TechnicianID == technicianID && a.Date.Equal(day) {
			out = append(out, a)
		}
	}
	return out
}

// NewMemoryState wires the four in-memory stores into a State.
func NewMemoryState() State {
	return State{
		Assets:      NewMemoryAssets(),
		Technicians: NewMemoryTechnicians(),
		Packages:    NewMemoryPackages(),
		Assignments: NewMemoryAssignments(),
	}
}
