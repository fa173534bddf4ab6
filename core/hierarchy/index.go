package hierarchy

import (
	"errors"
	"fmt"

	"github.com/fieldops/planboard/core/model"
)

// ErrNotFound is returned when an asset id does not resolve in the index.
var ErrNotFound = errors.New("asset not found")

// Index is a snapshot view over a flat asset collection. Nodes live in an
// arena in store insertion order; parent and child lookups go through
// prebuilt maps instead of rescanning the slice.
type Index struct {
	nodes    []model.Asset
	byID     map[string]int
	children map[string][]int
}

// NewIndex builds an Index from the store's asset snapshot. The slice is
// not copied; callers hand the index an exclusive snapshot.
func NewIndex(assets []model.Asset) *Index {
	idx := &Index{
		nodes:    assets,
		byID:     make(map[string]int, len(assets)),
		children: make(map[string][]int),
	}
	for i, a := range assets {
		idx.byID[a.ID] = i
		if a.ParentID != "" {
			idx.children[a.ParentID] = append(idx.children[a.ParentID], i)
		}
	}
	return idx
}

// Get resolves a single asset by id.
func (x *Index) Get(id string) (model.Asset, bool) {
	i, ok := x.byID[id]
	if !ok {
		return model.Asset{}, false
	}
	return x.nodes[i], true
}

// ChildrenOf returns the direct children of id in store insertion order.
func (x *Index) ChildrenOf(id string) []model.Asset {
	idxs := x.children[id]
	out := make([]model.Asset, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, x.nodes[i])
	}
	return out
}

// BreadcrumbPath walks parent references from id up to its root and
// returns the chain ordered root-first. Cyclic parent chains are a store
// integrity violation and are not handled here; the walk assumes a strict
// tree.
func (x *Index) BreadcrumbPath(id string) ([]model.Asset, error) {
	i, ok := x.byID[id]
	if !ok {
		return nil, fmt.Errorf("breadcrumb %q: %w", id, ErrNotFound)
	}
	var path []model.Asset
	for {
		path = append(path, x.nodes[i])
		parent := x.nodes[i].ParentID
		if parent == "" {
			break
		}
		pi, ok := x.byID[parent]
		if !ok {
			// Dangling parent reference: the chain ends at the last
			// resolvable node.
			break
		}
		i = pi
	}
	// reverse to root-first order
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path, nil
}

// CollectDescendantParts gathers every part-category descendant of id.
// Non-part descendants are descended through, not collected.
func (x *Index) CollectDescendantParts(id string) []model.Asset {
	var parts []model.Asset
	x.collectParts(id, &parts)
	return parts
}

func (x *Index) collectParts(id string, parts *[]model.Asset) {
	for _, i := range x.children[id] {
		child := x.nodes[i]
		if child.Category == model.CategoryPart {
			*parts = append(*parts, child)
			continue
		}
		x.collectParts(child.ID, parts)
	}
}
