package report

import (
	"math"
	"testing"
	"time"

	"github.com/fieldops/planboard/core/model"
)

func TestUtilizeLoads(t *testing.T) {
	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC) // Monday
	to := from.AddDate(0, 0, 4)                          // Friday, 5 workdays
	techs := []model.Technician{
		{ID: "t1", Name: "Anna", MaxHours: 8},
		{ID: "t2", Name: "Ben", MaxHours: 8},
	}
	asns := []model.Assignment{
		{ID: "a1", TechnicianID: "t1", Date: from, Duration: 4},
		{ID: "a2", TechnicianID: "t1", Date: from.AddDate(0, 0, 1), Duration: 8},
		{ID: "a3", TechnicianID: "t1", Date: from.AddDate(0, 0, 7), Duration: 8}, // outside range
		{ID: "a4", TechnicianID: "t2", Date: from, Duration: 8},
	}
	s := Utilize(techs, asns, from, to)
	if s.PerTechnician[0].ScheduledHours != 12 || s.PerTechnician[0].CapacityHours != 40 {
		t.Fatalf("t1: %+v", s.PerTechnician[0])
	}
	if got := s.PerTechnician[0].Load; math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("t1 load = %v", got)
	}
	if got := s.MeanLoad; math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("mean load = %v", got)
	}
	if s.StdDevLoad <= 0 {
		t.Fatalf("std dev = %v", s.StdDevLoad)
	}
}

func TestUtilizeWeekendsCarryNoCapacity(t *testing.T) {
	sat := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	techs := []model.Technician{{ID: "t1", Name: "Anna", MaxHours: 8}}
	s := Utilize(techs, nil, sat, sat.AddDate(0, 0, 1))
	if s.PerTechnician[0].CapacityHours != 0 || s.PerTechnician[0].Load != 0 {
		t.Fatalf("weekend capacity: %+v", s.PerTechnician[0])
	}
}

func TestUtilizeEmptyTechnicianSet(t *testing.T) {
	s := Utilize(nil, nil, time.Now(), time.Now())
	if s.MeanLoad != 0 || s.StdDevLoad != 0 || len(s.PerTechnician) != 0 {
		t.Fatalf("empty summary: %+v", s)
	}
}
