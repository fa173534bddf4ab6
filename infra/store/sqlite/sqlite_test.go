package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fieldops/planboard/core/model"
	"github.com/fieldops/planboard/core/store"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "planboard.db"), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAssetRoundTrip(t *testing.T) {
	st := openTestDB(t).State()
	next := day(2024, time.July, 1)
	st.Assets.Put(model.Asset{
		ID: "mach1", ParentID: "stat1", Name: "Presse 300t",
		Category: model.CategoryMachine,
		Machine: &model.MachineInfo{
			Manufacturer: "Schuler", Model: "P300",
			NextServiceDate: &next, Health: model.HealthWarning,
			ServiceSize: model.SizeL,
		},
	})
	got, ok := st.Assets.Get("mach1")
	if !ok {
		t.Fatalf("asset not found")
	}
	if got.Machine == nil || !got.Machine.NextServiceDate.Equal(next) {
		t.Fatalf("machine info lost: %+v", got.Machine)
	}
	if got.Size() != model.SizeL {
		t.Fatalf("Size() = %v, want L", got.Size())
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	st := openTestDB(t).State()
	for _, id := range []string{"c", "a", "b"} {
		st.Technicians.Put(model.Technician{ID: id, Name: id})
	}
	// Updating an existing row must not move it to the end.
	st.Technicians.Put(model.Technician{ID: "c", Name: "C2"})
	all := st.Technicians.All()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	want := []string{"c", "a", "b"}
	for i, tech := range all {
		if tech.ID != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, tech.ID, want[i])
		}
	}
	if all[0].Name != "C2" {
		t.Fatalf("update not applied: %s", all[0].Name)
	}
}

func TestForDayIgnoresIntraDayTime(t *testing.T) {
	st := openTestDB(t).State()
	st.Assignments.Put(model.Assignment{
		ID: "asn1", TechnicianID: "t1",
		Date: time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC),
	})
	st.Assignments.Put(model.Assignment{
		ID: "asn2", TechnicianID: "t1", Date: day(2024, time.June, 11),
	})
	st.Assignments.Put(model.Assignment{
		ID: "asn3", TechnicianID: "t2", Date: day(2024, time.June, 10),
	})

	got := st.Assignments.ForDay("t1", day(2024, time.June, 10))
	if len(got) != 1 || got[0].ID != "asn1" {
		t.Fatalf("ForDay = %+v, want [asn1]", got)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	st := openTestDB(t).State()
	st.Assignments.Put(model.Assignment{ID: "asn1", TechnicianID: "t1", Date: day(2024, time.June, 10)})
	st.Assignments.Delete("asn1")
	st.Assignments.Delete("asn1")
	if _, ok := st.Assignments.Get("asn1"); ok {
		t.Fatalf("assignment still present after delete")
	}
}

func TestDeleteTechnicianRejectedWhileAssigned(t *testing.T) {
	st := openTestDB(t).State()
	st.Technicians.Put(model.Technician{ID: "t1", Name: "Anna"})
	st.Assignments.Put(model.Assignment{ID: "asn1", TechnicianID: "t1", Date: day(2024, time.June, 10)})

	if err := st.DeleteTechnician("t1"); err != store.ErrTechnicianAssigned {
		t.Fatalf("err = %v, want ErrTechnicianAssigned", err)
	}
	st.Assignments.Delete("asn1")
	if err := st.DeleteTechnician("t1"); err != nil {
		t.Fatalf("delete after unassign: %v", err)
	}
	if _, ok := st.Technicians.Get("t1"); ok {
		t.Fatalf("technician still present")
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planboard.db")
	d, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	d.State().Packages.Put(model.WorkPackage{ID: "wp1", Name: "Inspektion", Duration: 3})
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	d2, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = d2.Close() }()
	p, ok := d2.State().Packages.Get("wp1")
	if !ok || p.Duration != 3 {
		t.Fatalf("package lost across reopen: %+v ok=%v", p, ok)
	}
}
