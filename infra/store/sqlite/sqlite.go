// Package sqlite persists the planning state to a SQLite database. Each
// entity is stored as a JSON record keyed by its ID; fields the day view
// filters on are broken out into indexed columns. Upserts keep the
// original rowid, so reads in rowid order reproduce insertion order the
// same way the memory stores do.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fieldops/planboard/core/logger"
	"github.com/fieldops/planboard/core/model"
	"github.com/fieldops/planboard/core/store"
)

const dateFormat = "2006-01-02"

var schema = `
CREATE TABLE IF NOT EXISTS assets (
    id TEXT PRIMARY KEY,
    record TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS technicians (
    id TEXT PRIMARY KEY,
    record TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS work_packages (
    id TEXT PRIMARY KEY,
    record TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assignments (
    id TEXT PRIMARY KEY,
    technician_id TEXT NOT NULL,
    date TEXT NOT NULL,
    record TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assignments_day ON assignments(technician_id, date);
`

// DB wraps a SQLite database holding the full planning state.
type DB struct {
	db  *sql.DB
	log logger.Logger
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string, log logger.Logger) (*DB, error) {
	if log == nil {
		log = &logger.NopLogger{}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &DB{db: db, log: log}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error { return d.db.Close() }

// State returns the four stores backed by this database.
func (d *DB) State() store.State {
	return store.State{
		Assets:      &assetStore{d},
		Technicians: &technicianStore{d},
		Packages:    &packageStore{d},
		Assignments: &assignmentStore{d},
	}
}

func (d *DB) exec(query string, args ...any) {
	if _, err := d.db.Exec(query, args...); err != nil {
		d.log.Errorf("sqlite: exec: %v", err)
	}
}

func (d *DB) marshal(table, id string, rec any) (string, bool) {
	b, err := json.Marshal(rec)
	if err != nil {
		d.log.Errorf("sqlite: marshal %s %s: %v", table, id, err)
		return "", false
	}
	return string(b), true
}

func (d *DB) get(table, id string, out any) bool {
	var data string
	err := d.db.QueryRow(
		fmt.Sprintf(`SELECT record FROM %s WHERE id = ?`, table), id).Scan(&data)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		d.log.Errorf("sqlite: get %s %s: %v", table, id, err)
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		d.log.Errorf("sqlite: unmarshal %s %s: %v", table, id, err)
		return false
	}
	return true
}

func scanRecords[T any](d *DB, query string, args ...any) []T {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		d.log.Errorf("sqlite: query: %v", err)
		return nil
	}
	defer func() { _ = rows.Close() }()
	var res []T
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			d.log.Errorf("sqlite: scan: %v", err)
			return res
		}
		var v T
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			d.log.Errorf("sqlite: unmarshal record: %v", err)
			continue
		}
		res = append(res, v)
	}
	if err := rows.Err(); err != nil {
		d.log.Errorf("sqlite: rows: %v", err)
	}
	return res
}

type assetStore struct{ d *DB }

func (s *assetStore) All() []model.Asset {
	return scanRecords[model.Asset](s.d, `SELECT record FROM assets ORDER BY rowid`)
}

func (s *assetStore) Get(id string) (model.Asset, bool) {
	var a model.Asset
	ok := s.d.get("assets", id, &a)
	return a, ok
}

func (s *assetStore) Put(a model.Asset) {
	if rec, ok := s.d.marshal("assets", a.ID, a); ok {
		s.d.exec(`INSERT INTO assets (id, record) VALUES (?, ?)
            ON CONFLICT(id) DO UPDATE SET record = excluded.record`, a.ID, rec)
	}
}

type technicianStore struct{ d *DB }

func (s *technicianStore) All() []model.Technician {
	return scanRecords[model.Technician](s.d, `SELECT record FROM technicians ORDER BY rowid`)
}

func (s *technicianStore) Get(id string) (model.Technician, bool) {
	var t model.Technician
	ok := s.d.get("technicians", id, &t)
	return t, ok
}

func (s *technicianStore) Put(t model.Technician) {
	if rec, ok := s.d.marshal("technicians", t.ID, t); ok {
		s.d.exec(`INSERT INTO technicians (id, record) VALUES (?, ?)
            ON CONFLICT(id) DO UPDATE SET record = excluded.record`, t.ID, rec)
	}
}

func (s *technicianStore) Delete(id string) error {
	s.d.exec(`DELETE FROM technicians WHERE id = ?`, id)
	return nil
}

type packageStore struct{ d *DB }

func (s *packageStore) All() []model.WorkPackage {
	return scanRecords[model.WorkPackage](s.d, `SELECT record FROM work_packages ORDER BY rowid`)
}

func (s *packageStore) Get(id string) (model.WorkPackage, bool) {
	var p model.WorkPackage
	ok := s.d.get("work_packages", id, &p)
	return p, ok
}

func (s *packageStore) Put(p model.WorkPackage) {
	if rec, ok := s.d.marshal("work_packages", p.ID, p); ok {
		s.d.exec(`INSERT INTO work_packages (id, record) VALUES (?, ?)
            ON CONFLICT(id) DO UPDATE SET record = excluded.record`, p.ID, rec)
	}
}

type assignmentStore struct{ d *DB }

func (s *assignmentStore) All() []model.Assignment {
	return scanRecords[model.Assignment](s.d, `SELECT record FROM assignments ORDER BY rowid`)
}

func (s *assignmentStore) Get(id string) (model.Assignment, bool) {
	var a model.Assignment
	ok := s.d.get("assignments", id, &a)
	return a, ok
}

func (s *assignmentStore) Put(a model.Assignment) {
	if rec, ok := s.d.marshal("assignments", a.ID, a); ok {
		s.d.exec(`INSERT INTO assignments (id, technician_id, date, record) VALUES (?, ?, ?, ?)
            ON CONFLICT(id) DO UPDATE SET
                technician_id = excluded.technician_id,
                date = excluded.date,
                record = excluded.record`,
			a.ID, a.TechnicianID, a.Date.UTC().Format(dateFormat), rec)
	}
}

func (s *assignmentStore) Delete(id string) {
	s.d.exec(`DELETE FROM assignments WHERE id = ?`, id)
}

func (s *assignmentStore) ForDay(technicianID string, date time.Time) []model.Assignment {
	return scanRecords[model.Assignment](s.d,
		`SELECT record FROM assignments WHERE technician_id = ? AND date = ? ORDER BY rowid`,
		technicianID, date.UTC().Format(dateFormat))
}
