package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mkarppinen/cabin-revenue/internal/domain"
)

// SQLiteStore persists the resort catalog. Quotes and forecasts are never
// stored; only the static configuration tables live here.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema() error {
	const createTables = `
CREATE TABLE IF NOT EXISTS cabin_types (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  multiplier REAL NOT NULL,
  units INTEGER NOT NULL,
  base_occupancy REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS activities (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price REAL NOT NULL,
  seasons_json TEXT NOT NULL DEFAULT '[]',
  participation_rate REAL NOT NULL
);
`
	_, err := s.db.Exec(createTables)
	return err
}

func (s *SQLiteStore) CountCabinTypes() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM cabin_types`).Scan(&n)
	return n, err
}

// SeedCatalog inserts the initial catalog without duplicating by id.
func (s *SQLiteStore) SeedCatalog(cat domain.Catalog) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	cabinStmt, err := tx.Prepare(`
INSERT OR IGNORE INTO cabin_types (id, name, multiplier, units, base_occupancy)
VALUES (?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer cabinStmt.Close()

	for _, c := range cat.Cabins {
		if _, err := cabinStmt.Exec(c.ID, c.Name, c.Multiplier, c.Units, c.BaseOccupancy); err != nil {
			return err
		}
	}

	actStmt, err := tx.Prepare(`
INSERT OR IGNORE INTO activities (id, name, price, seasons_json, participation_rate)
VALUES (?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer actStmt.Close()

	for _, a := range cat.Activities {
		seasons, _ := json.Marshal(a.Seasons)
		if _, err := actStmt.Exec(a.ID, a.Name, a.Price, string(seasons), a.ParticipationRate); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadCatalog reads the full catalog back, validated the same way as the
// JSON loader.
func (s *SQLiteStore) LoadCatalog() (domain.Catalog, error) {
	var cat domain.Catalog

	rows, err := s.db.Query(`SELECT id, name, multiplier, units, base_occupancy FROM cabin_types ORDER BY id`)
	if err != nil {
		return domain.Catalog{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var c domain.CabinType
		if err := rows.Scan(&c.ID, &c.Name, &c.Multiplier, &c.Units, &c.BaseOccupancy); err != nil {
			return domain.Catalog{}, err
		}
		cat.Cabins = append(cat.Cabins, c)
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, err
	}

	actRows, err := s.db.Query(`SELECT id, name, price, seasons_json, participation_rate FROM activities ORDER BY id`)
	if err != nil {
		return domain.Catalog{}, err
	}
	defer actRows.Close()
	for actRows.Next() {
		var a domain.Activity
		var seasonsJSON string
		if err := actRows.Scan(&a.ID, &a.Name, &a.Price, &seasonsJSON, &a.ParticipationRate); err != nil {
			return domain.Catalog{}, err
		}
		if err := json.Unmarshal([]byte(seasonsJSON), &a.Seasons); err != nil {
			return domain.Catalog{}, fmt.Errorf("activity %s seasons: %w", a.ID, err)
		}
		cat.Activities = append(cat.Activities, a)
	}
	if err := actRows.Err(); err != nil {
		return domain.Catalog{}, err
	}

	if err := validate.Struct(cat); err != nil {
		return domain.Catalog{}, fmt.Errorf("validate stored catalog: %w", err)
	}
	return cat, nil
}
