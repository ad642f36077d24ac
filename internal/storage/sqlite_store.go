package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
)

// SQLiteStore persists the country dataset. It is a startup-time loader: the
// service reads the whole collection once and keeps it in memory, so there is
// no per-request querying and no mutation after boot.
type SQLiteStore struct {
	db *sqlx.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
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
	const createTable = `
CREATE TABLE IF NOT EXISTS countries (
  name TEXT PRIMARY KEY,
  metrics_json TEXT NOT NULL DEFAULT '{}',
  expat_community_size TEXT NOT NULL DEFAULT ''
);
`
	if _, err := s.db.Exec(createTable); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) CountCountries() (int, error) {
	var n int
	err := s.db.Get(&n, `SELECT COUNT(*) FROM countries`)
	return n, err
}

// countryRow is the table shape; metrics travel as a JSON column.
type countryRow struct {
	Name        string `db:"name"`
	MetricsJSON string `db:"metrics_json"`
	Community   string `db:"expat_community_size"`
}

func (r countryRow) toDomain() domain.Country {
	c := domain.Country{
		Name:           r.Name,
		Metrics:        map[domain.Metric]float64{},
		ExpatCommunity: domain.CommunitySize(r.Community),
	}
	_ = json.Unmarshal([]byte(r.MetricsJSON), &c.Metrics)
	return c
}

// UpsertMany inserts records without duplicating by name.
func (s *SQLiteStore) UpsertMany(countries []domain.Country) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Preparex(`
INSERT OR IGNORE INTO countries (name, metrics_json, expat_community_size)
VALUES (?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range countries {
		metrics, _ := json.Marshal(c.Metrics)
		if _, err := stmt.Exec(c.Name, string(metrics), string(c.ExpatCommunity)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SeedIfEmpty populates the table from the built-in dataset when it holds no
// rows. Returns whether seeding happened.
func (s *SQLiteStore) SeedIfEmpty() (bool, error) {
	n, err := s.CountCountries()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := s.UpsertMany(SeedCountries()); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) GetCountry(name string) (domain.Country, bool, error) {
	var row countryRow
	err := s.db.Get(&row, `
SELECT name, metrics_json, expat_community_size FROM countries WHERE name = ?
`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Country{}, false, nil
	}
	if err != nil {
		return domain.Country{}, false, err
	}
	return row.toDomain(), true, nil
}

func (s *SQLiteStore) ListCountries(limit, offset int) ([]domain.Country, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	total, err := s.CountCountries()
	if err != nil {
		return nil, 0, err
	}

	var rows []countryRow
	err = s.db.Select(&rows, `
SELECT name, metrics_json, expat_community_size
FROM countries
ORDER BY name
LIMIT ? OFFSET ?
`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Country, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, total, nil
}

// ListAllCountries loads the full collection for the in-memory engine.
func (s *SQLiteStore) ListAllCountries() ([]domain.Country, error) {
	var rows []countryRow
	err := s.db.Select(&rows, `
SELECT name, metrics_json, expat_community_size FROM countries ORDER BY name
`)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Country, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}
