// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/biblioscope/pkg/types"
)

// SQLite is a file-backed Store. Multivalued fields (authors,
// classifications, subjects) are serialized as JSON text columns.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates the store database at path and ensures the
// schema exists.
func NewSQLite(cfg types.StoreConfig) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT,
		subtitle TEXT,
		year TEXT,
		edition TEXT,
		cover_url TEXT,
		toc_url TEXT,
		authors TEXT NOT NULL,
		classifications TEXT NOT NULL,
		subjects TEXT NOT NULL,
		is_favorite INTEGER NOT NULL DEFAULT 0,
		is_dead_end INTEGER NOT NULL DEFAULT 0,
		from_authority INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get implements Store.
func (s *SQLite) Get(id string) (types.Metadata, error) {
	row := s.db.QueryRow(
		`SELECT id, type, title, subtitle, year, edition, cover_url, toc_url,
		        authors, classifications, subjects,
		        is_favorite, is_dead_end, from_authority
		 FROM records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return types.Metadata{}, ErrNotFound
	}
	if err != nil {
		return types.Metadata{}, fmt.Errorf("reading record %s: %w", id, err)
	}
	return rec, nil
}

// PutIfAbsent implements Store. INSERT OR IGNORE keeps the first version of
// a record; re-extraction of a known identifier is a no-op.
func (s *SQLite) PutIfAbsent(rec types.Metadata) (bool, error) {
	authorsJSON, err := json.Marshal(rec.Authors)
	if err != nil {
		return false, fmt.Errorf("encoding authors: %w", err)
	}
	classJSON, err := json.Marshal(rec.Classifications)
	if err != nil {
		return false, fmt.Errorf("encoding classifications: %w", err)
	}
	subjJSON, err := json.Marshal(rec.Subjects)
	if err != nil {
		return false, fmt.Errorf("encoding subjects: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO records
		 (id, type, title, subtitle, year, edition, cover_url, toc_url,
		  authors, classifications, subjects,
		  is_favorite, is_dead_end, from_authority)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Type), rec.Title, rec.SubTitle, rec.Year, rec.Edition,
		rec.CoverURL, rec.TOCURL,
		string(authorsJSON), string(classJSON), string(subjJSON),
		rec.Tags.IsFavorite, rec.Tags.IsDeadEnd, rec.Tags.FromAuthority,
	)
	if err != nil {
		return false, fmt.Errorf("inserting record %s: %w", rec.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting record %s: %w", rec.ID, err)
	}
	return n > 0, nil
}

// SetFavorite implements Store.
func (s *SQLite) SetFavorite(id string, v bool) error {
	return s.setTag(id, "is_favorite", v)
}

// SetDeadEnd implements Store.
func (s *SQLite) SetDeadEnd(id string, v bool) error {
	return s.setTag(id, "is_dead_end", v)
}

func (s *SQLite) setTag(id, column string, v bool) error {
	// column is one of the two fixed tag columns, never caller input.
	res, err := s.db.Exec(
		fmt.Sprintf(`UPDATE records SET %s = ? WHERE id = ?`, column), v, id)
	if err != nil {
		return fmt.Errorf("updating record %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating record %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List implements Store. Rowid order reflects insertion order.
func (s *SQLite) List() ([]types.Metadata, error) {
	rows, err := s.db.Query(
		`SELECT id, type, title, subtitle, year, edition, cover_url, toc_url,
		        authors, classifications, subjects,
		        is_favorite, is_dead_end, from_authority
		 FROM records ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var out []types.Metadata
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("listing records: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (types.Metadata, error) {
	var (
		rec                          types.Metadata
		typ                          string
		authorsJSON, classJSON, subjJSON string
	)
	err := sc.Scan(
		&rec.ID, &typ, &rec.Title, &rec.SubTitle, &rec.Year, &rec.Edition,
		&rec.CoverURL, &rec.TOCURL,
		&authorsJSON, &classJSON, &subjJSON,
		&rec.Tags.IsFavorite, &rec.Tags.IsDeadEnd, &rec.Tags.FromAuthority,
	)
	if err != nil {
		return types.Metadata{}, err
	}
	rec.Type = types.RecordType(typ)
	if err := json.Unmarshal([]byte(authorsJSON), &rec.Authors); err != nil {
		return types.Metadata{}, fmt.Errorf("decoding authors: %w", err)
	}
	if err := json.Unmarshal([]byte(classJSON), &rec.Classifications); err != nil {
		return types.Metadata{}, fmt.Errorf("decoding classifications: %w", err)
	}
	if err := json.Unmarshal([]byte(subjJSON), &rec.Subjects); err != nil {
		return types.Metadata{}, fmt.Errorf("decoding subjects: %w", err)
	}
	return rec, nil
}
