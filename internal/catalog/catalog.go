// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog maintains a SQLite index of the mirror's file state for
// offline status reporting. The catalog is purely descriptive: the crawl
// pipeline never consults it, since file existence on disk remains the
// sole source of truth.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/anthology-mirror/internal/ensure"
)

const (
	indexDir = "index"
	dbFile   = "mirror.db"
)

// Store manages the mirror catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog at <root>/index/mirror.db, creating
// the schema if needed.
func Open(rootDir string) (*Store, error) {
	dbDir := filepath.Join(rootDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			volume TEXT NOT NULL,
			url TEXT NOT NULL,
			kind TEXT NOT NULL,
			size_bytes INTEGER NOT NULL DEFAULT 0,
			present INTEGER NOT NULL DEFAULT 0,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_volume ON files(volume)`,
		`CREATE INDEX IF NOT EXISTS idx_files_present ON files(present)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stats every candidate and upserts its current state. It returns
// the number of rows written.
func (s *Store) Record(ctx context.Context, cands []ensure.Candidate) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO files (path, volume, url, kind, size_bytes, present, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			volume = excluded.volume,
			url = excluded.url,
			kind = excluded.kind,
			size_bytes = excluded.size_bytes,
			present = excluded.present,
			recorded_at = excluded.recorded_at`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	written := 0
	for _, c := range cands {
		var (
			size    int64
			present int
		)
		if info, err := os.Stat(c.Path); err == nil {
			size = info.Size()
			present = 1
		}
		if _, err := stmt.ExecContext(ctx, c.Path, c.Volume, c.URL, c.Kind, size, present, now); err != nil {
			return written, fmt.Errorf("recording %s: %w", c.Path, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("committing: %w", err)
	}
	return written, nil
}

// Summary aggregates the catalog's current view of the mirror.
type Summary struct {
	Volumes      int
	Files        int
	Present      int
	Missing      int
	PresentBytes int64
}

// Summary reports totals across all recorded files.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT
			count(DISTINCT volume),
			count(*),
			coalesce(sum(present), 0),
			coalesce(sum(1 - present), 0),
			coalesce(sum(size_bytes * present), 0)
		FROM files`).
		Scan(&sum.Volumes, &sum.Files, &sum.Present, &sum.Missing, &sum.PresentBytes)
	if err != nil {
		return Summary{}, fmt.Errorf("querying summary: %w", err)
	}
	return sum, nil
}
