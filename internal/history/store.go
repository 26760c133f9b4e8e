package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages the run journal backed by SQLite. A nil *Store is a valid
// no-op journal, used when history is disabled in config.
type Store struct {
	db   *sql.DB
	path string
}

// Run summarizes one invocation of the pipeline.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Locations  int
	Resolved   int
	Succeeded  int
	Failed     int
	Skipped    int
}

// FileRecord is the per-file outcome within a run.
type FileRecord struct {
	Source string
	Output string
	Status string // "ok", "skipped", or "failed"
	Detail string
}

// Open initializes or connects to the journal database at path and applies
// the schema. An empty path returns a nil store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location backing the journal.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) applySchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    locations INTEGER NOT NULL,
    resolved INTEGER NOT NULL,
    succeeded INTEGER NOT NULL,
    failed INTEGER NOT NULL,
    skipped INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_files (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    source TEXT NOT NULL,
    output TEXT NOT NULL,
    status TEXT NOT NULL,
    detail TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS downloads (
    url TEXT PRIMARY KEY,
    path TEXT NOT NULL,
    fetched_at TEXT NOT NULL
);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// RecordRun persists a run summary with its per-file outcomes.
func (s *Store) RecordRun(ctx context.Context, run Run, files []FileRecord) error {
	if s == nil {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, locations, resolved, succeeded, failed, skipped)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Locations,
		run.Resolved,
		run.Succeeded,
		run.Failed,
		run.Skipped,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, file := range files {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_files (run_id, source, output, status, detail) VALUES (?, ?, ?, ?, ?)`,
			run.ID, file.Source, file.Output, file.Status, file.Detail,
		)
		if err != nil {
			return fmt.Errorf("insert run file: %w", err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, locations, resolved, succeeded, failed, skipped
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished, &run.Locations, &run.Resolved, &run.Succeeded, &run.Failed, &run.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunFiles returns the per-file outcomes recorded for a run.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]FileRecord, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, output, status, detail FROM run_files WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var file FileRecord
		if err := rows.Scan(&file.Source, &file.Output, &file.Status, &file.Detail); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

// LookupDownload returns the recorded local path for a previously fetched URL.
func (s *Store) LookupDownload(ctx context.Context, url string) (string, bool, error) {
	if s == nil {
		return "", false, nil
	}
	var path string
	err := s.db.QueryRowContext(ctx, `SELECT path FROM downloads WHERE url = ?`, url).Scan(&path)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup download: %w", err)
	}
	return path, true, nil
}

// StoreDownload records (or updates) where a URL was fetched to.
func (s *Store) StoreDownload(ctx context.Context, url, path string) error {
	if s == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO downloads (url, path, fetched_at) VALUES (?, ?, ?)
         ON CONFLICT(url) DO UPDATE SET path = excluded.path, fetched_at = excluded.fetched_at`,
		url, path, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store download: %w", err)
	}
	return nil
}
