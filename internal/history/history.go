// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a summary of each rename run in a SQLite database.
// It stores counters only, so it cannot be used to undo a run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

const (
	appDir = "pdf-renamer"
	dbFile = "history.db"

	// DefaultLimit caps List when no limit is given.
	DefaultLimit = 20
)

// DefaultPath returns the database location under the user config
// directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(base, appDir, dbFile), nil
}

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating its parent
// directory and schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			target TEXT NOT NULL,
			mode TEXT NOT NULL,
			dry_run INTEGER NOT NULL,
			backup_dir TEXT,
			total INTEGER NOT NULL,
			renamed INTEGER NOT NULL,
			skipped_formatted INTEGER NOT NULL,
			skipped_no_date INTEGER NOT NULL,
			errors INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends a run and returns its ID.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, target, mode, dry_run, backup_dir,
			total, renamed, skipped_formatted, skipped_no_date, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.Target,
		string(rec.Mode),
		rec.DryRun,
		nullString(rec.BackupDir),
		rec.Stats.Total,
		rec.Stats.Renamed,
		rec.Stats.SkippedFormatted,
		rec.Stats.SkippedNoDate,
		rec.Stats.Errors,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first. A limit of zero or less
// selects DefaultLimit.
func (s *Store) List(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, target, mode, dry_run, backup_dir,
			total, renamed, skipped_formatted, skipped_no_date, errors
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []types.RunRecord
	for rows.Next() {
		var (
			rec       types.RunRecord
			started   string
			mode      string
			backupDir sql.NullString
		)
		if err := rows.Scan(&rec.ID, &started, &rec.Target, &mode, &rec.DryRun, &backupDir,
			&rec.Stats.Total, &rec.Stats.Renamed, &rec.Stats.SkippedFormatted,
			&rec.Stats.SkippedNoDate, &rec.Stats.Errors); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("parsing start time of run %d: %w", rec.ID, err)
		}
		rec.StartedAt = t
		rec.Mode = types.RunMode(mode)
		rec.BackupDir = backupDir.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
