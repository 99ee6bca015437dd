// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backup snapshots the PDFs of a directory before they are renamed.
//
// A snapshot is a subdirectory named backup_YYYYMMDD_HHMMSS holding copies of
// the original files with their mode and modification time preserved. The
// fixed-width timestamp makes lexicographic order match creation order.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

const (
	// DirPrefix starts every backup directory name.
	DirPrefix = "backup_"
	// TimestampLayout is the time layout following DirPrefix.
	TimestampLayout = "20060102_150405"
)

var dirPattern = regexp.MustCompile(`^backup_\d{8}_\d{6}$`)

// Action is the caller's decision about backing up.
type Action int

const (
	// ActionSkip proceeds without a backup.
	ActionSkip Action = iota
	// ActionReuse keeps the latest existing backup.
	ActionReuse
	// ActionCreate makes a new backup.
	ActionCreate
)

// Error reports a failed backup. Callers may continue without a backup or
// abort the run, but must not ignore it.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("backup %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Status describes the latest existing backup relative to the files about to
// be processed.
type Status struct {
	// Latest is the path of the most recent backup directory, or "" if none.
	Latest string
	// CreatedAt is the timestamp encoded in the latest backup's name.
	CreatedAt time.Time
	// Age is how long ago the latest backup was made.
	Age time.Duration
	// Recent is true when Age is below the manager's MaxAge.
	Recent bool
	// Matches is true when the backup's .pdf names and modification times
	// equal those of the current files.
	Matches bool
}

// Exists reports whether any backup was found.
func (s Status) Exists() bool { return s.Latest != "" }

// Reusable reports whether the latest backup is recent and unchanged, so a
// new one is not needed.
func (s Status) Reusable() bool { return s.Exists() && s.Recent && s.Matches }

// Snapshot returns the latest backup as a reused snapshot.
func (s Status) Snapshot() *types.Snapshot {
	if !s.Exists() {
		return nil
	}
	return &types.Snapshot{Dir: s.Latest, CreatedAt: s.CreatedAt, Reused: true}
}

// Manager inspects and creates backups.
type Manager struct {
	// MaxAge bounds how old a reusable backup may be.
	MaxAge time.Duration
	// Now returns the current time. Tests override it.
	Now func() time.Time
	Log zerolog.Logger
}

// NewManager returns a Manager using the wall clock. A non-positive maxAge
// selects types.DefaultBackupMaxAge.
func NewManager(maxAge time.Duration, log zerolog.Logger) *Manager {
	if maxAge <= 0 {
		maxAge = types.DefaultBackupMaxAge
	}
	return &Manager{MaxAge: maxAge, Now: time.Now, Log: log}
}

// Latest returns the path of the most recent backup directory in dir, or ""
// if there is none.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && dirPattern.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// Inspect gathers the inputs for the backup decision for docs in dir. The
// modification times recorded in docs are compared against the backup.
func (m *Manager) Inspect(dir string, docs []types.Document) (Status, error) {
	latest, err := Latest(dir)
	if err != nil {
		return Status{}, &Error{Op: "inspect", Path: dir, Err: err}
	}
	if latest == "" {
		return Status{}, nil
	}

	created, err := time.ParseInLocation(TimestampLayout, filepath.Base(latest)[len(DirPrefix):], time.Local)
	if err != nil {
		return Status{}, &Error{Op: "inspect", Path: latest, Err: err}
	}
	st := Status{Latest: latest, CreatedAt: created, Age: m.Now().Sub(created)}
	st.Recent = st.Age < m.MaxAge

	current := make(map[string]time.Time, len(docs))
	for _, d := range docs {
		if types.IsPDF(d.Name) {
			current[d.Name] = d.ModTime
		}
	}
	saved, err := pdfModTimes(latest)
	if err != nil {
		m.Log.Debug().Err(err).Str("backup", latest).Msg("cannot read backup, treating as stale")
		return st, nil
	}
	st.Matches = sameSet(current, saved)

	m.Log.Debug().
		Str("backup", latest).
		Dur("age", st.Age).
		Bool("recent", st.Recent).
		Bool("matches", st.Matches).
		Msg("inspected latest backup")
	return st, nil
}

// Ensure inspects existing backups, asks decide what to do, and carries out
// the decision. It returns the snapshot in effect, or nil when skipped.
func (m *Manager) Ensure(dir string, docs []types.Document, decide func(Status) (Action, error)) (*types.Snapshot, error) {
	st, err := m.Inspect(dir, docs)
	if err != nil {
		return nil, err
	}
	action, err := decide(st)
	if err != nil {
		return nil, err
	}
	switch action {
	case ActionReuse:
		if snap := st.Snapshot(); snap != nil {
			return snap, nil
		}
		return m.Create(dir, docs)
	case ActionCreate:
		return m.Create(dir, docs)
	default:
		return nil, nil
	}
}

// Create copies every .pdf among docs into a new timestamped backup
// directory under dir. A failed copy removes the partial backup directory.
func (m *Manager) Create(dir string, docs []types.Document) (*types.Snapshot, error) {
	now := m.Now()
	backupDir := filepath.Join(dir, DirPrefix+now.Format(TimestampLayout))
	if err := os.Mkdir(backupDir, 0o755); err != nil {
		return nil, &Error{Op: "create", Path: backupDir, Err: err}
	}

	for _, d := range docs {
		if !types.IsPDF(d.Name) {
			continue
		}
		if err := copyFile(d.Path, filepath.Join(backupDir, d.Name)); err != nil {
			if rmErr := os.RemoveAll(backupDir); rmErr != nil {
				m.Log.Warn().Err(rmErr).Str("backup", backupDir).Msg("could not remove partial backup")
			}
			return nil, &Error{Op: "copy", Path: d.Name, Err: err}
		}
	}

	m.Log.Debug().Str("backup", backupDir).Int("files", len(docs)).Msg("backup created")
	created, _ := time.ParseInLocation(TimestampLayout, now.Format(TimestampLayout), time.Local)
	return &types.Snapshot{Dir: backupDir, CreatedAt: created}, nil
}

// copyFile copies src to dst, preserving permission bits and modification time.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// modTimes returns name -> modification time for the .pdf files among names.
func modTimes(dir string, names []string) (map[string]time.Time, error) {
	set := make(map[string]time.Time, len(names))
	for _, name := range names {
		if !types.IsPDF(name) {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		set[name] = info.ModTime()
	}
	return set, nil
}

// pdfModTimes returns name -> modification time for every .pdf in dir.
func pdfModTimes(dir string) (map[string]time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && types.IsPDF(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return modTimes(dir, names)
}

func sameSet(a, b map[string]time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for name, ta := range a {
		tb, ok := b[name]
		if !ok || !ta.Equal(tb) {
			return false
		}
	}
	return true
}
