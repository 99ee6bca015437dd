// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStats counts what happened to each file considered in a run.
type RunStats struct {
	Total            int `json:"total" yaml:"total"`
	Renamed          int `json:"renamed" yaml:"renamed"`
	SkippedFormatted int `json:"skipped_formatted" yaml:"skipped_formatted"`
	SkippedNoDate    int `json:"skipped_no_date" yaml:"skipped_no_date"`
	Errors           int `json:"errors" yaml:"errors"`
}

// Merge adds the counters of o into s. Total is left untouched; it is set
// once from the resolved file list.
func (s *RunStats) Merge(o RunStats) {
	s.Renamed += o.Renamed
	s.SkippedFormatted += o.SkippedFormatted
	s.SkippedNoDate += o.SkippedNoDate
	s.Errors += o.Errors
}

// RunMode says whether a run targeted one file or a whole directory.
type RunMode string

const (
	ModeFile      RunMode = "file"
	ModeDirectory RunMode = "directory"
)

// RunRecord summarizes one completed run for the history database. It holds
// counters only; per-file names are not kept.
type RunRecord struct {
	ID        int64     `json:"id" yaml:"id"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	Target    string    `json:"target" yaml:"target"`
	Mode      RunMode   `json:"mode" yaml:"mode"`
	DryRun    bool      `json:"dry_run" yaml:"dry_run"`
	BackupDir string    `json:"backup_dir,omitempty" yaml:"backup_dir,omitempty"`
	Stats     RunStats  `json:"stats" yaml:"stats"`
}
