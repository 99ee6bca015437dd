// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package renamer drives a rename run: it resolves the input path, handles
// backups, plans new names, asks for confirmation, applies the renames, and
// reports statistics.
//
// The terminal is not owned here. Output goes to an io.Writer and every
// yes/no choice goes through a Decider, so runs are testable without a TTY.
package renamer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdf-renamer/internal/backup"
	"github.com/pdiddy/pdf-renamer/internal/executor"
	"github.com/pdiddy/pdf-renamer/internal/planner"
	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// Recorder stores a summary of each completed run.
type Recorder interface {
	Record(ctx context.Context, rec types.RunRecord) (int64, error)
}

// Runner holds the collaborators of a run.
type Runner struct {
	Extractor planner.Extractor
	Backups   *backup.Manager
	Decider   Decider
	// History is optional.
	History Recorder
	Out     io.Writer
	// WorkDir is the fallback base for relative file paths.
	WorkDir string
	Log     zerolog.Logger

	DryRun     bool
	SkipBackup bool
	Workers    int
	// Progress, if set, is called with the number of entries before renaming
	// starts and returns the per-entry completion callback.
	Progress func(total int) func(executor.Outcome)

	// Now returns the current time. Tests override it.
	Now func() time.Time
}

// Run renames the PDFs at path. It returns an error only when the path does
// not resolve to any PDF, when a backup failed and the user chose not to
// continue, or when a decision could not be obtained. Per-file problems are
// counted in the returned statistics.
func (r *Runner) Run(ctx context.Context, path string) (types.RunStats, error) {
	started := r.now()

	target, err := Resolve(path, r.WorkDir)
	if err != nil {
		return types.RunStats{}, err
	}
	stats := types.RunStats{Total: len(target.Files)}
	r.Log.Debug().Str("dir", target.Dir).Int("files", len(target.Files)).Str("mode", string(target.Mode)).Msg("resolved input")

	snap, err := r.ensureBackup(target)
	if err != nil {
		return stats, err
	}
	if snap != nil {
		fmt.Fprintf(r.Out, "Backup available in: %s\n", snap.Dir)
	}

	plan := planner.Plan(target.Dir, target.Files, r.Extractor)
	stats.Merge(plan.Stats)
	PrintPreview(r.Out, plan)

	rec := types.RunRecord{StartedAt: started, Target: target.Dir, Mode: target.Mode, DryRun: r.DryRun}
	if snap != nil {
		rec.BackupDir = snap.Dir
	}

	if !plan.ChangesNeeded {
		fmt.Fprintln(r.Out, "\nFiles are already renamed. Exiting.")
		rec.Stats = stats
		r.record(ctx, rec)
		return stats, nil
	}

	ok, err := r.Decider.Confirm(AskProceed)
	if err != nil {
		return stats, err
	}
	if !ok {
		fmt.Fprintln(r.Out, "Operation cancelled by user")
		return stats, nil
	}

	opts := executor.Options{DryRun: r.DryRun, Workers: r.Workers, Log: r.Log}
	if r.Progress != nil {
		opts.OnDone = r.Progress(len(plan.Entries))
	}
	report := executor.Apply(ctx, target.Dir, plan.Entries, opts)
	PrintOutcomes(r.Out, report)
	stats.Merge(report.Stats())
	PrintSummary(r.Out, stats, r.DryRun)

	rec.Stats = stats
	r.record(ctx, rec)
	return stats, nil
}

// ensureBackup asks the user how to back up and carries it out. A failed
// backup is reported and the user decides whether to continue without one.
func (r *Runner) ensureBackup(t Target) (*types.Snapshot, error) {
	if r.SkipBackup {
		return nil, nil
	}

	snap, err := r.Backups.Ensure(t.Dir, t.Docs, func(st backup.Status) (backup.Action, error) {
		if st.Reusable() {
			what := "Files"
			if len(t.Files) == 1 {
				what = "File"
			}
			fmt.Fprintf(r.Out, "\nRecent backup found (%d minutes ago)\n", int(st.Age.Minutes()))
			fmt.Fprintf(r.Out, "Location: %s\n", st.Latest)
			fmt.Fprintf(r.Out, "%s unchanged since then\n", what)

			again, err := r.Decider.Confirm(AskNewBackupAnyway)
			if err != nil {
				return backup.ActionSkip, err
			}
			if again {
				return backup.ActionCreate, nil
			}
			return backup.ActionReuse, nil
		}

		fmt.Fprintln(r.Out)
		yes, err := r.Decider.Confirm(AskBackup)
		if err != nil || !yes {
			return backup.ActionSkip, err
		}
		return backup.ActionCreate, nil
	})
	if err == nil {
		if snap != nil && !snap.Reused {
			fmt.Fprintf(r.Out, "Backup created in: %s\n", snap.Dir)
		}
		return snap, nil
	}

	var be *backup.Error
	if !errors.As(err, &be) {
		return nil, err
	}
	errorColor.Fprintf(r.Out, "Backup failed: %v\n", err)
	cont, derr := r.Decider.Confirm(AskContinueWithoutBackup)
	if derr != nil {
		return nil, derr
	}
	if !cont {
		return nil, err
	}
	return nil, nil
}

func (r *Runner) record(ctx context.Context, rec types.RunRecord) {
	if r.History == nil {
		return
	}
	if _, err := r.History.Record(ctx, rec); err != nil {
		r.Log.Warn().Err(err).Msg("could not record run history")
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Preview resolves path and computes its rename plan without backing up,
// prompting, or renaming anything.
func Preview(path, workDir string, ex planner.Extractor) (Target, planner.Result, error) {
	target, err := Resolve(path, workDir)
	if err != nil {
		return Target{}, planner.Result{}, err
	}
	return target, planner.Plan(target.Dir, target.Files, ex), nil
}
