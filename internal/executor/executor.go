// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package executor applies a confirmed rename plan with a bounded worker pool.
//
// Each entry is renamed independently; a failure is recorded for that entry
// and never stops the others. Outcomes are collected by index and counted
// after all workers finish.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// Status is the outcome of one plan entry.
type Status string

const (
	StatusRenamed       Status = "renamed"
	StatusSkippedNonPDF Status = "skipped-non-pdf"
	StatusFailed        Status = "failed"
)

// ErrDestinationExists is returned when the proposed name is already taken.
var ErrDestinationExists = errors.New("destination already exists")

// Outcome reports what happened to a single entry.
type Outcome struct {
	Entry  types.PlanEntry
	Status Status
	Err    error
	DryRun bool
}

// Options controls a batch run.
type Options struct {
	// DryRun validates every entry without renaming anything.
	DryRun bool
	// Workers bounds concurrency. Zero selects runtime.NumCPU().
	Workers int
	// OnDone, if set, is called once per finished entry. Calls are
	// serialized.
	OnDone func(Outcome)
	Log    zerolog.Logger
}

// Report holds the outcomes of a batch, in plan order.
type Report struct {
	Outcomes []Outcome
}

// Stats counts renamed and failed entries. A non-PDF entry counts as an
// error.
func (r Report) Stats() types.RunStats {
	var s types.RunStats
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusRenamed:
			s.Renamed++
		default:
			s.Errors++
		}
	}
	return s
}

// Failed returns the outcomes that did not succeed.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status != StatusRenamed {
			out = append(out, o)
		}
	}
	return out
}

// Apply renames every entry within dir. It returns after all entries are
// processed; a cancelled context marks the entries not yet started as
// failed.
func Apply(ctx context.Context, dir string, entries []types.PlanEntry, opts Options) Report {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]Outcome, len(entries))
	var mu sync.Mutex

	// A destination proposed twice goes to the first entry in plan order;
	// later entries fail instead of overwriting it.
	claimed := make(map[string]bool, len(entries))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, e := range entries {
		i, e := i, e
		duplicate := claimed[e.Proposed]
		claimed[e.Proposed] = true

		g.Go(func() error {
			var o Outcome
			if duplicate {
				o = Outcome{Entry: e, Status: StatusFailed, DryRun: opts.DryRun,
					Err: &fs.PathError{Op: "rename", Path: filepath.Join(dir, e.Proposed), Err: ErrDestinationExists}}
			} else if err := ctx.Err(); err != nil {
				o = Outcome{Entry: e, Status: StatusFailed, Err: err, DryRun: opts.DryRun}
			} else {
				o = applyOne(dir, e, opts.DryRun)
			}
			outcomes[i] = o

			ev := opts.Log.Debug()
			if o.Err != nil {
				ev = opts.Log.Warn().Err(o.Err)
			}
			ev.Str("from", e.Original).Str("to", e.Proposed).Str("status", string(o.Status)).Bool("dry_run", opts.DryRun).Msg("rename")

			if opts.OnDone != nil {
				mu.Lock()
				opts.OnDone(o)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return Report{Outcomes: outcomes}
}

// applyOne checks and performs a single rename. A dry run stops after the
// checks, so it classifies entries the same way a real run would.
func applyOne(dir string, e types.PlanEntry, dryRun bool) Outcome {
	o := Outcome{Entry: e, DryRun: dryRun}
	if !types.IsPDF(e.Original) {
		o.Status = StatusSkippedNonPDF
		o.Err = fmt.Errorf("not a PDF: %s", e.Original)
		return o
	}

	src := filepath.Join(dir, e.Original)
	dst := filepath.Join(dir, e.Proposed)

	if _, err := os.Stat(src); err != nil {
		o.Status, o.Err = StatusFailed, err
		return o
	}
	if _, err := os.Lstat(dst); err == nil {
		o.Status = StatusFailed
		o.Err = &fs.PathError{Op: "rename", Path: dst, Err: ErrDestinationExists}
		return o
	} else if !errors.Is(err, fs.ErrNotExist) {
		o.Status, o.Err = StatusFailed, err
		return o
	}

	if !dryRun {
		if err := os.Rename(src, dst); err != nil {
			o.Status, o.Err = StatusFailed, err
			return o
		}
	}
	o.Status = StatusRenamed
	return o
}
