// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planner computes the rename plan for a batch of PDFs.
//
// Planning runs in two passes. The first pass tallies how many files share
// each extracted date; the second pass names files, and uses the tally to
// decide whether a date needs numeric suffixes. Files already carrying a
// YYYY-MM-DD_ prefix are never extracted and never renamed.
package planner

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// Extractor finds the date of the document at path. ok is false when the
// document was read but holds no date; err is set when it could not be read.
type Extractor interface {
	ExtractDate(path string) (date types.Date, ok bool, err error)
}

// Row is one line of the plan preview, in input order.
type Row struct {
	Original string
	Proposed string // empty when skipped
	Reason   types.SkipReason
	Err      error // decode failure behind SkipUnreadable
}

// Skipped reports whether the file is left out of the plan.
func (r Row) Skipped() bool { return r.Reason != types.SkipNone }

// Result is a computed plan.
type Result struct {
	// Entries lists the renames to perform, in input order.
	Entries []types.PlanEntry
	// Rows lists every input file with its outcome, in input order.
	Rows []Row
	// ChangesNeeded is true when at least one file will be renamed.
	ChangesNeeded bool
	// Stats carries the skip counters. Total is the number of input files.
	Stats types.RunStats
	// Collisions lists proposed names assigned more than once. Such plans
	// are not repaired here; the executor refuses to overwrite, so the later
	// rename fails on its own.
	Collisions []string
}

// Mapping returns the plan as original name -> proposed name.
func (r Result) Mapping() map[string]string {
	m := make(map[string]string, len(r.Entries))
	for _, e := range r.Entries {
		m[e.Original] = e.Proposed
	}
	return m
}

type extraction struct {
	date types.Date
	ok   bool
	err  error
}

// Plan builds the rename plan for files (base names) in dir.
func Plan(dir string, files []string, ex Extractor) Result {
	res := Result{Stats: types.RunStats{Total: len(files)}}

	// Pass 1: tally dates. Extraction is pure, so the second pass reuses
	// these results instead of decoding each PDF twice.
	found := make(map[string]extraction, len(files))
	tally := make(map[types.Date]int)
	for _, name := range files {
		if types.HasDatePrefix(name) {
			continue
		}
		d, ok, err := ex.ExtractDate(filepath.Join(dir, name))
		found[name] = extraction{date: d, ok: ok && err == nil, err: err}
		if ok && err == nil {
			tally[d]++
		}
	}

	// Pass 2: assign names.
	seen := make(map[types.Date]int)
	assigned := make(map[string]bool)
	for _, name := range files {
		if types.HasDatePrefix(name) {
			res.Stats.SkippedFormatted++
			res.Rows = append(res.Rows, Row{Original: name, Reason: types.SkipAlreadyFormatted})
			continue
		}

		x := found[name]
		if !x.ok {
			res.Stats.SkippedNoDate++
			row := Row{Original: name, Reason: types.SkipNoDate}
			if x.err != nil {
				row.Reason, row.Err = types.SkipUnreadable, x.err
			}
			res.Rows = append(res.Rows, row)
			continue
		}

		proposed := Name(x.date, Stem(name), seen[x.date], tally[x.date])
		seen[x.date]++

		if assigned[proposed] {
			res.Collisions = append(res.Collisions, proposed)
		}
		assigned[proposed] = true

		res.Entries = append(res.Entries, types.PlanEntry{Original: name, Proposed: proposed, Date: x.date})
		res.Rows = append(res.Rows, Row{Original: name, Proposed: proposed})
	}

	res.ChangesNeeded = len(res.Entries) > 0
	return res
}

var (
	dupMarker  = regexp.MustCompile(`\(\d+\)`)
	whitespace = regexp.MustCompile(`[\s\p{Z}\x{85}]+`)
)

// Stem cleans a filename for use after the date prefix: numeric duplicate
// markers such as "(2)" are removed, then the extension, then surrounding
// whitespace, and inner whitespace runs, Unicode spaces included, become a
// single underscore.
func Stem(name string) string {
	s := dupMarker.ReplaceAllString(name, "")
	s = strings.TrimSuffix(s, filepath.Ext(s))
	s = strings.TrimSpace(s)
	return whitespace.ReplaceAllString(s, "_")
}

// Name builds the new filename for the index-th file (zero-based, in input
// order) of total files sharing date d. The first file is unsuffixed; later
// ones get (1), (2), and so on.
func Name(d types.Date, stem string, index, total int) string {
	if total <= 1 || index == 0 {
		return fmt.Sprintf("%s_%s%s", d, stem, types.PDFExt)
	}
	return fmt.Sprintf("%s_%s(%d)%s", d, stem, index, types.PDFExt)
}
