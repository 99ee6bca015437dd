// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renamer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pdiddy/pdf-renamer/internal/executor"
	"github.com/pdiddy/pdf-renamer/internal/planner"
	"github.com/pdiddy/pdf-renamer/pkg/types"
)

const (
	nameWidth = 50
	ruleWidth = 80
)

var (
	skipColor  = color.New(color.FgYellow)
	newColor   = color.New(color.FgGreen)
	errorColor = color.New(color.FgRed)
)

// PrintPreview writes the plan table: one row per input file with its new
// name or the reason it is skipped.
func PrintPreview(w io.Writer, res planner.Result) {
	rule := strings.Repeat("-", ruleWidth)
	fmt.Fprintln(w, "\nPreviewing changes:")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-*s -> %s\n", nameWidth, "Original Name", "New Name")
	fmt.Fprintln(w, rule)
	for _, row := range res.Rows {
		fmt.Fprintf(w, "%-*s -> %s\n", nameWidth, row.Original, previewCell(row))
	}
	fmt.Fprintln(w, rule)
	for _, name := range res.Collisions {
		errorColor.Fprintf(w, "Warning: %s is proposed more than once; only the first rename will be applied\n", name)
	}
}

func previewCell(row planner.Row) string {
	switch row.Reason {
	case types.SkipNone:
		return newColor.Sprint(row.Proposed)
	case types.SkipAlreadyFormatted:
		return skipColor.Sprint("[SKIPPED - Already formatted]")
	case types.SkipUnreadable:
		return skipColor.Sprintf("[SKIPPED - Unreadable: %v]", row.Err)
	default:
		return skipColor.Sprint("[SKIPPED - No date found]")
	}
}

// PrintOutcomes writes one line per executed entry, in plan order.
func PrintOutcomes(w io.Writer, rep executor.Report) {
	for _, o := range rep.Outcomes {
		e := o.Entry
		switch {
		case o.Status == executor.StatusRenamed && o.DryRun:
			fmt.Fprintf(w, "Would rename: %s -> %s\n", e.Original, e.Proposed)
		case o.Status == executor.StatusRenamed:
			fmt.Fprintf(w, "Renamed: %s -> %s\n", e.Original, e.Proposed)
		case o.Status == executor.StatusSkippedNonPDF:
			errorColor.Fprintf(w, "Skipping non-PDF file: %s\n", e.Original)
		default:
			errorColor.Fprintf(w, "Error renaming %s: %v\n", e.Original, o.Err)
		}
	}
}

// PrintSummary writes the final counters.
func PrintSummary(w io.Writer, s types.RunStats, dryRun bool) {
	renamed := "Successfully renamed"
	if dryRun {
		renamed = "Would be renamed (dry run)"
	}
	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "- Files processed: %d\n", s.Total)
	fmt.Fprintf(w, "- %s: %d\n", renamed, s.Renamed)
	fmt.Fprintf(w, "- Skipped (already formatted): %d\n", s.SkippedFormatted)
	fmt.Fprintf(w, "- Skipped (no date found): %d\n", s.SkippedNoDate)
	fmt.Fprintf(w, "- Errors: %d\n", s.Errors)
}

// SkippedFile is a file left out of an exported plan.
type SkippedFile struct {
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
}

// PlanDocument is the exported form of a plan, for YAML or JSON output.
type PlanDocument struct {
	Dir        string            `json:"dir" yaml:"dir"`
	Mode       types.RunMode     `json:"mode" yaml:"mode"`
	Renames    []types.PlanEntry `json:"renames" yaml:"renames"`
	Skipped    []SkippedFile     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Collisions []string          `json:"collisions,omitempty" yaml:"collisions,omitempty"`
	Stats      types.RunStats    `json:"stats" yaml:"stats"`
}

// NewPlanDocument converts a plan for export.
func NewPlanDocument(t Target, res planner.Result) PlanDocument {
	doc := PlanDocument{
		Dir:        t.Dir,
		Mode:       t.Mode,
		Renames:    res.Entries,
		Collisions: res.Collisions,
		Stats:      res.Stats,
	}
	if doc.Renames == nil {
		doc.Renames = []types.PlanEntry{}
	}
	for _, row := range res.Rows {
		if !row.Skipped() {
			continue
		}
		reason := string(row.Reason)
		if row.Err != nil {
			reason = fmt.Sprintf("%s: %v", row.Reason, row.Err)
		}
		doc.Skipped = append(doc.Skipped, SkippedFile{Name: row.Original, Reason: reason})
	}
	return doc
}
