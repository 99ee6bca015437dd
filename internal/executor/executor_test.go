// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func statuses(r Report) []Status {
	var out []Status
	for _, o := range r.Outcomes {
		out = append(out, o.Status)
	}
	return out
}

// mixedBatch sets up one good rename, one taken destination, one missing
// source, and one non-PDF entry.
func mixedBatch(t *testing.T) (string, []types.PlanEntry) {
	t.Helper()
	dir := t.TempDir()
	touch(t, dir, "good.pdf")
	touch(t, dir, "taken.pdf")
	touch(t, dir, "2023-01-01_taken.pdf")
	touch(t, dir, "notes.txt")
	return dir, []types.PlanEntry{
		{Original: "good.pdf", Proposed: "2023-01-01_good.pdf"},
		{Original: "taken.pdf", Proposed: "2023-01-01_taken.pdf"},
		{Original: "missing.pdf", Proposed: "2023-01-01_missing.pdf"},
		{Original: "notes.txt", Proposed: "2023-01-01_notes.pdf"},
	}
}

func TestApply_IsolatesFailures(t *testing.T) {
	dir, entries := mixedBatch(t)

	report := Apply(context.Background(), dir, entries, Options{Workers: 2, Log: zerolog.Nop()})

	assert.Equal(t, []Status{StatusRenamed, StatusFailed, StatusFailed, StatusSkippedNonPDF}, statuses(report))
	assert.ErrorIs(t, report.Outcomes[1].Err, ErrDestinationExists)
	assert.ErrorIs(t, report.Outcomes[2].Err, os.ErrNotExist)
	assert.Equal(t, types.RunStats{Renamed: 1, Errors: 3}, report.Stats())
	assert.Len(t, report.Failed(), 3)

	assert.Equal(t, []string{"2023-01-01_good.pdf", "2023-01-01_taken.pdf", "notes.txt", "taken.pdf"}, listDir(t, dir))
}

func TestApply_DryRunMatchesRealRunWithoutMutating(t *testing.T) {
	dryDir, entries := mixedBatch(t)
	before := listDir(t, dryDir)

	dry := Apply(context.Background(), dryDir, entries, Options{DryRun: true, Log: zerolog.Nop()})
	assert.Equal(t, before, listDir(t, dryDir))
	for _, o := range dry.Outcomes {
		assert.True(t, o.DryRun)
	}

	realDir, entries := mixedBatch(t)
	real := Apply(context.Background(), realDir, entries, Options{Log: zerolog.Nop()})

	assert.Equal(t, statuses(real), statuses(dry))
	assert.Equal(t, real.Stats(), dry.Stats())
}

func TestApply_DuplicateDestinationGoesToFirstEntry(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")
	touch(t, dir, "b.pdf")
	entries := []types.PlanEntry{
		{Original: "a.pdf", Proposed: "2024-05-01_x.pdf"},
		{Original: "b.pdf", Proposed: "2024-05-01_x.pdf"},
	}

	report := Apply(context.Background(), dir, entries, Options{Log: zerolog.Nop()})

	assert.Equal(t, []Status{StatusRenamed, StatusFailed}, statuses(report))
	assert.ErrorIs(t, report.Outcomes[1].Err, ErrDestinationExists)
	data, err := os.ReadFile(filepath.Join(dir, "2024-05-01_x.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", string(data))
	assert.FileExists(t, filepath.Join(dir, "b.pdf"))
}

func TestApply_ManyEntriesConcurrently(t *testing.T) {
	dir := t.TempDir()
	var entries []types.PlanEntry
	for i := 0; i < 50; i++ {
		name := string(rune('a'+i%26)) + string(rune('a'+i/26)) + ".pdf"
		touch(t, dir, name)
		entries = append(entries, types.PlanEntry{Original: name, Proposed: "2020-01-01_" + name})
	}

	var done int
	report := Apply(context.Background(), dir, entries, Options{
		Workers: 4,
		OnDone:  func(Outcome) { done++ },
		Log:     zerolog.Nop(),
	})

	assert.Equal(t, 50, done)
	assert.Equal(t, types.RunStats{Renamed: 50}, report.Stats())
	for i, o := range report.Outcomes {
		assert.Equal(t, entries[i], o.Entry, "outcomes stay in plan order")
	}
}

func TestApply_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := Apply(ctx, dir, []types.PlanEntry{{Original: "a.pdf", Proposed: "2020-01-01_a.pdf"}}, Options{Log: zerolog.Nop()})

	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, StatusFailed, report.Outcomes[0].Status)
	assert.True(t, errors.Is(report.Outcomes[0].Err, context.Canceled))
	assert.FileExists(t, filepath.Join(dir, "a.pdf"))
}

func TestApply_Empty(t *testing.T) {
	report := Apply(context.Background(), t.TempDir(), nil, Options{Log: zerolog.Nop()})
	assert.Empty(t, report.Outcomes)
	assert.Equal(t, types.RunStats{}, report.Stats())
}
