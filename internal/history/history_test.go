// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

func openTest(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", dbFile)
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestRecordAndList(t *testing.T) {
	s, _ := openTest(t)
	ctx := context.Background()
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	first := types.RunRecord{
		StartedAt: start,
		Target:    "/docs",
		Mode:      types.ModeDirectory,
		BackupDir: "/docs/backup_20261019_120000",
		Stats:     types.RunStats{Total: 2, Renamed: 1, SkippedNoDate: 1},
	}
	second := types.RunRecord{
		StartedAt: start.Add(time.Minute),
		Target:    "/docs",
		Mode:      types.ModeFile,
		DryRun:    true,
		Stats:     types.RunStats{Total: 1, SkippedFormatted: 1},
	}

	id1, err := s.Record(ctx, first)
	require.NoError(t, err)
	id2, err := s.Record(ctx, second)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, id2, got[0].ID)
	assert.True(t, got[0].DryRun)
	assert.Equal(t, types.ModeFile, got[0].Mode)
	assert.Empty(t, got[0].BackupDir)

	assert.Equal(t, id1, got[1].ID)
	assert.True(t, got[1].StartedAt.Equal(start))
	assert.Equal(t, first.BackupDir, got[1].BackupDir)
	assert.Equal(t, first.Stats, got[1].Stats)
}

func TestListLimit(t *testing.T) {
	s, _ := openTest(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, types.RunRecord{StartedAt: time.Now(), Target: "/x", Mode: types.ModeDirectory})
		require.NoError(t, err)
	}

	got, err := s.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, int64(5), got[0].ID)
}

func TestReopenKeepsRuns(t *testing.T) {
	s, path := openTest(t)
	_, err := s.Record(context.Background(), types.RunRecord{StartedAt: time.Now(), Target: "/x", Mode: types.ModeFile})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()
	got, err := again.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListEmpty(t *testing.T) {
	s, _ := openTest(t)
	got, err := s.List(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
