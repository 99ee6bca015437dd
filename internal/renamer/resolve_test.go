// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renamer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4"), 0o644))
	return p
}

func TestResolve_Directory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.pdf")
	touch(t, dir, "a.pdf")
	touch(t, dir, "readme.txt")
	touch(t, dir, "upper.PDF")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	got, err := Resolve(dir, "")
	require.NoError(t, err)
	assert.Equal(t, types.ModeDirectory, got.Mode)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, got.Files)
	assert.Equal(t, dir, got.Dir)

	require.Len(t, got.Docs, 2)
	info, err := os.Stat(filepath.Join(dir, "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, types.Document{Path: filepath.Join(dir, "a.pdf"), Name: "a.pdf", ModTime: info.ModTime()}, got.Docs[0])
}

func TestResolve_SingleFile(t *testing.T) {
	dir := t.TempDir()
	p := touch(t, dir, "report.pdf")

	got, err := Resolve(p, "")
	require.NoError(t, err)
	assert.Equal(t, types.ModeFile, got.Mode)
	assert.Equal(t, []string{"report.pdf"}, got.Files)
	assert.Equal(t, dir, got.Dir)
	require.Len(t, got.Docs, 1)
	assert.Equal(t, p, got.Docs[0].Path)
}

func TestResolve_RelativeToWorkDir(t *testing.T) {
	work := t.TempDir()
	touch(t, work, "scan.pdf")

	got, err := Resolve("scan.pdf", work)
	require.NoError(t, err)
	assert.Equal(t, types.ModeFile, got.Mode)
	assert.Equal(t, work, got.Dir)
	assert.Equal(t, []string{"scan.pdf"}, got.Files)
}

func TestResolve_Errors(t *testing.T) {
	empty := t.TempDir()
	touch(t, empty, "notes.txt")
	work := t.TempDir()
	touch(t, work, "notes.txt")

	tests := []struct {
		name   string
		path   string
		work   string
		reason string
	}{
		{"missing path", filepath.Join(empty, "nope"), "", reasonInvalidPath},
		{"directory without pdfs", empty, "", reasonNoPDFs},
		{"relative non-pdf", "notes.txt", work, reasonInvalidPath},
		{"relative missing", "gone.pdf", work, reasonInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.path, tt.work)
			var ie *InputError
			require.True(t, errors.As(err, &ie), "got %v", err)
			assert.Equal(t, tt.reason, ie.Reason)
			assert.Equal(t, tt.path, ie.Path)
		})
	}
}
