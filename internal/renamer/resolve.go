// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renamer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// InputError reports a path that does not resolve to any PDF. It aborts the
// run before anything on disk is touched.
type InputError struct {
	Path   string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

const (
	reasonInvalidPath = "invalid path or file not found"
	reasonNoPDFs      = "no PDF files found in the specified path"
)

// Target is the resolved file set of a run.
type Target struct {
	// Path is the argument as given.
	Path string
	// Dir is the absolute directory holding the files.
	Dir string
	// Files are base names within Dir, sorted in directory mode.
	Files []string
	// Docs holds the same files with the modification times seen at listing.
	Docs []types.Document
	Mode types.RunMode
}

// Resolve turns a command-line path into a file set. An existing file is
// processed alone; an existing directory contributes every .pdf it holds;
// otherwise the path is looked up as a .pdf relative to workDir.
func Resolve(path, workDir string) (Target, error) {
	clean := filepath.Clean(path)

	if info, err := os.Stat(clean); err == nil {
		if info.Mode().IsRegular() {
			return single(path, clean)
		}
		if info.IsDir() {
			return directory(path, clean)
		}
	}

	if workDir != "" && !filepath.IsAbs(clean) {
		candidate := filepath.Join(workDir, clean)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() && types.IsPDF(candidate) {
			return single(path, candidate)
		}
	}

	return Target{}, &InputError{Path: path, Reason: reasonInvalidPath}
}

func single(path, file string) (Target, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return Target{}, &InputError{Path: path, Reason: reasonInvalidPath}
	}
	doc, err := types.StatDocument(abs)
	if err != nil {
		return Target{}, &InputError{Path: path, Reason: reasonInvalidPath}
	}
	return Target{
		Path:  path,
		Dir:   filepath.Dir(abs),
		Files: []string{doc.Name},
		Docs:  []types.Document{doc},
		Mode:  types.ModeFile,
	}, nil
}

func directory(path, dir string) (Target, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Target{}, &InputError{Path: path, Reason: reasonInvalidPath}
	}
	// os.ReadDir returns entries sorted by name.
	entries, err := os.ReadDir(abs)
	if err != nil {
		return Target{}, &InputError{Path: path, Reason: reasonInvalidPath}
	}
	t := Target{Path: path, Dir: abs, Mode: types.ModeDirectory}
	for _, e := range entries {
		if e.IsDir() || !types.IsPDF(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Removed since the listing.
			continue
		}
		t.Files = append(t.Files, e.Name())
		t.Docs = append(t.Docs, types.Document{Path: filepath.Join(abs, e.Name()), Name: e.Name(), ModTime: info.ModTime()})
	}
	if len(t.Files) == 0 {
		return Target{}, &InputError{Path: path, Reason: reasonNoPDFs}
	}
	return t, nil
}
