// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/pdiddy/pdf-renamer/internal/executor"
)

// newProgress starts a stderr progress bar for total renames and returns
// the callback that advances it.
func newProgress(total int) func(executor.Outcome) {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Renaming"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
	return func(executor.Outcome) {
		_ = bar.Add(1)
	}
}
