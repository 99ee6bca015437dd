// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package planner

import (
	"github.com/rs/zerolog"

	"github.com/pdiddy/pdf-renamer/internal/dates"
	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// PageReader returns the raw text of up to max leading pages of a document.
type PageReader interface {
	PageTexts(path string, max int) ([]string, error)
}

// DocumentExtractor reads page text and searches it for a date.
type DocumentExtractor struct {
	Pages PageReader
	Log   zerolog.Logger
}

// ExtractDate implements Extractor.
func (x DocumentExtractor) ExtractDate(path string) (types.Date, bool, error) {
	texts, err := x.Pages.PageTexts(path, dates.MaxPages)
	if err != nil {
		x.Log.Debug().Err(err).Str("file", path).Msg("text extraction failed")
		return types.Date{}, false, err
	}
	hit, ok := dates.Locate(texts)
	if !ok {
		x.Log.Debug().Str("file", path).Int("pages", len(texts)).Msg("no date found")
		return types.Date{}, false, nil
	}
	x.Log.Debug().
		Str("file", path).
		Str("date", hit.Date.String()).
		Str("pattern", hit.Pattern).
		Str("match", hit.Match).
		Int("page", hit.Page).
		Int("line", hit.Line).
		Msg("date found")
	return hit.Date, true, nil
}
