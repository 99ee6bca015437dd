// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext reads the plain text layer of leading PDF pages.
// Only the embedded text layer is extracted; scanned (image-only) pages
// yield empty text.
package pdftext

import (
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader extracts page text with github.com/ledongthuc/pdf.
type Reader struct{}

// PageTexts returns the plain text of up to max leading pages of the PDF at
// path, one line of text per baseline. A null or undecodable page yields an
// empty string so that later pages are still searched; a file that cannot be
// opened is an error.
func (Reader) PageTexts(path string, max int) (texts []string, err error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	// The decoder panics on some malformed streams.
	defer func() {
		if rec := recover(); rec != nil {
			texts, err = nil, fmt.Errorf("decode pdf %s: %v", path, rec)
		}
	}()

	n := r.NumPage()
	if n > max {
		n = max
	}
	texts = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, pageText(p))
	}
	return texts, nil
}

// pageText returns the text of one page, or "" when its content stream
// cannot be decoded.
func pageText(p pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	return joinGlyphs(p.Content().Text)
}

// joinGlyphs rebuilds text lines from positioned glyphs in content-stream
// order. A change of baseline starts a new line; a horizontal gap wider than
// a fraction of the font size between glyphs on the same line becomes a
// space.
func joinGlyphs(glyphs []pdf.Text) string {
	var b strings.Builder
	var prev pdf.Text
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		if prev.S != "" {
			switch {
			case math.Abs(g.Y-prev.Y) > lineTolerance(prev, g):
				b.WriteByte('\n')
			case prev.W > 0 && g.X-(prev.X+prev.W) > gapFactor*fontSize(prev, g) &&
				!strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " "):
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
		prev = g
	}
	return b.String()
}

const (
	// baselineFactor is the share of the font size by which two glyphs'
	// baselines may differ and still count as one line.
	baselineFactor = 0.5
	// gapFactor is the share of the font size above which a gap between
	// glyphs is read as a word break.
	gapFactor = 0.25
)

func fontSize(a, b pdf.Text) float64 {
	return math.Max(a.FontSize, b.FontSize)
}

func lineTolerance(a, b pdf.Text) float64 {
	return math.Max(1, baselineFactor*fontSize(a, b))
}
