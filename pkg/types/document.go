// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pdf-renamer pipeline:
// documents, extracted dates, rename plan entries, backup snapshots, run
// statistics, and configuration.
package types

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// PDFExt is the extension a file must carry to be considered a PDF. The match
// is case-sensitive, as in directory listings and backup comparisons.
const PDFExt = ".pdf"

// IsPDF reports whether name carries the PDF extension.
func IsPDF(name string) bool {
	return strings.HasSuffix(name, PDFExt)
}

// Document is a PDF on disk, listed once per run and never mutated.
type Document struct {
	// Path is the full filesystem path.
	Path string `json:"path" yaml:"path"`

	// Name is the base filename.
	Name string `json:"name" yaml:"name"`

	// ModTime is the file modification time at listing.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
}

// StatDocument lists the file at path.
func StatDocument(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, err
	}
	return Document{Path: path, Name: filepath.Base(path), ModTime: info.ModTime()}, nil
}

// Date is a calendar date with no time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date if year, month and day form a valid calendar
// date, and false otherwise (e.g. 31 February).
func NewDate(year int, month time.Month, day int) (Date, bool) {
	if year < 1 || year > 9999 || month < time.January || month > time.December || day < 1 {
		return Date{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

// String returns the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler so dates serialize in
// canonical form in JSON and YAML output.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// datePrefix matches a filename that already carries the canonical prefix.
var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_`)

// HasDatePrefix reports whether name already starts with YYYY-MM-DD_.
func HasDatePrefix(name string) bool {
	return datePrefix.MatchString(name)
}
