// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates finds a calendar date in raw document text.
//
// Find is pure: it takes the text of at most two pages and returns the first
// date recovered by an ordered list of date-shape patterns. It performs no
// I/O so it can be tested with literal strings.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

const (
	// MaxPages is the number of leading pages searched.
	MaxPages = 2
	// fallbackLines is the number of leading lines searched one at a time
	// when the whole-text pass finds nothing.
	fallbackLines = 10
)

// pattern pairs a date-shape expression with the parser for its match.
type pattern struct {
	name  string
	re    *regexp.Regexp
	parse func(string) (types.Date, bool)
}

// patterns are tried in order; only the first match of each is considered.
var patterns = []pattern{
	{"day-monthname-year", regexp.MustCompile(`\b(\d{1,2}\s+\w{3,}\s+\d{4})\b`), parseDayMonthName},
	{"d/m/y", regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`), parseNumeric("/")},
	{"d-m-y", regexp.MustCompile(`\b(\d{1,2}-\d{1,2}-\d{4})\b`), parseNumeric("-")},
	{"y-m-d", regexp.MustCompile(`\b(\d{4}-\d{1,2}-\d{1,2})\b`), parseISO},
	{"monthname-day-year", regexp.MustCompile(`\b(\w{3,}\s+\d{1,2},\s+\d{4})\b`), parseMonthNameDay},
}

// Hit records where a date was found, for diagnostics.
type Hit struct {
	Date    types.Date
	Page    int    // 1-based page number
	Line    int    // 1-based line number, 0 for the whole-text pass
	Pattern string // pattern name
	Match   string // matched text
}

// Find returns the first date found in pages. Only the first MaxPages
// entries are searched; empty pages are skipped.
func Find(pages []string) (types.Date, bool) {
	h, ok := Locate(pages)
	return h.Date, ok
}

// Locate is Find with provenance.
func Locate(pages []string) (Hit, bool) {
	for i, text := range pages {
		if i >= MaxPages {
			break
		}
		if text == "" {
			continue
		}
		if h, ok := searchPage(text); ok {
			h.Page = i + 1
			return h, true
		}
	}
	return Hit{}, false
}

// searchPage runs the whole-text pass, then the line-by-line fallback.
func searchPage(text string) (Hit, bool) {
	if h, ok := searchText(text); ok {
		return h, true
	}
	lines := strings.Split(text, "\n")
	if len(lines) > fallbackLines {
		lines = lines[:fallbackLines]
	}
	for n, line := range lines {
		if h, ok := searchText(line); ok {
			h.Line = n + 1
			return h, true
		}
	}
	return Hit{}, false
}

// searchText tries each pattern in order. A match that does not parse into
// a valid date counts as no match and the next pattern is tried.
func searchText(text string) (Hit, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if d, ok := p.parse(m[1]); ok {
			return Hit{Date: d, Pattern: p.name, Match: m[1]}, true
		}
	}
	return Hit{}, false
}

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

func lookupMonth(word string) (time.Month, bool) {
	m, ok := months[strings.ToLower(word)]
	return m, ok
}

// parseDayMonthName parses "12 January 2023".
func parseDayMonthName(s string) (types.Date, bool) {
	f := strings.Fields(s)
	if len(f) != 3 {
		return types.Date{}, false
	}
	month, ok := lookupMonth(f[1])
	if !ok {
		return types.Date{}, false
	}
	return build(f[2], month, f[0])
}

// parseMonthNameDay parses "January 12, 2023".
func parseMonthNameDay(s string) (types.Date, bool) {
	f := strings.Fields(s)
	if len(f) != 3 {
		return types.Date{}, false
	}
	month, ok := lookupMonth(f[0])
	if !ok {
		return types.Date{}, false
	}
	return build(f[2], month, strings.TrimSuffix(f[1], ","))
}

// parseNumeric returns a parser for D<sep>M<sep>Y. The first field is the
// day unless it can only be a month: "01/13/2023" has no month 13, so it is
// read month-first as 13 January.
func parseNumeric(sep string) func(string) (types.Date, bool) {
	return func(s string) (types.Date, bool) {
		f := strings.Split(s, sep)
		if len(f) != 3 {
			return types.Date{}, false
		}
		a, errA := strconv.Atoi(f[0])
		b, errB := strconv.Atoi(f[1])
		y, errY := strconv.Atoi(f[2])
		if errA != nil || errB != nil || errY != nil {
			return types.Date{}, false
		}
		day, month := a, b
		if b > 12 && a <= 12 {
			day, month = b, a
		}
		return types.NewDate(y, time.Month(month), day)
	}
}

// parseISO parses Y-M-D.
func parseISO(s string) (types.Date, bool) {
	f := strings.Split(s, "-")
	if len(f) != 3 {
		return types.Date{}, false
	}
	m, err := strconv.Atoi(f[1])
	if err != nil {
		return types.Date{}, false
	}
	return build(f[0], time.Month(m), f[2])
}

func build(year string, month time.Month, day string) (types.Date, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return types.Date{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return types.Date{}, false
	}
	return types.NewDate(y, month, d)
}
