// Package dates parses the free-form, localized release-date strings the
// storefront serves ("12 Jan, 2023", "12 січ. 2023", "Coming soon") into
// canonical instants.
//
// This is a best-effort heuristic parser, not a validating one. Tokens
// are classified positionally: a numeric token of four or more digits is
// the year, a shorter numeric token is the day, and anything else is
// matched against the registered month tables. Tokens matching no rule
// are ignored. Day-first versus month-first ambiguity outside the coded
// tables is intentionally unresolved; callers must not assume correctness
// for out-of-convention inputs.
package dates

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// MonthTable maps lowercase month tokens (abbreviated or full) for one
// locale to their month. Matching is by substring, so "січня" matches the
// "січ" entry.
type MonthTable map[string]time.Month

// English month abbreviations.
var English = MonthTable{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Ukrainian month abbreviations.
var Ukrainian = MonthTable{
	"січ": time.January, "лют": time.February, "бер": time.March,
	"квіт": time.April, "трав": time.May, "черв": time.June,
	"лип": time.July, "серп": time.August, "вер": time.September,
	"жовт": time.October, "лист": time.November, "груд": time.December,
}

// Parser converts localized date strings into instants using a
// configurable set of month tables.
type Parser struct {
	tables []MonthTable
	now    func() time.Time
}

// NewParser creates a parser with the given month tables. With no tables
// it registers English and Ukrainian, the locales the storefront serves
// by default.
func NewParser(tables ...MonthTable) *Parser {
	if len(tables) == 0 {
		tables = []MonthTable{English, Ukrainian}
	}
	return &Parser{tables: tables, now: time.Now}
}

// defaultParser backs the package-level Parse.
var defaultParser = NewParser()

// Parse converts a date string with the default parser. See Parser.Parse.
func Parse(s string) time.Time {
	return defaultParser.Parse(s)
}

// Parse converts a free-form date string into an instant. The zero time
// is the sentinel for "no usable date": it is returned for empty input,
// the unknown marker, and explicit coming-soon/upcoming text, and it is
// distinct from any real date the parser can produce.
//
// A missing year defaults to the current year, a missing day to 1, and a
// missing month to January.
func (p *Parser) Parse(s string) time.Time {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" || lower == "—" ||
		strings.Contains(lower, "coming soon") ||
		strings.Contains(lower, "upcoming") {
		return time.Time{}
	}

	day := 1
	month := time.January
	year := p.now().Year()
	matched := false

	for _, token := range strings.Fields(lower) {
		clean := strings.ReplaceAll(token, ",", "")
		clean = strings.Trim(clean, ".")
		if clean == "" {
			continue
		}

		if n, err := strconv.Atoi(clean); err == nil {
			if len(clean) >= 4 {
				year = n
			} else {
				day = n
			}
			matched = true
			continue
		}

		if m, ok := p.month(clean); ok {
			month = m
			matched = true
		}
		// Unmatched tokens are ignored, not an error.
	}

	if !matched {
		return time.Time{}
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// month tests a token against every registered table and returns the
// first match. Keys are tried in sorted order so the result does not
// depend on map iteration order.
func (p *Parser) month(token string) (time.Month, bool) {
	for _, table := range p.tables {
		keys := make([]string, 0, len(table))
		for key := range table {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if strings.Contains(token, key) {
				return table[key], true
			}
		}
	}
	return 0, false
}
