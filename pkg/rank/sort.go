// Package rank orders and windows collections of list rows. Sorting is
// stable, non-mutating, and total given the declared tie-breaks; paging
// is a pure slice of the sorted snapshot, usable either by explicit page
// index or through an advancing cursor.
package rank

import (
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/steamtrack/steamtrack/pkg/dates"
	"github.com/steamtrack/steamtrack/pkg/types"
)

// Key selects the sort order for a collection.
type Key string

const (
	// ByName sorts by display name, locale-aware.
	ByName Key = "name"
	// ByDate sorts by parsed release date, most recent first by default;
	// rows with the sentinel (unparseable/upcoming) date always sort to
	// the end regardless of direction.
	ByDate Key = "date"
	// ByPopularity sorts descending by the recent-popularity counter,
	// ties broken ascending by the original provider rank.
	ByPopularity Key = "popularity"
)

// Direction orders real date values; the sentinel is unaffected by it.
type Direction int

const (
	// Descending is most recent first (the default for dates).
	Descending Direction = iota
	// Ascending is oldest first.
	Ascending
)

// Sorter orders row collections. The zero value is not usable; construct
// with NewSorter.
type Sorter struct {
	parser   *dates.Parser
	collator *collate.Collator
}

// Option configures a Sorter.
type Option func(*Sorter)

// WithParser sets the date parser used for date ordering.
func WithParser(p *dates.Parser) Option {
	return func(s *Sorter) { s.parser = p }
}

// WithLocale sets the collation locale for name ordering.
func WithLocale(tag language.Tag) Option {
	return func(s *Sorter) { s.collator = collate.New(tag) }
}

// NewSorter creates a sorter with the default date parser and English
// collation.
func NewSorter(opts ...Option) *Sorter {
	s := &Sorter{
		parser:   dates.NewParser(),
		collator: collate.New(language.English),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sort returns a new collection ordered by the given key. The input is
// never mutated, and the sort is stable: equal-key equal-tie-break rows
// keep their relative order deterministically.
func (s *Sorter) Sort(rows []types.ListRow, key Key, direction ...Direction) []types.ListRow {
	dir := Descending
	if len(direction) > 0 {
		dir = direction[0]
	}

	sorted := slices.Clone(rows)
	switch key {
	case ByName:
		slices.SortStableFunc(sorted, func(a, b types.ListRow) int {
			return s.collator.CompareString(a.Name, b.Name)
		})
	case ByDate:
		// Parse each distinct display string once, not per comparison.
		parsed := make(map[string]time.Time, len(sorted))
		for _, row := range sorted {
			if _, ok := parsed[row.Released]; !ok {
				parsed[row.Released] = s.parser.Parse(row.Released)
			}
		}
		slices.SortStableFunc(sorted, func(a, b types.ListRow) int {
			return compareDates(parsed[a.Released], parsed[b.Released], dir)
		})
	case ByPopularity:
		slices.SortStableFunc(sorted, func(a, b types.ListRow) int {
			if c := b.Popularity() - a.Popularity(); c != 0 {
				return c
			}
			return a.Rank - b.Rank
		})
	}
	return sorted
}

// compareDates orders real dates per direction and pushes sentinel dates
// strictly after every real date in either direction.
func compareDates(a, b time.Time, dir Direction) int {
	aZero, bZero := a.IsZero(), b.IsZero()
	switch {
	case aZero && bZero:
		return 0
	case aZero:
		return 1
	case bZero:
		return -1
	}
	if dir == Ascending {
		return a.Compare(b)
	}
	return b.Compare(a)
}
