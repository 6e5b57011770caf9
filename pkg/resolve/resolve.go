// Package resolve implements per-field fallback resolution across data
// sources. Each field declares a fixed chain: an ordered list of candidate
// values with provenance and a validity predicate. The resolver returns
// the first candidate that is present and valid; ties are broken by
// declaration order, never by value magnitude. Resolution is pure and
// deterministic so priority order stays auditable and testable instead of
// buried in conditional expressions.
package resolve

import (
	"strings"

	"github.com/steamtrack/steamtrack/pkg/sources"
)

// Candidate pairs a value with the source that supplied it. Present is
// false when the source failed or had no value for the field; absent
// candidates never win regardless of the predicate.
type Candidate[T any] struct {
	Source  sources.ID
	Value   T
	Present bool
}

// From builds a present candidate.
func From[T any](source sources.ID, value T) Candidate[T] {
	return Candidate[T]{Source: source, Value: value, Present: true}
}

// FromPtr builds a candidate from an optional value; a nil pointer is an
// absent candidate.
func FromPtr[T any](source sources.ID, value *T) Candidate[T] {
	if value == nil {
		return Candidate[T]{Source: source}
	}
	return Candidate[T]{Source: source, Value: *value, Present: true}
}

// Absent builds an explicitly absent candidate, keeping a failed source
// visible in the declared chain.
func Absent[T any](source sources.ID) Candidate[T] {
	return Candidate[T]{Source: source}
}

// Chain declares the fallback policy for one field: candidates are
// evaluated in the order given and the first one passing Valid wins.
type Chain[T any] struct {
	// Field names the record field this chain resolves, for logging.
	Field string

	// Valid accepts a usable value. A nil predicate accepts anything.
	Valid func(T) bool
}

// Resolve returns the first present candidate whose value passes the
// validity predicate, along with the source it came from. When no
// candidate qualifies, ok is false and the zero value is returned; the
// caller maps that to its explicit unknown marker.
func (c Chain[T]) Resolve(candidates ...Candidate[T]) (value T, source sources.ID, ok bool) {
	for _, cand := range candidates {
		if !cand.Present {
			continue
		}
		if c.Valid != nil && !c.Valid(cand.Value) {
			continue
		}
		return cand.Value, cand.Source, true
	}
	var zero T
	return zero, "", false
}

// Standard validity predicates.

// NonEmpty accepts strings with non-whitespace content that are not the
// unknown marker.
func NonEmpty(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed != "" && trimmed != "—"
}

// Positive accepts integers greater than zero.
func Positive(n int) bool {
	return n > 0
}

// NonNegative accepts integers of zero or more.
func NonNegative(n int) bool {
	return n >= 0
}

// Any accepts every present value.
func Any[T any](T) bool {
	return true
}
