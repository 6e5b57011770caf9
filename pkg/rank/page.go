package rank

import "github.com/steamtrack/steamtrack/pkg/types"

// Page returns the zero-based pageIndex-th window of size pageSize from
// the collection. An index past the last page returns an empty slice,
// not an error; concatenating consecutive pages reconstructs the
// collection exactly.
func Page[T any](collection []T, pageSize, pageIndex int) []T {
	if pageSize <= 0 || pageIndex < 0 {
		return []T{}
	}
	start := pageIndex * pageSize
	if start >= len(collection) {
		return []T{}
	}
	end := min(start+pageSize, len(collection))
	return collection[start:end]
}

// Cursor consumes a collection incrementally, one page per Next call.
// It is sugar over Page: the same collection and page size produce
// byte-identical slices whether accessed discretely or through a cursor.
type Cursor[T any] struct {
	collection []T
	pageSize   int
	next       int
}

// NewCursor creates a cursor over a snapshot of the collection.
func NewCursor[T any](collection []T, pageSize int) *Cursor[T] {
	return &Cursor[T]{collection: collection, pageSize: pageSize}
}

// Next returns the next page and advances the cursor. After the
// collection is exhausted it keeps returning empty slices.
func (c *Cursor[T]) Next() []T {
	page := Page(c.collection, c.pageSize, c.next)
	if len(page) > 0 {
		c.next++
	}
	return page
}

// More reports whether another non-empty page remains.
func (c *Cursor[T]) More() bool {
	return c.pageSize > 0 && c.next*c.pageSize < len(c.collection)
}

// Reset rewinds the cursor to the first page.
func (c *Cursor[T]) Reset() {
	c.next = 0
}

// Pages returns the total number of pages in a collection of the given
// length at the given page size.
func Pages[T any](collection []T, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (len(collection) + pageSize - 1) / pageSize
}

// Rows is a convenience alias for paging list rows.
func Rows(collection []types.ListRow, pageSize, pageIndex int) []types.ListRow {
	return Page(collection, pageSize, pageIndex)
}
