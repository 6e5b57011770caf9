package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	collection := []int{0, 1, 2, 3, 4, 5, 6}

	t.Run("windows", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 2}, Page(collection, 3, 0))
		assert.Equal(t, []int{3, 4, 5}, Page(collection, 3, 1))
		assert.Equal(t, []int{6}, Page(collection, 3, 2))
	})

	t.Run("past the end is empty, not an error", func(t *testing.T) {
		assert.Empty(t, Page(collection, 3, 3))
		assert.Empty(t, Page(collection, 3, 100))
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		assert.Empty(t, Page(collection, 0, 0))
		assert.Empty(t, Page(collection, -1, 0))
		assert.Empty(t, Page(collection, 3, -1))
		assert.Empty(t, Page([]int{}, 3, 0))
	})

	t.Run("concatenated pages reconstruct the collection", func(t *testing.T) {
		var rebuilt []int
		for i := 0; ; i++ {
			page := Page(collection, 2, i)
			if len(page) == 0 {
				break
			}
			rebuilt = append(rebuilt, page...)
		}
		assert.Equal(t, collection, rebuilt)
	})
}

func TestCursorMatchesDiscretePaging(t *testing.T) {
	collection := []string{"a", "b", "c", "d", "e"}
	cursor := NewCursor(collection, 2)

	for i := 0; cursor.More(); i++ {
		require.Equal(t, Page(collection, 2, i), cursor.Next())
	}

	// Exhausted cursor keeps returning empty pages.
	assert.Empty(t, cursor.Next())
	assert.Empty(t, cursor.Next())

	cursor.Reset()
	assert.Equal(t, []string{"a", "b"}, cursor.Next())
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, Pages([]int{}, 3))
	assert.Equal(t, 1, Pages([]int{1, 2}, 3))
	assert.Equal(t, 3, Pages([]int{1, 2, 3, 4, 5, 6, 7}, 3))
	assert.Equal(t, 0, Pages([]int{1}, 0))
}
