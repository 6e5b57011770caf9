package rank

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamtrack/steamtrack/pkg/types"
)

func row(appID, name, released string, players *int, rank int) types.ListRow {
	return types.ListRow{
		AppID:          appID,
		Name:           name,
		Released:       released,
		TwoWeekPlayers: players,
		Rank:           rank,
	}
}

func intPtr(n int) *int { return &n }

func names(rows []types.ListRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestSortByName(t *testing.T) {
	s := NewSorter()
	rows := []types.ListRow{
		row("3", "celeste", "", nil, 2),
		row("1", "Bastion", "", nil, 0),
		row("2", "Aperture Desk Job", "", nil, 1),
	}

	sorted := s.Sort(rows, ByName)
	assert.Equal(t, []string{"Aperture Desk Job", "Bastion", "celeste"}, names(sorted))

	// Input untouched.
	assert.Equal(t, "celeste", rows[0].Name)
}

func TestSortByDate(t *testing.T) {
	s := NewSorter()
	rows := []types.ListRow{
		row("a", "Old", "12 Jan, 2015", nil, 0),
		row("b", "Upcoming", "Coming soon", nil, 1),
		row("c", "New", "3 Oct, 2023", nil, 2),
		row("d", "Mid", "7 Jun, 2019", nil, 3),
		row("e", "Unset", "", nil, 4),
	}

	t.Run("descending puts newest first, sentinel last", func(t *testing.T) {
		sorted := s.Sort(rows, ByDate)
		assert.Equal(t, []string{"New", "Mid", "Old", "Upcoming", "Unset"}, names(sorted))
	})

	t.Run("ascending still puts sentinel last", func(t *testing.T) {
		sorted := s.Sort(rows, ByDate, Ascending)
		assert.Equal(t, []string{"Old", "Mid", "New", "Upcoming", "Unset"}, names(sorted))
	})
}

func TestSortByPopularity(t *testing.T) {
	s := NewSorter()

	t.Run("descending with rank tie-break", func(t *testing.T) {
		rows := []types.ListRow{
			row("a", "Third", "", intPtr(100), 5),
			row("b", "First", "", intPtr(9000), 3),
			row("c", "Fourth", "", intPtr(100), 7),
			row("d", "Second", "", intPtr(500), 1),
		}
		sorted := s.Sort(rows, ByPopularity)
		assert.Equal(t, []string{"First", "Second", "Third", "Fourth"}, names(sorted))
	})

	t.Run("absent counter treated as zero", func(t *testing.T) {
		rows := []types.ListRow{
			row("a", "NoCounter", "", nil, 2),
			row("b", "Small", "", intPtr(1), 9),
			row("c", "AlsoNone", "", nil, 1),
		}
		sorted := s.Sort(rows, ByPopularity)
		// Zero-counter rows order ascending by original rank.
		assert.Equal(t, []string{"Small", "AlsoNone", "NoCounter"}, names(sorted))
	})

	t.Run("equal key and tie-break keeps stable order", func(t *testing.T) {
		rows := []types.ListRow{
			row("x", "A", "", intPtr(10), 1),
			row("y", "B", "", intPtr(10), 1),
		}
		first := s.Sort(rows, ByPopularity)
		second := s.Sort(rows, ByPopularity)
		require.Empty(t, cmp.Diff(first, second))
		assert.Equal(t, []string{"A", "B"}, names(first))
	})
}
