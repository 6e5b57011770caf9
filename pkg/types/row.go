package types

// ListRow is the lightweight projection of a game used in ranked grids
// and search results. Rows in one collection share a sort key and carry
// the original per-row rank for tie-breaking.
type ListRow struct {
	AppID    string
	Name     string
	Released string
	Price    string
	Owners   string

	// TwoWeekPlayers is the recent-popularity counter; nil = unknown.
	TwoWeekPlayers *int

	// Rank is the position assigned by the query that produced this row.
	Rank int
}

// Popularity returns the recent-popularity counter, treating an absent
// counter as zero for ordering purposes.
func (r ListRow) Popularity() int {
	if r.TwoWeekPlayers == nil {
		return 0
	}
	return *r.TwoWeekPlayers
}
