package types

import "time"

// Unknown is the explicit marker for a display field no provider could
// supply. Missing data is never coerced to a zero value or "Free".
const Unknown = "—"

// IsUnknown reports whether a display value is the unknown marker or empty.
func IsUnknown(s string) bool {
	return s == "" || s == Unknown
}

// ReleaseInfo carries a release date in both its canonical parsed form and
// the provider's original display string. A zero Parsed time is the
// sentinel for "no usable date" and is distinct from a real epoch date.
type ReleaseInfo struct {
	Display string
	Parsed  time.Time
}

// OwnersRange is a parsed two-sided ownership estimate. When the source
// text does not match the expected "low .. high" form, the original text
// is kept for display and Numeric is false, so no numeric operation
// trusts it.
type OwnersRange struct {
	Low     int64
	High    int64
	Text    string
	Numeric bool
}

// GameRecord is the canonical reconciled representation of one game,
// built from exactly one fan-out bundle. It is immutable from the core's
// perspective: field refreshes produce a new record, never an in-place
// mutation of data used for sorting.
type GameRecord struct {
	// Identity
	AppID string
	Name  string

	// Description and attribution
	Description string
	Developer   string
	Publisher   string
	Tags        []string

	// Price fields. Formatted display values; "Free" is a distinguished
	// value, not zero-with-unit.
	Price         string
	HistoricalLow string
	BestDeal      string

	// Popularity fields. Nil pointer = unknown.
	LivePlayers *int
	TwoWeekCCU  *int
	Owners      OwnersRange

	// Review fields
	Positive    int
	Negative    int
	Score       string
	ReviewCount string

	// Playtime fields (bucketed display strings)
	AvgForever    string
	MedianForever string
	Avg2Weeks     string

	// Metadata fields
	Release      ReleaseInfo
	Platforms    []string
	Languages    *int
	Controller   string
	Storage      string
	Achievements string

	// Compatibility fields
	Ultrawide string
	HDR       string
	Deck      string

	// Rank is the position assigned by the originating provider query,
	// used only as a sort tie-break.
	Rank int
}

// WithLivePlayers returns a copy of the record with a refreshed live
// player count. Review and price fields are untouched by this refresh.
func (r GameRecord) WithLivePlayers(count int) GameRecord {
	r.LivePlayers = &count
	return r
}

// Row projects the record onto its lightweight list form.
func (r GameRecord) Row() ListRow {
	row := ListRow{
		AppID:    r.AppID,
		Name:     r.Name,
		Released: r.Release.Display,
		Price:    r.Price,
		Owners:   r.Owners.Text,
		Rank:     r.Rank,
	}
	if r.TwoWeekCCU != nil {
		ccu := *r.TwoWeekCCU
		row.TwoWeekPlayers = &ccu
	}
	return row
}
