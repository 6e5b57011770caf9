package derive

import (
	"strconv"
	"strings"

	"github.com/steamtrack/steamtrack/pkg/types"
)

// ownersDelimiter separates the two sides of the ownership estimate.
const ownersDelimiter = " .. "

// Owners parses the two-sided free-text ownership range. When the text
// matches "low .. high" both sides become integers and the range is
// numeric; otherwise the original text is kept for display but marked
// non-numeric so nothing does arithmetic on it.
func Owners(text string) types.OwnersRange {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return types.OwnersRange{Text: types.Unknown}
	}

	parts := strings.Split(trimmed, ownersDelimiter)
	if len(parts) == 2 {
		low, errLow := parseGrouped(parts[0])
		high, errHigh := parseGrouped(parts[1])
		if errLow == nil && errHigh == nil {
			r := types.OwnersRange{Low: low, High: high, Numeric: true}
			r.Text = Abbrev(low) + " – " + Abbrev(high)
			return r
		}
	}

	return types.OwnersRange{Text: trimmed}
}

// parseGrouped parses an integer that may carry comma grouping.
func parseGrouped(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseInt(clean, 10, 64)
}
