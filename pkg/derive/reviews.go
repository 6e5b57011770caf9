package derive

import (
	"fmt"
	"math"

	"github.com/steamtrack/steamtrack/pkg/types"
)

// ReviewScore derives the display score and review count from community
// review tallies, falling back to an external critic score when no
// community reviews exist. The review count is the summed total, not
// either half.
func ReviewScore(positive, negative int, critic *int) (score, count string) {
	total := positive + negative
	if total > 0 {
		pct := int(math.Round(float64(positive) / float64(total) * 100))
		return fmt.Sprintf("%d%%", pct), Abbrev(int64(total))
	}
	if critic != nil && *critic > 0 {
		return fmt.Sprintf("%d/100", *critic), types.Unknown
	}
	return types.Unknown, types.Unknown
}
