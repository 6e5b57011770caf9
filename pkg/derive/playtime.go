package derive

import (
	"fmt"

	"github.com/steamtrack/steamtrack/pkg/types"
)

// Playtime buckets a minute count into the compact display form. Zero or
// negative minutes is treated as unknown, not as a real zero duration.
func Playtime(minutes int) string {
	if minutes <= 0 {
		return types.Unknown
	}
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
