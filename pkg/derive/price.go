package derive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/steamtrack/steamtrack/pkg/sources"
	"github.com/steamtrack/steamtrack/pkg/types"
)

// Price derives the display price from the storefront price block and the
// community cents estimate. Three states are distinguished: explicitly
// free, a numeric price with optional discount, and unknown. A missing
// price never renders as free.
//
// The community estimate is a cents-denominated integer serialized as a
// string; an explicit "0" there also means free of charge.
func Price(isFree bool, overview *sources.PriceOverview, spyCents string) string {
	cents, hasCents := parseCents(spyCents)
	if isFree || (hasCents && cents == 0) {
		return "Free"
	}

	if overview != nil && overview.FinalFormatted != "" {
		if overview.DiscountPercent > 0 {
			return fmt.Sprintf("%s (−%d%%)", overview.FinalFormatted, overview.DiscountPercent)
		}
		return overview.FinalFormatted
	}

	if hasCents && cents > 0 {
		return fmt.Sprintf("$%.2f", float64(cents)/100)
	}

	return types.Unknown
}

// DealPrice renders a CheapShark decimal price string, which is always
// denominated in USD.
func DealPrice(price string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || v < 0 {
		return types.Unknown
	}
	return fmt.Sprintf("$%.2f USD", v)
}

// parseCents parses a cents-denominated integer string.
func parseCents(s string) (int, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}
	cents, err := strconv.Atoi(trimmed)
	if err != nil || cents < 0 {
		return 0, false
	}
	return cents, true
}
