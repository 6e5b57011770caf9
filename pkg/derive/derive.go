// Package derive computes presentation-ready metrics from the normalized
// raw fields the providers return: review percentages, formatted prices,
// playtime buckets, ownership ranges, storage sizes dug out of free-text
// requirement prose, language counts, and compatibility tiers.
//
// Every function here is pure and degrades to the explicit unknown marker
// on malformed input rather than failing; an aggregation must never die
// because one provider returned an unexpected shape.
package derive

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/steamtrack/steamtrack/pkg/sources"
	"github.com/steamtrack/steamtrack/pkg/types"
)

// Abbrev renders a count in the compact human form used across the UI:
// millions and thousands to one decimal place, smaller values with comma
// grouping.
func Abbrev(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return humanize.Comma(n)
	}
}

// Comma renders a count with thousands separators.
func Comma(n int64) string {
	return humanize.Comma(n)
}

var titleCaser = cases.Title(language.English)

// TitleCase normalizes provider enum strings ("full", "gold", "platinum")
// for display.
func TitleCase(s string) string {
	return titleCaser.String(s)
}

// Platforms lists the supported operating systems in display form.
func Platforms(p sources.Platforms) []string {
	var list []string
	if p.Windows {
		list = append(list, "Win")
	}
	if p.Mac {
		list = append(list, "Mac")
	}
	if p.Linux {
		list = append(list, "Lin")
	}
	return list
}

// SupportFlag converts PCGamingWiki's stringly-typed booleans into
// display values.
func SupportFlag(s string) string {
	switch s {
	case "true":
		return "Supported"
	case "false":
		return "No"
	default:
		return types.Unknown
	}
}

// CompatTier combines an explicit platform-support note with a separate
// compatibility rating. With both present the rating tier is appended in
// parentheses; with one, that one; with neither, unknown.
func CompatTier(note, tier string) string {
	hasNote := !types.IsUnknown(note)
	hasTier := !types.IsUnknown(tier)
	switch {
	case hasNote && hasTier:
		return fmt.Sprintf("%s (%s)", note, TitleCase(tier))
	case hasNote:
		return note
	case hasTier:
		return TitleCase(tier)
	default:
		return types.Unknown
	}
}
