package derive

import (
	"regexp"
	"strings"

	"github.com/steamtrack/steamtrack/pkg/types"
)

var (
	markupRe     = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// labeledSizeRe matches an explicitly labeled storage field.
	labeledSizeRe = regexp.MustCompile(`(?i)(?:Storage|Available space|Disk space|Hard Drive|HDD|SSD):\s*([\d.]+\s*[GM]T?B)`)

	// sizeRe matches any size-unit token.
	sizeRe = regexp.MustCompile(`(?i)[\d.]+\s*[GM]B`)
)

// storageKeywords anchor the proximity search, tried in order.
var storageKeywords = []string{"storage", "space", "drive", "ssd", "hdd"}

// StripMarkup removes markup tags and collapses whitespace.
func StripMarkup(s string) string {
	text := markupRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Storage extracts the required storage size from free-text system
// requirement prose, which may contain markup and is inconsistently
// labeled across providers. Three tiers are tried in order: an explicit
// "Storage:"-style label, a size token following one of the storage
// keywords, and as a last resort the first size-unit token anywhere in
// the text. No tier matching yields unknown, never a guess.
func Storage(requirements string) string {
	text := StripMarkup(requirements)
	if text == "" {
		return types.Unknown
	}

	if m := labeledSizeRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	lower := strings.ToLower(text)
	for _, kw := range storageKeywords {
		idx := strings.Index(lower, kw)
		if idx == -1 {
			continue
		}
		if m := sizeRe.FindString(text[idx:]); m != "" {
			return m
		}
	}

	if m := sizeRe.FindString(text); m != "" {
		return m
	}
	return types.Unknown
}
