package derive

import "strings"

// LanguageCount counts the supported languages in the storefront's
// delimited, possibly markup-laden language string. An empty result is
// unknown (nil), not zero.
func LanguageCount(s string) *int {
	clean := StripMarkup(s)
	if clean == "" {
		return nil
	}

	count := 0
	for _, part := range strings.Split(clean, ",") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return &count
}
