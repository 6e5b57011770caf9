// Package config carries the runtime settings the storefront queries
// depend on: the country code and language the Steam APIs localize
// prices and dates with, and the optional request proxy.
package config

import (
	"context"
	"strings"

	"github.com/spf13/viper"

	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/constants"
)

// Viper keys.
const (
	KeyRegionCC   = "region.cc"
	KeyRegionLang = "region.lang"
	KeyProxy      = "proxy"
)

// Region localizes storefront requests.
type Region struct {
	CC   string
	Lang string
}

// Default is the privacy-safe fallback region.
func Default() Region {
	return Region{CC: "US", Lang: "english"}
}

// languageByCountry maps country codes to the Steam language the
// storefront should localize for. Unlisted countries stay on English.
var languageByCountry = map[string]string{
	"UA": "ukrainian",
	"DE": "german", "AT": "german", "CH": "german",
	"FR": "french", "BE": "french", "LU": "french",
	"ES": "spanish", "MX": "spanish", "AR": "spanish", "CL": "spanish", "CO": "spanish",
	"PL": "polish",
	"TR": "turkish",
	"BR": "brazilian",
	"IT": "italian",
}

// LanguageFor returns the Steam language for a country code.
func LanguageFor(cc string) string {
	if lang, ok := languageByCountry[strings.ToUpper(cc)]; ok {
		return lang
	}
	return Default().Lang
}

// FromViper reads the region from configuration, falling back to the
// defaults field by field. An explicit country code without an explicit
// language picks the language for that country.
func FromViper(v *viper.Viper) Region {
	region := Default()
	if cc := v.GetString(KeyRegionCC); cc != "" {
		region.CC = strings.ToUpper(cc)
		region.Lang = LanguageFor(region.CC)
	}
	if lang := v.GetString(KeyRegionLang); lang != "" {
		region.Lang = strings.ToLower(lang)
	}
	return region
}

// geoResponse is the shape of the ipapi.co lookup.
type geoResponse struct {
	CountryCode string `json:"country_code"`
}

// geoURL is the privacy-friendly IP geolocation endpoint.
const geoURL = "https://ipapi.co/json/"

// Detect resolves the caller's region from their IP. Failures fall back
// to the default region rather than erroring; localization is cosmetic,
// so the lookup gets a short bounded wait instead of the full HTTP
// timeout.
func Detect(ctx context.Context, client *transport.Client) Region {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	var geo geoResponse
	if err := client.GetJSON(ctx, "geoip", geoURL, &geo); err != nil || geo.CountryCode == "" {
		return Default()
	}
	cc := strings.ToUpper(geo.CountryCode)
	return Region{CC: cc, Lang: LanguageFor(cc)}
}
