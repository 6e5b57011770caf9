package sources

import (
	"encoding/json"
	"sort"
)

// Typed payload shapes for each source. These are the decoded JSON forms
// the providers hand to the aggregator; fields the engine never reads are
// omitted.

// StoreDetails is the Steam storefront appdetails payload.
type StoreDetails struct {
	Name               string              `json:"name"`
	ShortDescription   string              `json:"short_description"`
	IsFree             bool                `json:"is_free"`
	Developers         []string            `json:"developers"`
	Publishers         []string            `json:"publishers"`
	PriceOverview      *PriceOverview      `json:"price_overview"`
	Platforms          Platforms           `json:"platforms"`
	Metacritic         *Metacritic         `json:"metacritic"`
	Achievements       *Achievements       `json:"achievements"`
	ReleaseDate        *ReleaseDate        `json:"release_date"`
	SupportedLanguages string              `json:"supported_languages"`
	ControllerSupport  string              `json:"controller_support"`
	PCRequirements     Requirements        `json:"pc_requirements"`
	ContentDescriptors *ContentDescriptors `json:"content_descriptors"`
	Genres             []Genre             `json:"genres"`
}

// PriceOverview is the storefront price block. Initial and Final are
// cents-denominated integers; FinalFormatted is the storefront's own
// localized rendering.
type PriceOverview struct {
	Currency        string `json:"currency"`
	Initial         int    `json:"initial"`
	Final           int    `json:"final"`
	DiscountPercent int    `json:"discount_percent"`
	FinalFormatted  string `json:"final_formatted"`
}

// Platforms flags which operating systems the storefront lists.
type Platforms struct {
	Windows bool `json:"windows"`
	Mac     bool `json:"mac"`
	Linux   bool `json:"linux"`
}

// Metacritic is the storefront's embedded critic score.
type Metacritic struct {
	Score int    `json:"score"`
	URL   string `json:"url"`
}

// Achievements is the storefront achievement count block.
type Achievements struct {
	Total int `json:"total"`
}

// ReleaseDate carries the storefront's free-form display date alongside
// its coming-soon flag.
type ReleaseDate struct {
	ComingSoon bool   `json:"coming_soon"`
	Date       string `json:"date"`
}

// ContentDescriptors carries the storefront's free-text content notes.
type ContentDescriptors struct {
	Notes string `json:"notes"`
}

// Genre is one storefront genre entry.
type Genre struct {
	Description string `json:"description"`
}

// Requirements is the storefront system-requirements block. The API
// returns an object for most apps but an empty JSON array when no
// requirements are published, so it needs a lenient decoder.
type Requirements struct {
	Minimum     string `json:"minimum"`
	Recommended string `json:"recommended"`
}

// UnmarshalJSON tolerates the empty-array form of the requirements block.
func (r *Requirements) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		*r = Requirements{}
		return nil
	}
	type plain Requirements
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Requirements(p)
	return nil
}

// SpyDetails is the SteamSpy appdetails payload. Numeric fields SteamSpy
// serves as strings stay strings here; the derivation layer owns parsing.
type SpyDetails struct {
	AppID            int    `json:"appid"`
	Name             string `json:"name"`
	Developer        string `json:"developer"`
	Publisher        string `json:"publisher"`
	Positive         int    `json:"positive"`
	Negative         int    `json:"negative"`
	Owners           string `json:"owners"`
	AverageForever   int    `json:"average_forever"`
	Average2Weeks    int    `json:"average_2weeks"`
	MedianForever    int    `json:"median_forever"`
	CCU              int    `json:"ccu"`
	Price            string `json:"price"`
	ShortDescription string `json:"short_description"`
	Tags             TagSet `json:"tags"`
}

// TagSet maps community tag names to vote counts. SteamSpy serves an
// empty array instead of an empty object when an app has no tags.
type TagSet map[string]int

// Names returns the tag names ordered by vote count descending, ties by
// name, so downstream tag merging is deterministic.
func (t TagSet) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if t[names[i]] != t[names[j]] {
			return t[names[i]] > t[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// UnmarshalJSON tolerates the empty-array form of the tag map.
func (t *TagSet) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		*t = TagSet{}
		return nil
	}
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*t = m
	return nil
}

// PlayerCount is the live concurrent-player payload.
type PlayerCount struct {
	Count int `json:"player_count"`
}

// DealInfo is the CheapShark game-detail payload.
type DealInfo struct {
	Info              *DealTitle  `json:"info"`
	CheapestPriceEver *PricePoint `json:"cheapestPriceEver"`
	Deals             []DealOffer `json:"deals"`
}

// DealTitle is the CheapShark title block.
type DealTitle struct {
	Title string `json:"title"`
}

// PricePoint is a CheapShark price observation. Price is a decimal string.
type PricePoint struct {
	Price string `json:"price"`
	Date  int64  `json:"date"`
}

// DealOffer is one current CheapShark deal, best first.
type DealOffer struct {
	StoreID     string `json:"storeID"`
	DealID      string `json:"dealID"`
	Price       string `json:"price"`
	RetailPrice string `json:"retailPrice"`
	Savings     string `json:"savings"`
}

// WikiVideo is the PCGamingWiki video-feature payload.
type WikiVideo struct {
	UltrawideSupport string `json:"Ultrawide_support"`
	HDRSupport       string `json:"HDR_support"`
}

// ProtonSummary is the ProtonDB report-summary payload.
type ProtonSummary struct {
	Tier         string  `json:"tier"`
	Confidence   string  `json:"confidence"`
	Score        float64 `json:"score"`
	Total        int     `json:"total"`
	TrendingTier string  `json:"trendingTier"`
}
