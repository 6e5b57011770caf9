// Package aggregate turns one settled provider bundle into the canonical
// game record. Field-level fallback order lives here, expressed as resolve
// chains, and every display metric goes through the derivation layer so a
// missing or malformed provider value becomes the explicit unknown marker
// instead of a zero.
package aggregate

import (
	"context"
	"strings"

	"github.com/steamtrack/steamtrack/pkg/dates"
	"github.com/steamtrack/steamtrack/pkg/derive"
	"github.com/steamtrack/steamtrack/pkg/errors"
	"github.com/steamtrack/steamtrack/pkg/logging"
	"github.com/steamtrack/steamtrack/pkg/resolve"
	"github.com/steamtrack/steamtrack/pkg/sources"
	"github.com/steamtrack/steamtrack/pkg/types"
)

// maxTags caps how many genre and community tags a record carries.
const maxTags = 10

// Aggregator fans a lookup out to every registered source and reconciles
// the settled bundle into a GameRecord.
type Aggregator struct {
	registry *sources.Registry
	parser   *dates.Parser
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithParser overrides the release-date parser.
func WithParser(p *dates.Parser) Option {
	return func(a *Aggregator) {
		a.parser = p
	}
}

// New creates an Aggregator over the given source registry.
func New(registry *sources.Registry, opts ...Option) *Aggregator {
	a := &Aggregator{
		registry: registry,
		parser:   dates.NewParser(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate queries every registered source for one game and reconciles
// whatever settled. Individual source failures degrade the affected fields
// to unknown; only a bundle with no usable payload at all is an error.
func (a *Aggregator) Aggregate(ctx context.Context, appID, name string) (*types.GameRecord, error) {
	ctx = logging.WithApp(ctx, appID)
	bundle := a.registry.FanOut(ctx, appID, name)
	if bundle.AllFailed() {
		return nil, errors.NewNoDataError(appID, bundle.Failures())
	}
	return a.FromBundle(ctx, appID, name, bundle), nil
}

// FromBundle reconciles an already-settled bundle into a record.
func (a *Aggregator) FromBundle(ctx context.Context, appID, name string, bundle sources.Bundle) *types.GameRecord {
	logger := logging.FromContext(ctx)

	store := payloadAs[sources.StoreDetails](bundle, sources.SteamStoreID)
	spy := payloadAs[sources.SpyDetails](bundle, sources.SteamSpyID)
	players := payloadAs[sources.PlayerCount](bundle, sources.SteamPlayersID)
	deal := payloadAs[sources.DealInfo](bundle, sources.CheapSharkID)
	wiki := payloadAs[sources.WikiVideo](bundle, sources.PCGamingWikiID)
	proton := payloadAs[sources.ProtonSummary](bundle, sources.ProtonDBID)

	record := &types.GameRecord{AppID: appID}

	record.Name = resolveText(logger, "name",
		resolve.Candidate[string]{Source: "query", Value: name, Present: name != ""},
		spyText(spy, func(s *sources.SpyDetails) string { return s.Name }),
		storeText(store, func(s *sources.StoreDetails) string { return s.Name }),
	)
	record.Description = resolveText(logger, "description",
		storeText(store, func(s *sources.StoreDetails) string { return s.ShortDescription }),
		spyText(spy, func(s *sources.SpyDetails) string { return s.ShortDescription }),
	)
	record.Developer = resolveText(logger, "developer",
		spyText(spy, func(s *sources.SpyDetails) string { return s.Developer }),
		storeText(store, func(s *sources.StoreDetails) string { return first(s.Developers) }),
	)
	record.Publisher = resolveText(logger, "publisher",
		spyText(spy, func(s *sources.SpyDetails) string { return s.Publisher }),
		storeText(store, func(s *sources.StoreDetails) string { return first(s.Publishers) }),
	)
	record.Tags = mergeTags(store, spy)

	a.applyFinancials(record, store, spy, deal)
	a.applyPopularity(record, spy, players)
	a.applyReviews(record, store, spy)
	a.applyMetadata(record, store, spy)
	a.applyCompat(record, store, wiki, proton)

	return record
}

func (a *Aggregator) applyFinancials(record *types.GameRecord, store *sources.StoreDetails, spy *sources.SpyDetails, deal *sources.DealInfo) {
	isFree := store != nil && store.IsFree
	var overview *sources.PriceOverview
	if store != nil {
		overview = store.PriceOverview
	}
	spyCents := ""
	if spy != nil {
		spyCents = spy.Price
	}
	record.Price = derive.Price(isFree, overview, spyCents)

	record.HistoricalLow = types.Unknown
	record.BestDeal = types.Unknown
	if deal != nil {
		if deal.CheapestPriceEver != nil {
			record.HistoricalLow = derive.DealPrice(deal.CheapestPriceEver.Price)
		}
		if len(deal.Deals) > 0 {
			record.BestDeal = derive.DealPrice(deal.Deals[0].Price)
		}
	}
}

func (a *Aggregator) applyPopularity(record *types.GameRecord, spy *sources.SpyDetails, players *sources.PlayerCount) {
	if players != nil {
		count := players.Count
		record.LivePlayers = &count
	}
	if spy != nil {
		if spy.CCU > 0 {
			ccu := spy.CCU
			record.TwoWeekCCU = &ccu
		}
		record.Owners = derive.Owners(spy.Owners)
	} else {
		record.Owners = derive.Owners("")
	}
}

func (a *Aggregator) applyReviews(record *types.GameRecord, store *sources.StoreDetails, spy *sources.SpyDetails) {
	if spy != nil {
		record.Positive = spy.Positive
		record.Negative = spy.Negative
	}
	var critic *int
	if store != nil && store.Metacritic != nil && store.Metacritic.Score > 0 {
		critic = &store.Metacritic.Score
	}
	record.Score, record.ReviewCount = derive.ReviewScore(record.Positive, record.Negative, critic)

	if spy != nil {
		record.AvgForever = derive.Playtime(spy.AverageForever)
		record.MedianForever = derive.Playtime(spy.MedianForever)
		record.Avg2Weeks = derive.Playtime(spy.Average2Weeks)
	} else {
		record.AvgForever = types.Unknown
		record.MedianForever = types.Unknown
		record.Avg2Weeks = types.Unknown
	}
}

func (a *Aggregator) applyMetadata(record *types.GameRecord, store *sources.StoreDetails, spy *sources.SpyDetails) {
	record.Release = a.release(store)
	record.Controller = types.Unknown
	record.Storage = types.Unknown
	record.Achievements = types.Unknown

	if store == nil {
		return
	}

	record.Platforms = derive.Platforms(store.Platforms)
	record.Languages = derive.LanguageCount(store.SupportedLanguages)
	if store.ControllerSupport != "" {
		record.Controller = derive.TitleCase(store.ControllerSupport)
	}

	requirements := store.PCRequirements.Minimum
	if strings.TrimSpace(requirements) == "" {
		requirements = store.PCRequirements.Recommended
	}
	record.Storage = derive.Storage(requirements)

	if store.Achievements != nil && store.Achievements.Total > 0 {
		record.Achievements = derive.Comma(int64(store.Achievements.Total))
	}
}

func (a *Aggregator) applyCompat(record *types.GameRecord, store *sources.StoreDetails, wiki *sources.WikiVideo, proton *sources.ProtonSummary) {
	record.Ultrawide = types.Unknown
	record.HDR = types.Unknown
	if wiki != nil {
		record.Ultrawide = derive.SupportFlag(wiki.UltrawideSupport)
		record.HDR = derive.SupportFlag(wiki.HDRSupport)
	}

	note := ""
	if store != nil && store.ContentDescriptors != nil &&
		strings.Contains(strings.ToLower(store.ContentDescriptors.Notes), "steam deck") {
		note = "Steam Deck"
	}
	tier := ""
	if proton != nil {
		tier = proton.Tier
	}
	record.Deck = derive.CompatTier(note, tier)
}

// release maps the storefront release block onto the dual display/parsed
// form. Coming-soon titles get the upcoming label and the sentinel date so
// they sort after every released title.
func (a *Aggregator) release(store *sources.StoreDetails) types.ReleaseInfo {
	if store == nil || store.ReleaseDate == nil {
		return types.ReleaseInfo{Display: types.Unknown}
	}
	rd := store.ReleaseDate
	if rd.ComingSoon {
		return types.ReleaseInfo{Display: "Upcoming"}
	}
	if strings.TrimSpace(rd.Date) == "" {
		return types.ReleaseInfo{Display: types.Unknown}
	}
	return types.ReleaseInfo{
		Display: rd.Date,
		Parsed:  a.parser.Parse(rd.Date),
	}
}

// mergeTags combines storefront genres with community tags, storefront
// first, deduplicated case-insensitively and capped.
func mergeTags(store *sources.StoreDetails, spy *sources.SpyDetails) []string {
	var raw []string
	if store != nil {
		for _, g := range store.Genres {
			raw = append(raw, strings.TrimSpace(g.Description))
		}
	}
	if spy != nil {
		for _, tag := range spy.Tags.Names() {
			raw = append(raw, strings.TrimSpace(tag))
		}
	}

	seen := make(map[string]bool)
	var tags []string
	for _, tag := range raw {
		display := derive.TitleCase(tag)
		if display == "" {
			continue
		}
		key := strings.ToLower(display)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, display)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}
