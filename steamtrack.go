// Package steamtrack aggregates per-game facts from six Steam-ecosystem
// services into one reconciled record, and serves the ranked lists
// (search, trending, suggestions) around it. The aggregation is
// settle-all: every provider is queried concurrently, individual
// failures degrade fields to an explicit unknown marker, and only a
// total failure surfaces as an error.
package steamtrack

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/steamtrack/steamtrack/internal/applist"
	"github.com/steamtrack/steamtrack/internal/config"
	"github.com/steamtrack/steamtrack/internal/providers"
	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/aggregate"
	"github.com/steamtrack/steamtrack/pkg/constants"
	"github.com/steamtrack/steamtrack/pkg/derive"
	"github.com/steamtrack/steamtrack/pkg/pins"
	"github.com/steamtrack/steamtrack/pkg/rank"
	"github.com/steamtrack/steamtrack/pkg/sources"
	"github.com/steamtrack/steamtrack/pkg/types"
)

// Client is the engine facade: one fan-out registry, one aggregator, and
// the supporting search, trending, suggestion, and pin surfaces.
type Client struct {
	config *clientConfig

	transport  *transport.Client
	registry   *sources.Registry
	aggregator *aggregate.Aggregator
	refresher  *aggregate.Refresher
	store      *providers.SteamStore
	spy        *providers.SteamSpy
	apps       *applist.Cache
	pins       pins.Store
	sorter     *rank.Sorter
}

// New creates a Client with the default provider set.
func New(opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	c := &Client{config: cfg}

	c.transport = cfg.transport
	if c.transport == nil {
		var topts []transport.Option
		if cfg.proxy != "" {
			topts = append(topts, transport.WithProxy(cfg.proxy))
		}
		c.transport = transport.New(topts...)
	}

	set := providers.NewSet(c.transport, cfg.region)
	c.store = set.Store
	c.spy = set.Spy
	c.registry = sources.NewRegistry(set.All()...)

	c.aggregator = aggregate.New(c.registry)
	c.refresher = aggregate.NewRefresher(set.Players)
	c.apps = applist.New(c.transport)
	c.sorter = rank.NewSorter()

	c.pins = cfg.pinStore
	if c.pins == nil {
		c.pins = pins.NewMemoryStore()
	}

	return c, nil
}

// Warmup primes session state that benefits from an early fetch: the app
// catalog for suggestions and, when auto-detection is enabled, the
// caller's storefront region. Both run concurrently; a region-detection
// miss falls back to the configured region without failing the warmup.
func (c *Client) Warmup(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.apps.Load(ctx)
	})

	var detected *config.Region
	if c.config.detectRegion {
		g.Go(func() error {
			region := config.Detect(ctx, c.transport)
			detected = &region
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Swap the storefront provider only after both goroutines are done,
	// so concurrent Search calls never observe a half-applied region.
	if detected != nil {
		store := providers.NewSteamStore(c.transport, *detected)
		c.registry.Register(store)
		c.store = store
	}
	return nil
}

// Game aggregates the full record for one game. All providers failing at
// once returns a *errors.NoDataError; anything less degrades fields.
func (c *Client) Game(ctx context.Context, appID, name string) (*types.GameRecord, error) {
	return c.aggregator.Aggregate(ctx, appID, name)
}

// Refresh returns a copy of the record with the live player count
// re-read. No other field changes.
func (c *Client) Refresh(ctx context.Context, record types.GameRecord) (types.GameRecord, error) {
	return c.refresher.Refresh(ctx, record)
}

// Watch re-reads the live count on the standard cadence until the
// context is canceled, handing each refreshed copy to emit.
func (c *Client) Watch(ctx context.Context, record types.GameRecord, emit func(types.GameRecord)) {
	c.refresher.Run(ctx, record, emit)
}

// Search finds games by title on the storefront. No matches is an empty
// slice, not an error.
func (c *Client) Search(ctx context.Context, term string) ([]types.ListRow, error) {
	hits, err := c.store.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	if len(hits) > constants.MaxSearchResults {
		hits = hits[:constants.MaxSearchResults]
	}
	rows := make([]types.ListRow, 0, len(hits))
	for i, hit := range hits {
		rows = append(rows, types.ListRow{
			AppID:    hit.AppID,
			Name:     hit.Name,
			Released: types.Unknown,
			Price:    types.Unknown,
			Owners:   types.Unknown,
			Rank:     i,
		})
	}
	return rows, nil
}

// Browse lists games for a tag or category via the storefront's tag
// search, with its keyword fallback for terms that are not tags.
func (c *Client) Browse(ctx context.Context, tag string) ([]types.ListRow, error) {
	scraped, err := c.store.BrowseTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	return storeListRows(scraped), nil
}

// TrendingMode selects which chart Trending reads.
type TrendingMode string

const (
	// TrendingTwoWeeks ranks by SteamSpy's most-played of the last two
	// weeks. The zero mode means the same.
	TrendingTwoWeeks TrendingMode = "top100in2weeks"

	// TrendingTopSellers ranks by the storefront's top-sellers chart.
	TrendingTopSellers TrendingMode = "topsellers"

	// TrendingNewReleases ranks by the storefront's popular-new chart.
	TrendingNewReleases TrendingMode = "popularnew"
)

// Trending returns the selected chart, best-ranked first, with per-row
// ranks for tie-breaking on later re-sorts.
func (c *Client) Trending(ctx context.Context, mode TrendingMode) ([]types.ListRow, error) {
	switch mode {
	case TrendingTopSellers:
		scraped, err := c.store.TopSellers(ctx)
		if err != nil {
			return nil, err
		}
		return storeListRows(scraped), nil
	case TrendingNewReleases:
		scraped, err := c.store.PopularNew(ctx)
		if err != nil {
			return nil, err
		}
		return storeListRows(scraped), nil
	}

	entries, err := c.spy.Trending(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]types.ListRow, 0, len(entries))
	for i, e := range entries {
		players := e.Players()
		rows = append(rows, types.ListRow{
			AppID:          strconv.Itoa(e.AppID),
			Name:           e.Name,
			Released:       types.Unknown,
			Price:          types.Unknown,
			Owners:         derive.Owners(e.Owners).Text,
			TwoWeekPlayers: &players,
			Rank:           i,
		})
	}
	return rows, nil
}

// storeListRows projects scraped storefront rows into ranked list rows,
// keeping the storefront's display strings where it rendered any.
func storeListRows(scraped []providers.StoreRow) []types.ListRow {
	rows := make([]types.ListRow, 0, len(scraped))
	for i, s := range scraped {
		rows = append(rows, types.ListRow{
			AppID:    s.AppID,
			Name:     s.Name,
			Released: orUnknown(s.Released),
			Price:    orUnknown(s.Price),
			Owners:   types.Unknown,
			Rank:     i,
		})
	}
	return rows
}

func orUnknown(s string) string {
	if s == "" {
		return types.Unknown
	}
	return s
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	AppID string
	Name  string
}

// Suggest returns up to limit app-catalog entries matching the query.
func (c *Client) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	apps, err := c.apps.Suggest(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Suggestion, 0, len(apps))
	for _, app := range apps {
		out = append(out, Suggestion{AppID: strconv.Itoa(app.AppID), Name: app.Name})
	}
	return out, nil
}

// Sort returns a re-sorted copy of rows; the input is never mutated.
func (c *Client) Sort(rows []types.ListRow, key rank.Key, dir rank.Direction) []types.ListRow {
	return c.sorter.Sort(rows, key, dir)
}

// Pins returns the pinned-games store.
func (c *Client) Pins() pins.Store {
	return c.pins
}
