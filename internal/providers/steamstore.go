package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/steamtrack/steamtrack/internal/config"
	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/sources"
)

const (
	storeBaseURL  = "https://store.steampowered.com/api"
	searchBaseURL = "https://store.steampowered.com"
)

// SteamStore queries the Steam storefront: appdetails for the aggregation
// fan-out, storesearch for title lookup, and the search/results scrape
// endpoints for tag browsing and the storefront charts.
type SteamStore struct {
	client     *transport.Client
	region     config.Region
	baseURL    string
	searchBase string
}

var _ sources.Provider = (*SteamStore)(nil)

// NewSteamStore creates the storefront provider localized for a region.
func NewSteamStore(client *transport.Client, region config.Region) *SteamStore {
	return &SteamStore{
		client:     client,
		region:     region,
		baseURL:    storeBaseURL,
		searchBase: searchBaseURL,
	}
}

// ID implements sources.Provider.
func (s *SteamStore) ID() sources.ID { return sources.SteamStoreID }

// detailsEnvelope is the appdetails response: one entry keyed by the
// requested app ID, with a success flag distinct from HTTP status.
type detailsEnvelope map[string]struct {
	Success bool                  `json:"success"`
	Data    *sources.StoreDetails `json:"data"`
}

// Fetch retrieves appdetails. A success=false entry means the storefront
// answered but has no page for this app; that settles as fulfilled with
// no payload, not as a failure.
func (s *SteamStore) Fetch(ctx context.Context, appID, _ string) (any, error) {
	u := fmt.Sprintf("%s/appdetails?appids=%s&l=%s&cc=%s",
		s.baseURL, url.QueryEscape(appID), s.region.Lang, s.region.CC)

	var envelope detailsEnvelope
	if err := s.client.GetJSON(ctx, s.ID().String(), u, &envelope); err != nil {
		return nil, err
	}
	entry, ok := envelope[appID]
	if !ok || !entry.Success || entry.Data == nil {
		return nil, nil
	}
	return entry.Data, nil
}

// SearchHit is one storesearch result.
type SearchHit struct {
	AppID string
	Name  string
}

// searchEnvelope is the storesearch response shape.
type searchEnvelope struct {
	Items []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"items"`
}

// Search finds games by title, restricted to the games category. An empty
// result is an empty slice, not an error.
func (s *SteamStore) Search(ctx context.Context, term string) ([]SearchHit, error) {
	u := fmt.Sprintf("%s/storesearch/?term=%s&l=%s&cc=%s&category1=998",
		s.baseURL, url.QueryEscape(term), s.region.Lang, s.region.CC)

	var envelope searchEnvelope
	if err := s.client.GetJSON(ctx, s.ID().String(), u, &envelope); err != nil {
		return nil, err
	}
	hits := make([]SearchHit, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		if item.Name == "" {
			continue
		}
		hits = append(hits, SearchHit{AppID: strconv.Itoa(item.ID), Name: item.Name})
	}
	return hits, nil
}
