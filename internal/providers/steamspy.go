package providers

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/sources"
)

const spyBaseURL = "https://steamspy.com/api.php"

// SteamSpy queries the SteamSpy community-statistics API: appdetails for
// the fan-out and top100in2weeks for the trending list.
type SteamSpy struct {
	client  *transport.Client
	baseURL string
}

var _ sources.Provider = (*SteamSpy)(nil)

// NewSteamSpy creates the SteamSpy provider.
func NewSteamSpy(client *transport.Client) *SteamSpy {
	return &SteamSpy{client: client, baseURL: spyBaseURL}
}

// ID implements sources.Provider.
func (s *SteamSpy) ID() sources.ID { return sources.SteamSpyID }

// Fetch retrieves appdetails. SteamSpy returns appid 0 for apps it does
// not track; that settles as fulfilled with no payload.
func (s *SteamSpy) Fetch(ctx context.Context, appID, _ string) (any, error) {
	u := fmt.Sprintf("%s?request=appdetails&appid=%s", s.baseURL, url.QueryEscape(appID))

	var details sources.SpyDetails
	if err := s.client.GetJSON(ctx, s.ID().String(), u, &details); err != nil {
		return nil, err
	}
	if details.AppID == 0 {
		return nil, nil
	}
	return &details, nil
}

// TrendingEntry is one row of the two-week most-played list.
type TrendingEntry struct {
	AppID         int    `json:"appid"`
	Name          string `json:"name"`
	Owners        string `json:"owners"`
	Average2Weeks int    `json:"average_2weeks"`
	CCU           int    `json:"ccu"`
}

// Players returns the entry's recent-popularity counter: concurrent
// players when reported, otherwise the two-week playtime average.
func (e TrendingEntry) Players() int {
	if e.CCU > 0 {
		return e.CCU
	}
	return e.Average2Weeks
}

// Trending retrieves the most-played games of the last two weeks, most
// played first.
func (s *SteamSpy) Trending(ctx context.Context) ([]TrendingEntry, error) {
	u := s.baseURL + "?request=top100in2weeks"

	var byApp map[string]TrendingEntry
	if err := s.client.GetJSON(ctx, s.ID().String(), u, &byApp); err != nil {
		return nil, err
	}
	entries := make([]TrendingEntry, 0, len(byApp))
	for _, e := range byApp {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Players() != entries[j].Players() {
			return entries[i].Players() > entries[j].Players()
		}
		return entries[i].AppID < entries[j].AppID
	})
	return entries, nil
}
