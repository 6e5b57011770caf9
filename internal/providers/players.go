package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/sources"
)

const playersBaseURL = "https://api.steampowered.com/ISteamUserStats/GetNumberOfCurrentPlayers/v1/"

// SteamPlayers queries the live concurrent-player count. It doubles as
// the refresh source for the periodic live-count update.
type SteamPlayers struct {
	client  *transport.Client
	baseURL string
}

var _ sources.Provider = (*SteamPlayers)(nil)

// NewSteamPlayers creates the live player-count provider.
func NewSteamPlayers(client *transport.Client) *SteamPlayers {
	return &SteamPlayers{client: client, baseURL: playersBaseURL}
}

// ID implements sources.Provider.
func (s *SteamPlayers) ID() sources.ID { return sources.SteamPlayersID }

// playersEnvelope wraps the count; Result is 1 on success.
type playersEnvelope struct {
	Response struct {
		PlayerCount int `json:"player_count"`
		Result      int `json:"result"`
	} `json:"response"`
}

// Fetch retrieves the current player count. An unsuccessful result code
// settles as fulfilled with no payload.
func (s *SteamPlayers) Fetch(ctx context.Context, appID, _ string) (any, error) {
	u := fmt.Sprintf("%s?appid=%s", s.baseURL, url.QueryEscape(appID))

	var envelope playersEnvelope
	if err := s.client.GetJSON(ctx, s.ID().String(), u, &envelope); err != nil {
		return nil, err
	}
	if envelope.Response.Result != 1 {
		return nil, nil
	}
	return &sources.PlayerCount{Count: envelope.Response.PlayerCount}, nil
}
