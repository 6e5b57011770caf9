package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/sources"
)

const cheapSharkBaseURL = "https://www.cheapshark.com/api/1.0"

// CheapShark queries the CheapShark deals aggregator. It is keyed by
// title, not Steam app ID, so the lookup is two-step: resolve the title
// to CheapShark's game ID, then fetch the price detail.
type CheapShark struct {
	client  *transport.Client
	baseURL string
}

var _ sources.Provider = (*CheapShark)(nil)

// NewCheapShark creates the deals provider.
func NewCheapShark(client *transport.Client) *CheapShark {
	return &CheapShark{client: client, baseURL: cheapSharkBaseURL}
}

// ID implements sources.Provider.
func (c *CheapShark) ID() sources.ID { return sources.CheapSharkID }

// listEntry is one row of the title-lookup response.
type listEntry struct {
	GameID string `json:"gameID"`
}

// Fetch resolves the title and retrieves the deal detail. A title
// CheapShark does not know settles as fulfilled with no payload.
func (c *CheapShark) Fetch(ctx context.Context, _, name string) (any, error) {
	if name == "" {
		return nil, nil
	}

	listURL := fmt.Sprintf("%s/games?title=%s&limit=1", c.baseURL, url.QueryEscape(name))
	var list []listEntry
	if err := c.client.GetJSON(ctx, c.ID().String(), listURL, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 || list[0].GameID == "" {
		return nil, nil
	}

	detailURL := fmt.Sprintf("%s/games?id=%s", c.baseURL, url.QueryEscape(list[0].GameID))
	var info sources.DealInfo
	if err := c.client.GetJSON(ctx, c.ID().String(), detailURL, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
