package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/errors"
	"github.com/steamtrack/steamtrack/pkg/sources"
)

const protonBaseURL = "https://www.protondb.com/api/v1/reports/summaries"

// ProtonDB queries the community Linux/Steam Deck compatibility reports.
type ProtonDB struct {
	client  *transport.Client
	baseURL string
}

var _ sources.Provider = (*ProtonDB)(nil)

// NewProtonDB creates the ProtonDB provider.
func NewProtonDB(client *transport.Client) *ProtonDB {
	return &ProtonDB{client: client, baseURL: protonBaseURL}
}

// ID implements sources.Provider.
func (p *ProtonDB) ID() sources.ID { return sources.ProtonDBID }

// Fetch retrieves the report summary. ProtonDB serves a 404 for apps
// without reports; that settles as fulfilled with no payload.
func (p *ProtonDB) Fetch(ctx context.Context, appID, _ string) (any, error) {
	u := fmt.Sprintf("%s/%s.json", p.baseURL, url.PathEscape(appID))

	var summary sources.ProtonSummary
	if err := p.client.GetJSON(ctx, p.ID().String(), u, &summary); err != nil {
		var apiErr *errors.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil, nil
		}
		return nil, err
	}
	if summary.Tier == "" {
		return nil, nil
	}
	return &summary, nil
}
