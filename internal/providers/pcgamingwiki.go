package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/sources"
)

const wikiBaseURL = "https://www.pcgamingwiki.com/w/api.php"

// PCGamingWiki queries the wiki's cargo tables for video-feature support
// flags (ultrawide, HDR).
type PCGamingWiki struct {
	client  *transport.Client
	baseURL string
}

var _ sources.Provider = (*PCGamingWiki)(nil)

// NewPCGamingWiki creates the wiki provider.
func NewPCGamingWiki(client *transport.Client) *PCGamingWiki {
	return &PCGamingWiki{client: client, baseURL: wikiBaseURL}
}

// ID implements sources.Provider.
func (p *PCGamingWiki) ID() sources.ID { return sources.PCGamingWikiID }

// cargoEnvelope is the cargoquery response shape.
type cargoEnvelope struct {
	CargoQuery []struct {
		Title sources.WikiVideo `json:"title"`
	} `json:"cargoquery"`
}

// Fetch retrieves the video-feature row for an app. No wiki page settles
// as fulfilled with no payload.
func (p *PCGamingWiki) Fetch(ctx context.Context, appID, _ string) (any, error) {
	where := url.QueryEscape(fmt.Sprintf("Steam_AppID_exact=%q", appID))
	u := fmt.Sprintf("%s?action=cargoquery&format=json&tables=Video&fields=Ultrawide_support,HDR_support&where=%s",
		p.baseURL, where)

	var envelope cargoEnvelope
	if err := p.client.GetJSON(ctx, p.ID().String(), u, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.CargoQuery) == 0 {
		return nil, nil
	}
	video := envelope.CargoQuery[0].Title
	return &video, nil
}
