package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamtrack/steamtrack/internal/config"
	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/sources"
)

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestSteamStoreFetch(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "620", r.URL.Query().Get("appids"))
		assert.Equal(t, "english", r.URL.Query().Get("l"))
		w.Write([]byte(`{"620":{"success":true,"data":{"name":"Portal 2","is_free":false}}}`)) //nolint:errcheck
	})

	provider := NewSteamStore(transport.New(), config.Default())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "620", "Portal 2")
	require.NoError(t, err)
	details, ok := raw.(*sources.StoreDetails)
	require.True(t, ok)
	assert.Equal(t, "Portal 2", details.Name)
}

func TestSteamStoreFetchUnsuccessfulEntry(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"999":{"success":false}}`)) //nolint:errcheck
	})

	provider := NewSteamStore(transport.New(), config.Default())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "999", "")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestSteamStoreSearch(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "portal", r.URL.Query().Get("term"))
		assert.Equal(t, "998", r.URL.Query().Get("category1"))
		w.Write([]byte(`{"items":[{"id":400,"name":"Portal"},{"id":620,"name":"Portal 2"}]}`)) //nolint:errcheck
	})

	provider := NewSteamStore(transport.New(), config.Default())
	provider.baseURL = server.URL

	hits, err := provider.Search(context.Background(), "portal")
	require.NoError(t, err)
	assert.Equal(t, []SearchHit{
		{AppID: "400", Name: "Portal"},
		{AppID: "620", Name: "Portal 2"},
	}, hits)
}

func TestSteamStoreSearchEmpty(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"items":[]}`)) //nolint:errcheck
	})

	provider := NewSteamStore(transport.New(), config.Default())
	provider.baseURL = server.URL

	hits, err := provider.Search(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSteamSpyFetch(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "appdetails", r.URL.Query().Get("request"))
		w.Write([]byte(`{"appid":620,"name":"Portal 2","owners":"10,000,000 .. 20,000,000","tags":[]}`)) //nolint:errcheck
	})

	provider := NewSteamSpy(transport.New())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "620", "")
	require.NoError(t, err)
	details, ok := raw.(*sources.SpyDetails)
	require.True(t, ok)
	assert.Equal(t, "Portal 2", details.Name)
	assert.Empty(t, details.Tags)
}

func TestSteamSpyFetchUntracked(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"appid":0,"name":""}`)) //nolint:errcheck
	})

	provider := NewSteamSpy(transport.New())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "999", "")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestSteamSpyTrending(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "top100in2weeks", r.URL.Query().Get("request"))
		w.Write([]byte(`{
			"570":{"appid":570,"name":"Dota 2","ccu":400000},
			"730":{"appid":730,"name":"Counter-Strike 2","ccu":900000},
			"440":{"appid":440,"name":"Team Fortress 2","ccu":0,"average_2weeks":800}
		}`)) //nolint:errcheck
	})

	provider := NewSteamSpy(transport.New())
	provider.baseURL = server.URL

	entries, err := provider.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Counter-Strike 2", entries[0].Name)
	assert.Equal(t, "Dota 2", entries[1].Name)
	assert.Equal(t, 800, entries[2].Players())
}

func TestSteamPlayersFetch(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "620", r.URL.Query().Get("appid"))
		w.Write([]byte(`{"response":{"player_count":4321,"result":1}}`)) //nolint:errcheck
	})

	provider := NewSteamPlayers(transport.New())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "620", "")
	require.NoError(t, err)
	count, ok := raw.(*sources.PlayerCount)
	require.True(t, ok)
	assert.Equal(t, 4321, count.Count)
}

func TestSteamPlayersFetchUnsuccessful(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"response":{"result":42}}`)) //nolint:errcheck
	})

	provider := NewSteamPlayers(transport.New())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "999", "")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestCheapSharkFetchTwoStep(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Query().Get("title") != "":
			assert.Equal(t, "Portal 2", r.URL.Query().Get("title"))
			w.Write([]byte(`[{"gameID":"208"}]`)) //nolint:errcheck
		default:
			assert.Equal(t, "208", r.URL.Query().Get("id"))
			w.Write([]byte(`{"cheapestPriceEver":{"price":"0.89"},"deals":[{"price":"1.99"}]}`)) //nolint:errcheck
		}
	})

	provider := NewCheapShark(transport.New())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "620", "Portal 2")
	require.NoError(t, err)
	info, ok := raw.(*sources.DealInfo)
	require.True(t, ok)
	require.NotNil(t, info.CheapestPriceEver)
	assert.Equal(t, "0.89", info.CheapestPriceEver.Price)
}

func TestCheapSharkFetchUnknownTitle(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`)) //nolint:errcheck
	})

	provider := NewCheapShark(transport.New())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "620", "Some Obscure Title")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestPCGamingWikiFetch(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cargoquery", r.URL.Query().Get("action"))
		w.Write([]byte(`{"cargoquery":[{"title":{"Ultrawide_support":"true","HDR_support":"false"}}]}`)) //nolint:errcheck
	})

	provider := NewPCGamingWiki(transport.New())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "620", "")
	require.NoError(t, err)
	video, ok := raw.(*sources.WikiVideo)
	require.True(t, ok)
	assert.Equal(t, "true", video.UltrawideSupport)
}

func TestPCGamingWikiFetchNoPage(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"cargoquery":[]}`)) //nolint:errcheck
	})

	provider := NewPCGamingWiki(transport.New())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "999", "")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestProtonDBFetch(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/620.json", r.URL.Path)
		w.Write([]byte(`{"tier":"platinum","total":1500}`)) //nolint:errcheck
	})

	provider := NewProtonDB(transport.New())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "620", "")
	require.NoError(t, err)
	summary, ok := raw.(*sources.ProtonSummary)
	require.True(t, ok)
	assert.Equal(t, "platinum", summary.Tier)
}

func TestProtonDBFetchNoReports(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	provider := NewProtonDB(transport.New())
	provider.baseURL = server.URL

	raw, err := provider.Fetch(context.Background(), "999", "")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestSetRegistersSixProviders(t *testing.T) {
	set := NewSet(transport.New(), config.Default())
	registry := sources.NewRegistry(set.All()...)
	assert.Equal(t, len(sources.IDs()), registry.Len())
}
