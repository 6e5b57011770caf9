package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamtrack/steamtrack/pkg/errors"
)

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"player_count": 1234}`)) //nolint:errcheck
	}))
	defer server.Close()

	var out struct {
		Count int `json:"player_count"`
	}
	err := New().GetJSON(context.Background(), "steam_players", server.URL, &out)
	require.NoError(t, err)
	assert.Equal(t, 1234, out.Count)
}

func TestGetJSONStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"server error", http.StatusInternalServerError, errors.IsProviderUnavailable},
		{"rate limited", http.StatusTooManyRequests, errors.IsRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			err := New().GetJSON(context.Background(), "steamspy", server.URL, &struct{}{})
			require.Error(t, err)
			assert.True(t, tt.check(err))

			var apiErr *errors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "steamspy", apiErr.Provider)
		})
	}
}

func TestGetHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/html", r.Header.Get("Accept"))
		w.Write([]byte(`<a data-ds-tagid="1716">Roguelike</a>`)) //nolint:errcheck
	}))
	defer server.Close()

	body, err := New().GetHTML(context.Background(), "steam_store", server.URL)
	require.NoError(t, err)
	assert.Contains(t, body, `data-ds-tagid="1716"`)
}

func TestGetHTMLStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New().GetHTML(context.Background(), "steam_store", server.URL)
	require.Error(t, err)
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestGetJSONMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"truncated`)) //nolint:errcheck
	}))
	defer server.Close()

	err := New().GetJSON(context.Background(), "cheapshark", server.URL, &struct{}{})
	require.Error(t, err)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestProxyRewrite(t *testing.T) {
	target := "https://store.steampowered.com/api/appdetails?appids=620"

	var got string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer proxy.Close()

	client := New(WithProxy(proxy.URL + "/?url="))
	err := client.GetJSON(context.Background(), "steam_store", target, &struct{}{})
	require.NoError(t, err)

	unescaped, err := url.QueryUnescape(got[len("url="):])
	require.NoError(t, err)
	assert.Equal(t, target, unescaped)
}
