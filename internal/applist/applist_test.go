package applist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamtrack/steamtrack/internal/transport"
)

const listBody = `{"applist":{"apps":[
	{"appid":400,"name":"Portal"},
	{"appid":620,"name":"Portal 2"},
	{"appid":999,"name":"   "},
	{"appid":504230,"name":"Celeste"}
]}}`

func testCache(t *testing.T) (*Cache, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(listBody)) //nolint:errcheck
	}))
	t.Cleanup(server.Close)

	cache := New(transport.New())
	cache.baseURL = server.URL
	return cache, &calls
}

func TestLoadOnce(t *testing.T) {
	cache, calls := testCache(t)

	require.NoError(t, cache.Load(context.Background()))
	require.NoError(t, cache.Load(context.Background()))

	assert.Equal(t, int32(1), calls.Load())
	// The blank-named entry is dropped.
	assert.Equal(t, 3, cache.Len())
}

func TestSuggest(t *testing.T) {
	cache, _ := testCache(t)

	apps, err := cache.Suggest(context.Background(), "portal", 0)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "Portal", apps[0].Name)
	assert.Equal(t, "Portal 2", apps[1].Name)

	apps, err = cache.Suggest(context.Background(), "PORTAL", 1)
	require.NoError(t, err)
	require.Len(t, apps, 1)

	apps, err = cache.Suggest(context.Background(), "nothing matches this", 0)
	require.NoError(t, err)
	assert.Empty(t, apps)

	apps, err = cache.Suggest(context.Background(), "   ", 0)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestLoadFailureRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(listBody)) //nolint:errcheck
	}))
	t.Cleanup(server.Close)

	cache := New(transport.New())
	cache.baseURL = server.URL

	require.Error(t, cache.Load(context.Background()))
	require.NoError(t, cache.Load(context.Background()))
	assert.Equal(t, 3, cache.Len())
}
