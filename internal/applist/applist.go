// Package applist caches the full Steam app catalog for name
// autocompletion. The list is a few hundred thousand entries and changes
// rarely, so it is fetched at most once per process and filtered in
// memory after that.
package applist

import (
	"context"
	"strings"
	"sync"

	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/constants"
)

const listURL = "https://api.steampowered.com/ISteamApps/GetAppList/v2/"

// App is one catalog entry.
type App struct {
	AppID int    `json:"appid"`
	Name  string `json:"name"`
}

// Cache is the process-scoped app catalog. Safe for concurrent use; the
// first Load wins and later calls are no-ops.
type Cache struct {
	client  *transport.Client
	baseURL string

	mu     sync.Mutex
	apps   []App
	loaded bool
}

// New creates an unloaded cache.
func New(client *transport.Client) *Cache {
	return &Cache{client: client, baseURL: listURL}
}

// envelope is the GetAppList response shape.
type envelope struct {
	AppList struct {
		Apps []App `json:"apps"`
	} `json:"applist"`
}

// Load fetches the catalog if it has not been fetched yet. Entries with
// blank names are dropped. A failed load stays unloaded so a later call
// can retry.
func (c *Cache) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}

	var resp envelope
	if err := c.client.GetJSON(ctx, "steam_applist", c.baseURL, &resp); err != nil {
		return err
	}

	apps := make([]App, 0, len(resp.AppList.Apps))
	for _, app := range resp.AppList.Apps {
		if strings.TrimSpace(app.Name) == "" {
			continue
		}
		apps = append(apps, app)
	}
	c.apps = apps
	c.loaded = true
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.apps)
}

// Suggest returns up to limit catalog entries whose names contain the
// query, case-insensitively, in catalog order. A limit of zero or less
// uses the default suggestion count. The cache is loaded on demand.
func (c *Cache) Suggest(ctx context.Context, query string, limit int) ([]App, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = constants.MaxSuggestions
	}
	if err := c.Load(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	var matches []App
	for _, app := range c.apps {
		if strings.Contains(strings.ToLower(app.Name), query) {
			matches = append(matches, app)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}
