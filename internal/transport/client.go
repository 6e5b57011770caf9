// Package transport provides the shared HTTP client the providers fetch
// through. It owns timeouts, common headers, the optional CORS-style
// proxy rewrite, and JSON decoding with typed errors, so individual
// providers only build URLs and shapes.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/steamtrack/steamtrack/pkg/constants"
	"github.com/steamtrack/steamtrack/pkg/errors"
)

// maxErrorBody caps how much of an error response body ends up inside an
// error message.
const maxErrorBody = 512

// Client is a JSON-over-HTTP fetch client shared by all providers.
type Client struct {
	http      *http.Client
	proxyBase string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithProxy routes every request through a proxy that takes the target
// URL as an encoded query value, the way browser CORS proxies do. An
// empty base disables the rewrite.
func WithProxy(base string) Option {
	return func(c *Client) {
		c.proxyBase = base
	}
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a Client with the default timeout.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
		userAgent: "steamtrack/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON performs a GET against rawURL and decodes the JSON body into
// target. provider names the calling source for error attribution.
func (c *Client) GetJSON(ctx context.Context, provider, rawURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rewrite(rawURL), nil)
	if err != nil {
		return errors.WrapValidation("url", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapAPI(provider, 0, err)
	}
	return decode(resp, provider, target)
}

// GetHTML performs a GET against rawURL and returns the body as text,
// for the storefront endpoints that answer with markup instead of JSON.
func (c *Client) GetHTML(ctx context.Context, provider, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rewrite(rawURL), nil)
	if err != nil {
		return "", errors.WrapValidation("url", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.WrapAPI(provider, 0, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read side already drained

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.WrapIO("read", "response body", err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return "", errors.NewAPIError(provider, resp.StatusCode, string(snippet))
	}
	return string(body), nil
}

// rewrite routes the URL through the configured proxy, if any.
func (c *Client) rewrite(rawURL string) string {
	if c.proxyBase == "" {
		return rawURL
	}
	return c.proxyBase + url.QueryEscape(rawURL)
}

// decode consumes and closes the response body, mapping non-200 statuses
// and malformed JSON to typed errors.
func decode(resp *http.Response, provider string, target any) error {
	defer resp.Body.Close() //nolint:errcheck // read side already drained

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return errors.NewAPIError(provider, resp.StatusCode, string(snippet))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", provider, err)
	}
	return nil
}
