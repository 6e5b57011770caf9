package providers

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/steamtrack/steamtrack/pkg/constants"
)

// tagIDPattern extracts the numeric tag ID from the storefront's
// suggestion markup.
var tagIDPattern = regexp.MustCompile(`data-ds-tagid="(\d+)"`)

// StoreRow is one scraped search-results entry. Released and Price are
// the storefront's display strings, empty when the row carries none.
type StoreRow struct {
	AppID    string
	Name     string
	Released string
	Price    string
}

// resultsEnvelope wraps the infinite-scroll results payload: JSON
// carrying a block of rendered rows.
type resultsEnvelope struct {
	ResultsHTML string `json:"results_html"`
}

// BrowseTag lists games for a tag or category. Tag-id discovery goes
// through the suggestion endpoint first; an unrecognized tag falls back
// to a plain keyword search so every category string yields something.
func (s *SteamStore) BrowseTag(ctx context.Context, tag string) ([]StoreRow, error) {
	suggestURL := fmt.Sprintf("%s/search/suggest?term=%s&f=tags",
		s.searchBase, url.QueryEscape(tag))
	markup, err := s.client.GetHTML(ctx, s.ID().String(), suggestURL)
	if err != nil {
		return nil, err
	}

	var resultsURL string
	if m := tagIDPattern.FindStringSubmatch(markup); m != nil {
		resultsURL = fmt.Sprintf("%s/search/results/?query&start=0&count=%d&tags=%s&infinite=1",
			s.searchBase, constants.MaxSearchResults, m[1])
	} else {
		resultsURL = fmt.Sprintf("%s/search/results/?term=%s&count=%d&infinite=1",
			s.searchBase, url.QueryEscape(tag), constants.MaxSearchResults)
	}
	return s.scrapeResults(ctx, resultsURL)
}

// TopSellers lists the storefront's current top sellers for the region.
func (s *SteamStore) TopSellers(ctx context.Context) ([]StoreRow, error) {
	return s.scrapeResults(ctx, s.filterURL("topsellers"))
}

// PopularNew lists new releases trending on the storefront.
func (s *SteamStore) PopularNew(ctx context.Context) ([]StoreRow, error) {
	return s.scrapeResults(ctx, s.filterURL("popularnew"))
}

func (s *SteamStore) filterURL(filter string) string {
	return fmt.Sprintf("%s/search/results/?query&start=0&count=%d&filter=%s&infinite=1&cc=%s&l=%s",
		s.searchBase, constants.MaxSearchResults, filter, s.region.CC, s.region.Lang)
}

func (s *SteamStore) scrapeResults(ctx context.Context, resultsURL string) ([]StoreRow, error) {
	var envelope resultsEnvelope
	if err := s.client.GetJSON(ctx, s.ID().String(), resultsURL, &envelope); err != nil {
		return nil, err
	}
	return parseResultRows(envelope.ResultsHTML), nil
}

// parseResultRows extracts rows from the rendered search-results markup.
// Rows without an app ID or a title are dropped; malformed markup yields
// whatever rows parsed cleanly, never an error.
func parseResultRows(markup string) []StoreRow {
	if markup == "" {
		return nil
	}
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var rows []StoreRow
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "search_result_row") {
			if row, ok := resultRow(n); ok {
				rows = append(rows, row)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return rows
}

func resultRow(n *html.Node) (StoreRow, bool) {
	row := StoreRow{
		AppID:    attrValue(n, "data-ds-appid"),
		Name:     nodeText(findByClass(n, "title")),
		Released: nodeText(findByClass(n, "search_released")),
		Price:    nodeText(findByClass(n, "search_price")),
	}
	if row.AppID == "" || row.Name == "" {
		return StoreRow{}, false
	}
	return row, true
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrValue(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findByClass returns the first descendant carrying the class, depth
// first.
func findByClass(n *html.Node, class string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasClass(c, class) {
			return c
		}
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// nodeText collects the node's text content with whitespace collapsed,
// so multi-element price markup reads as one string.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
