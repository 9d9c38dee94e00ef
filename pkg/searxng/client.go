// Package searxng queries a SearXNG instance's JSON API and maps its
// results into the shape the web_search tool returns.
package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"mcp-webtools-go/pkg/webfetch"
)

// Options carry the host-configured search parameters for one call.
type Options struct {
	// Engines are forwarded comma-joined; an empty list leaves engine
	// selection to the instance.
	Engines  []string
	Language string
	// SafeSearch is the numeric safesearch code (0, 1 or 2).
	SafeSearch int
	// MaxResults caps the returned results; 0 means unlimited.
	MaxResults int
}

// Client talks to a single SearXNG instance.
type Client struct {
	baseURL string
	fetcher *webfetch.Client
	log     zerolog.Logger
}

// NewClient creates a client for the instance at baseURL. The base URL
// should point at the instance's search endpoint.
func NewClient(baseURL string, fetcher *webfetch.Client, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		fetcher: fetcher,
		log:     log,
	}
}

// Search runs one query and returns mapped results in upstream order,
// capped at opts.MaxResults when it is positive. A non-2xx upstream
// response surfaces as a *webfetch.StatusError.
func (c *Client) Search(ctx context.Context, query string, opts Options) ([]Result, error) {
	target, err := c.buildURL(query, opts)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("url", target).Msg("calling SearXNG")

	body, err := c.fetcher.Get(ctx, target)
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode SearXNG response: %w", err)
	}

	results := make([]Result, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, Result{
			Title:   r.Title,
			Summary: r.Content,
			URL:     r.URL,
		})
	}
	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	c.log.Debug().Int("results", len(results)).Str("query", query).Msg("search complete")
	return results, nil
}

func (c *Client) buildURL(query string, opts Options) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid SearXNG base URL %q: %w", c.baseURL, err)
	}

	params := u.Query()
	params.Set("q", query)
	if len(opts.Engines) > 0 {
		params.Set("engines", strings.Join(opts.Engines, ","))
	}
	if opts.Language != "" {
		params.Set("language", opts.Language)
	}
	params.Set("format", "json")
	params.Set("safesearch", strconv.Itoa(opts.SafeSearch))
	u.RawQuery = params.Encode()

	return u.String(), nil
}
