package searxng

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/benreichman/SearXNG-MCP-Server/internal/domain/websearch"
	"github.com/benreichman/SearXNG-MCP-Server/internal/infrastructure/metrics"
)

const searchPath = "/search"

// browserUserAgent mimics a desktop browser so the aggregator treats the
// request like ordinary traffic.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

// Client queries a SearXNG instance for search results.
type Client struct {
	httpClient *resty.Client
	engines    string
}

var _ websearch.Aggregator = (*Client)(nil)

// NewClient wires an HTTP client for the SearXNG aggregator. baseURL is
// the instance root, engines the fixed multi-engine hint sent with every
// query.
func NewClient(baseURL string, engines []string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("User-Agent", browserUserAgent).
		SetTimeout(timeout).
		SetRetryCount(0)

	return &Client{
		httpClient: httpClient,
		engines:    strings.Join(engines, ","),
	}
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Search runs one aggregator query and returns the raw result list in
// aggregator order.
func (c *Client) Search(ctx context.Context, query string) ([]websearch.AggregatorResult, error) {
	status := "success"
	defer func() {
		metrics.RecordFetch("searxng", status)
	}()

	var result searchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetQueryParam("format", "json").
		SetQueryParam("engines", c.engines).
		SetResult(&result).
		Get(searchPath)
	if err != nil {
		status = "error"
		log.Error().Err(err).Str("query", query).Msg("failed to query SearXNG")
		return nil, fmt.Errorf("failed to query SearXNG: %w", err)
	}
	if resp.IsError() {
		status = "error"
		log.Error().Int("status", resp.StatusCode()).Str("query", query).Msg("SearXNG API error")
		return nil, fmt.Errorf("SearXNG API error (status %d): %s", resp.StatusCode(), resp.Status())
	}

	results := make([]websearch.AggregatorResult, 0, len(result.Results))
	for _, item := range result.Results {
		results = append(results, websearch.AggregatorResult{
			URL:     item.URL,
			Title:   item.Title,
			Snippet: item.Content,
		})
	}
	return results, nil
}
