package webpage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/benreichman/SearXNG-MCP-Server/internal/domain/websearch"
	"github.com/benreichman/SearXNG-MCP-Server/internal/infrastructure/metrics"
)

// Fetcher performs single-attempt page downloads with browser-like
// headers and a bounded timeout.
type Fetcher struct {
	httpClient *resty.Client
}

var _ websearch.PageFetcher = (*Fetcher)(nil)

// NewFetcher wires an HTTP client for arbitrary web pages.
func NewFetcher(timeout time.Duration) *Fetcher {
	httpClient := resty.New().
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3").
		SetTimeout(timeout).
		SetRetryCount(0)

	return &Fetcher{httpClient: httpClient}
}

// Fetch issues one GET for url. Transport failures and non-2xx statuses
// come back as errors carrying a human-readable message; the body is
// returned undecoded.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*websearch.Page, error) {
	status := "success"
	defer func() {
		metrics.RecordFetch("webpage", status)
	}()

	resp, err := f.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		status = "error"
		log.Warn().Err(err).Str("url", url).Msg("page fetch failed")
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		status = "error"
		log.Warn().Int("status", resp.StatusCode()).Str("url", url).Msg("page fetch returned error status")
		return nil, fmt.Errorf("failed to fetch %s: HTTP %d %s", url, resp.StatusCode(), resp.Status())
	}

	return &websearch.Page{
		Body:        resp.Body(),
		ContentType: resp.Header().Get("Content-Type"),
	}, nil
}
