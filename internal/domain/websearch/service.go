package websearch

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/benreichman/SearXNG-MCP-Server/utils/textnorm"
)

const noTitle = "No title"

// Service orchestrates search and scrape operations while remaining
// transport-agnostic.
type Service struct {
	aggregator Aggregator
	fetcher    PageFetcher
	maxWords   int
}

// NewService creates a new web search service. maxWords caps the content
// length of every result record.
func NewService(aggregator Aggregator, fetcher PageFetcher, maxWords int) *Service {
	return &Service{
		aggregator: aggregator,
		fetcher:    fetcher,
		maxWords:   maxWords,
	}
}

// SearchAndScrape queries the aggregator once, keeps the first maxResults
// candidates and scrapes them concurrently. Output preserves aggregator
// order; pages that fail to fetch are dropped silently. An aggregator
// failure is returned as the error for the caller to absorb into its
// tool result.
func (s *Service) SearchAndScrape(ctx context.Context, query string, maxResults int) ([]Result, error) {
	log.Info().Str("query", query).Int("max_results", maxResults).Msg("searching")

	candidates, err := s.aggregator.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if maxResults < len(candidates) {
		candidates = candidates[:maxResults]
	}
	log.Info().Int("result_count", len(candidates)).Msg("aggregator returned results")

	// Fetches are independent; scrape in parallel and reassemble by
	// index so aggregator order survives.
	slots := make([]*Result, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, candidate AggregatorResult) {
			defer wg.Done()
			record, err := s.Scrape(ctx, candidate.URL, candidate.Title, candidate.Snippet)
			if err != nil {
				log.Warn().Err(err).Str("url", candidate.URL).Msg("dropping result")
				return
			}
			slots[i] = record
		}(i, candidate)
	}
	wg.Wait()

	records := make([]Result, 0, len(slots))
	for _, record := range slots {
		if record != nil {
			records = append(records, *record)
		}
	}
	log.Info().Int("scraped", len(records)).Msg("scraping finished")
	return records, nil
}

// Scrape fetches one URL and builds a result record from its content.
// title and snippet are aggregator-supplied hints; the page <title> wins
// over an empty hint, with "No title" as the final fallback.
func (s *Service) Scrape(ctx context.Context, url, title, snippet string) (*Result, error) {
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	body := string(page.Body)
	if title == "" {
		title = textnorm.ExtractTitle(body)
	}
	if title == "" {
		title = noTitle
	}

	content := textnorm.Normalize(body, s.maxWords)

	return &Result{
		Title:     textnorm.Clean(title),
		URL:       url,
		Content:   content,
		Snippet:   textnorm.Clean(snippet),
		WordCount: len(strings.Fields(content)),
	}, nil
}
