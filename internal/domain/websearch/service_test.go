package websearch

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAggregator struct {
	results []AggregatorResult
	err     error
}

func (f *fakeAggregator) Search(_ context.Context, _ string) ([]AggregatorResult, error) {
	return f.results, f.err
}

type fakeFetcher struct {
	pages   map[string]string
	errs    map[string]error
	delays  map[string]time.Duration
	fetches atomic.Int32
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*Page, error) {
	f.fetches.Add(1)
	if d, ok := f.delays[url]; ok {
		time.Sleep(d)
	}
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	body, ok := f.pages[url]
	if !ok {
		return nil, errors.New("no such page")
	}
	return &Page{Body: []byte(body), ContentType: "text/html"}, nil
}

func TestSearchAndScrapePreservesAggregatorOrder(t *testing.T) {
	aggregator := &fakeAggregator{results: []AggregatorResult{
		{URL: "http://a", Title: "A"},
		{URL: "http://b", Title: "B"},
		{URL: "http://c", Title: "C"},
	}}
	// Earliest result is the slowest page; order must still hold.
	fetcher := &fakeFetcher{
		pages: map[string]string{
			"http://a": "<p>alpha page</p>",
			"http://b": "<p>beta page</p>",
			"http://c": "<p>gamma page</p>",
		},
		delays: map[string]time.Duration{
			"http://a": 60 * time.Millisecond,
			"http://b": 20 * time.Millisecond,
		},
	}

	service := NewService(aggregator, fetcher, 5000)
	records, err := service.SearchAndScrape(context.Background(), "test", 5)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "http://a", records[0].URL)
	assert.Equal(t, "http://b", records[1].URL)
	assert.Equal(t, "http://c", records[2].URL)
}

func TestSearchAndScrapeDropsFailedPages(t *testing.T) {
	aggregator := &fakeAggregator{results: []AggregatorResult{
		{URL: "http://ok", Title: "OK"},
		{URL: "http://broken", Title: "Broken"},
		{URL: "http://also-ok", Title: "Also OK"},
	}}
	fetcher := &fakeFetcher{
		pages: map[string]string{
			"http://ok":      "<p>fine</p>",
			"http://also-ok": "<p>also fine</p>",
		},
		errs: map[string]error{
			"http://broken": errors.New("connection refused"),
		},
	}

	service := NewService(aggregator, fetcher, 5000)
	records, err := service.SearchAndScrape(context.Background(), "test", 5)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "http://ok", records[0].URL)
	assert.Equal(t, "http://also-ok", records[1].URL)
}

func TestSearchAndScrapeTruncatesToMaxResults(t *testing.T) {
	aggregator := &fakeAggregator{results: []AggregatorResult{
		{URL: "http://1"}, {URL: "http://2"}, {URL: "http://3"}, {URL: "http://4"},
	}}
	fetcher := &fakeFetcher{pages: map[string]string{
		"http://1": "<p>one</p>",
		"http://2": "<p>two</p>",
	}}

	service := NewService(aggregator, fetcher, 5000)
	records, err := service.SearchAndScrape(context.Background(), "test", 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int32(2), fetcher.fetches.Load())
}

func TestSearchAndScrapeReturnsAggregatorError(t *testing.T) {
	aggregator := &fakeAggregator{err: errors.New("aggregator unreachable")}
	service := NewService(aggregator, &fakeFetcher{}, 5000)

	records, err := service.SearchAndScrape(context.Background(), "test", 5)
	assert.Nil(t, records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aggregator unreachable")
}

func TestScrapeTitleFallbacks(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"http://titled":   "<html><head><title>Page Title</title></head><body>hi</body></html>",
		"http://untitled": "<html><body>hi</body></html>",
	}}
	service := NewService(&fakeAggregator{}, fetcher, 5000)

	// Aggregator title wins when supplied.
	record, err := service.Scrape(context.Background(), "http://titled", "Given Title", "")
	require.NoError(t, err)
	assert.Equal(t, "Given Title", record.Title)

	// Page title when no hint.
	record, err = service.Scrape(context.Background(), "http://titled", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Page Title", record.Title)

	// Literal fallback when neither exists.
	record, err = service.Scrape(context.Background(), "http://untitled", "", "")
	require.NoError(t, err)
	assert.Equal(t, "No title", record.Title)
}

func TestScrapeWordCountMatchesContent(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"http://x": "<p>one two three four five six</p>",
	}}
	service := NewService(&fakeAggregator{}, fetcher, 4)

	record, err := service.Scrape(context.Background(), "http://x", "", "snippet  text ☀")
	require.NoError(t, err)
	assert.Equal(t, "one two three four", record.Content)
	assert.Equal(t, len(strings.Fields(record.Content)), record.WordCount)
	assert.Equal(t, 4, record.WordCount)
	assert.Equal(t, "snippet text", record.Snippet)
}

func TestScrapeFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{errs: map[string]error{
		"http://down": errors.New("HTTP 500"),
	}}
	service := NewService(&fakeAggregator{}, fetcher, 5000)

	record, err := service.Scrape(context.Background(), "http://down", "", "")
	assert.Nil(t, record)
	require.Error(t, err)
}
