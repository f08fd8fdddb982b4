package websearch

import "context"

// AggregatorResult is one candidate page as reported by the search
// aggregator. Title and Snippet may be empty.
type AggregatorResult struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Snippet string `json:"content,omitempty"`
}

// Page is a fetched web page, body undecoded.
type Page struct {
	Body        []byte
	ContentType string
}

// Result is one enriched search result record.
//
// Content never exceeds the configured word cap and WordCount always
// equals the number of whitespace-delimited tokens in Content.
type Result struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Content   string `json:"content"`
	Snippet   string `json:"snippet"`
	WordCount int    `json:"word_count"`
}

// Aggregator queries the external multi-engine search backend.
type Aggregator interface {
	Search(ctx context.Context, query string) ([]AggregatorResult, error)
}

// PageFetcher downloads a single web page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}
