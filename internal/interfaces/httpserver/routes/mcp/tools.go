package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/benreichman/SearXNG-MCP-Server/internal/infrastructure/metrics"
)

const (
	toolSearchWeb  = "search_web"
	toolGetWebsite = "get_website"

	// Per-result content preview cap in the rendered search listing.
	searchContentPreviewChars = 500
)

// ToolDescriptor is one entry of the tools/list payload. The field names
// and schema shapes are a fixed, versioned contract consumers depend on.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

func toolDescriptors(defaultMaxResults int) []ToolDescriptor {
	return []ToolDescriptor{
		{
			Name:        toolSearchWeb,
			Description: "Search the web using SearXNG and scrape the resulting pages. Use this for finding current information, news, facts, or any web content.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "The search query to find relevant web content",
					},
					"max_results": map[string]any{
						"type":        "integer",
						"description": fmt.Sprintf("Maximum number of pages to scrape (default: %d)", defaultMaxResults),
						"default":     defaultMaxResults,
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        toolGetWebsite,
			Description: "Scrape content from a specific website URL. Use this when you have a specific URL you want to extract content from.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{
						"type":        "string",
						"description": "The URL of the website to scrape",
					},
				},
				"required": []string{"url"},
			},
		},
	}
}

type toolsCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type searchWebArgs struct {
	Query      string `json:"query"`
	MaxResults *int   `json:"max_results"`
}

type getWebsiteArgs struct {
	URL string `json:"url"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolResult struct {
	Content []contentBlock `json:"content"`
}

func textResult(text string) *toolResult {
	return &toolResult{
		Content: []contentBlock{{Type: "text", Text: text}},
	}
}

func (d *Dispatcher) callTool(ctx context.Context, rawParams json.RawMessage) (any, error) {
	if len(rawParams) == 0 {
		return nil, errInvalidParams("missing parameters for tool call")
	}
	var params toolsCallParams
	if err := json.Unmarshal(rawParams, &params); err != nil {
		return nil, errInvalidParams("malformed tool call parameters: %v", err)
	}
	if params.Name == "" {
		return nil, errInvalidParams("missing tool name")
	}

	started := time.Now()
	status := "success"
	defer func() {
		metrics.RecordToolCall(params.Name, status)
		metrics.RecordToolDuration(params.Name, time.Since(started).Seconds())
	}()

	var result any
	var err error
	switch params.Name {
	case toolSearchWeb:
		result, err = d.callSearchWeb(ctx, params.Arguments)
	case toolGetWebsite:
		result, err = d.callGetWebsite(ctx, params.Arguments)
	default:
		err = errInvalidParams("unknown tool: %s", params.Name)
	}
	if err != nil {
		status = "error"
	}
	return result, err
}

func (d *Dispatcher) callSearchWeb(ctx context.Context, rawArgs json.RawMessage) (any, error) {
	var args searchWebArgs
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			return nil, errInvalidParams("malformed search_web arguments: %v", err)
		}
	}
	if args.Query == "" {
		return nil, errInvalidParams("search query is required")
	}
	maxResults := d.defaultMaxResults
	if args.MaxResults != nil && *args.MaxResults >= 1 {
		maxResults = *args.MaxResults
	}

	// Upstream failures are rendered into the tool's text result so the
	// calling LLM sees a natural-language explanation, never a protocol
	// error.
	records, err := d.service.SearchAndScrape(ctx, args.Query, maxResults)
	if err != nil {
		return textResult(fmt.Sprintf("Search failed: %s", err)), nil
	}
	if len(records) == 0 {
		return textResult("Search failed: No results found"), nil
	}

	blocks := make([]string, 0, len(records))
	for i, record := range records {
		blocks = append(blocks, fmt.Sprintf(
			"**Result %d: %s**\nURL: %s\nContent: %s\nWord Count: %d\n",
			i+1, record.Title, record.URL, previewContent(record.Content), record.WordCount,
		))
	}

	text := fmt.Sprintf(
		"Web search completed for query: '%s'\nFound %d relevant pages:\n\n%s",
		args.Query, len(records), strings.Join(blocks, "\n---\n"),
	)
	return textResult(text), nil
}

func (d *Dispatcher) callGetWebsite(ctx context.Context, rawArgs json.RawMessage) (any, error) {
	var args getWebsiteArgs
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			return nil, errInvalidParams("malformed get_website arguments: %v", err)
		}
	}
	if args.URL == "" {
		return nil, errInvalidParams("URL is required")
	}

	record, err := d.service.Scrape(ctx, args.URL, "", "")
	if err != nil {
		return textResult(fmt.Sprintf("Failed to scrape website: %s", err)), nil
	}

	text := fmt.Sprintf(
		"**%s**\nURL: %s\nContent: %s\nWord Count: %d",
		record.Title, record.URL, record.Content, record.WordCount,
	)
	return textResult(text), nil
}

// previewContent truncates content for the search listing; the full text
// stays subject only to the global word cap.
func previewContent(content string) string {
	runes := []rune(content)
	if len(runes) <= searchContentPreviewChars {
		return content
	}
	return string(runes[:searchContentPreviewChars]) + "..."
}
