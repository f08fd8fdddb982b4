// Package textnorm converts raw HTML or text into clean, bounded-length
// plain text. All functions are pure and perform no I/O.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// ExtractText parses raw as HTML and returns the visible text, joining
// text nodes with single spaces. Script and style subtrees are skipped.
// Plain-text input passes through untouched apart from whitespace joining.
func ExtractText(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	var builder strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			val := strings.TrimSpace(n.Data)
			if val != "" {
				if builder.Len() > 0 {
					builder.WriteString(" ")
				}
				builder.WriteString(val)
			}
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return builder.String()
}

// ExtractTitle returns the text of the first <title> element, trimmed.
// Empty string when the document has no title.
func ExtractTitle(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

// Clean applies NFKC normalization, drops runes in Unicode category So,
// collapses whitespace runs to single spaces and trims the result.
//
// The So filter strips most emoji and pictographic symbols. It is a
// known-incomplete heuristic: multi-codepoint emoji sequences built from
// other categories survive.
func Clean(s string) string {
	s = norm.NFKC.String(s)

	var builder strings.Builder
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.So, r) {
			continue
		}
		builder.WriteRune(r)
	}

	return strings.Join(strings.Fields(builder.String()), " ")
}

// TruncateWords keeps at most limit whitespace-delimited tokens of s,
// preserving order. Input already within the limit is returned unchanged.
func TruncateWords(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	words := strings.Fields(s)
	if len(words) <= limit {
		return s
	}
	return strings.Join(words[:limit], " ")
}

// Normalize extracts visible text from raw HTML or text, cleans it and
// truncates it to at most wordLimit tokens.
func Normalize(raw string, wordLimit int) string {
	return TruncateWords(Clean(ExtractText(raw)), wordLimit)
}
