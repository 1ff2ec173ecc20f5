package webpage

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/yanqian/web-summarizer/internal/domain/summarizer"
)

// noiseSelectors are removed as whole subtrees before any text is read.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "header", "footer",
	"iframe",
	".ads", ".advertisement",
	"#comments", ".comments",
}

// contentSelectors are tried in priority order; ties keep the earlier selector.
var contentSelectors = []string{
	"article",
	`[role="main"]`,
	".post-content",
	".article-content",
	".entry-content",
	".content",
	"main",
	"#main-content",
}

// Extractor implements summarizer.PageExtractor on top of a Fetcher.
type Extractor struct {
	fetcher *Fetcher
}

// NewExtractor builds an Extractor.
func NewExtractor(fetcher *Fetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// Extract fetches the page and returns its cleaned main text. An empty result is valid.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	html, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return ExtractText(html)
}

// ExtractText reduces an HTML document to a single normalized text block.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &summarizer.ExtractionError{Err: err}
	}

	for _, selector := range noiseSelectors {
		doc.Find(selector).Remove()
	}

	best := candidate{}
	for _, selector := range contentSelectors {
		best = best.longer(newCandidate(doc.Find(selector).Text()))
	}

	text := best.text
	if text == "" {
		text = doc.Find("body").Text()
	}
	return Normalize(text), nil
}

type candidate struct {
	text   string
	length int
}

func newCandidate(raw string) candidate {
	text := strings.TrimSpace(raw)
	return candidate{text: text, length: utf8.RuneCountInString(text)}
}

// longer keeps the receiver unless next is strictly longer.
func (c candidate) longer(next candidate) candidate {
	if next.length > c.length {
		return next
	}
	return c
}

var _ summarizer.PageExtractor = (*Extractor)(nil)
