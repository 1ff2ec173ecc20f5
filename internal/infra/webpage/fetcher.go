// Package webpage fetches web pages and reduces them to their main text.
package webpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/yanqian/web-summarizer/internal/domain/summarizer"
)

const (
	// DefaultUserAgent mimics a desktop browser; many sites reject Go's default agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	// DefaultMaxBodyBytes caps how much of a page is read.
	DefaultMaxBodyBytes int64 = 5 << 20
)

// Fetcher retrieves pages over HTTP with a single attempt per call.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) {
		if strings.TrimSpace(userAgent) != "" {
			f.userAgent = userAgent
		}
	}
}

// WithMaxBodyBytes overrides the body size cap. Non-positive values keep the default.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

// NewFetcher creates a Fetcher. The default client has no timeout of its own;
// the caller's context bounds the request.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:       &http.Client{},
		userAgent:    DefaultUserAgent,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the page body decoded to UTF-8. Every failure is a *summarizer.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &summarizer.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &summarizer.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &summarizer.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
		}
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &summarizer.FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("detect charset: %w", err)}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", &summarizer.FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return string(data), nil
}

// reasonPhrase strips the numeric prefix from resp.Status ("404 Not Found" -> "Not Found").
func reasonPhrase(resp *http.Response) string {
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
