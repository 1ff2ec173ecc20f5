package summarizer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/web-summarizer/internal/domain/summarizer"
	"github.com/yanqian/web-summarizer/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/web-summarizer/pkg/errors"
	"github.com/yanqian/web-summarizer/pkg/metrics"
)

func TestSummarizeExplicitWordCount(t *testing.T) {
	extractor := &stubExtractor{content: "Bitcoin is a decentralized digital currency."}
	client := &stubChatClient{resp: completion("- point one\n- point two")}
	svc := newService(extractor, client, false)

	wordCount := 450
	resp, err := svc.Summarize(context.Background(), summarizer.Request{
		URL:     "https://en.wikipedia.org/wiki/Bitcoin",
		Options: summarizer.RequestOptions{Style: "bullet-points", WordCount: &wordCount},
	})
	require.NoError(t, err)
	require.Equal(t, "- point one\n- point two", resp.Summary)
	require.Equal(t, "https://en.wikipedia.org/wiki/Bitcoin", resp.OriginalURL)
	require.Equal(t, 6, resp.WordCount)
	require.Equal(t, 599, resp.TokenBudget)

	require.Equal(t, []string{"https://en.wikipedia.org/wiki/Bitcoin"}, extractor.urls)
	require.Len(t, client.requests, 1)
	req := client.requests[0]
	require.Equal(t, "test-model", req.Model)
	require.Equal(t, 599, req.MaxTokens)
	require.InDelta(t, 0.4, req.Temperature, 1e-9)
	require.Len(t, req.Messages, 2)
	require.Equal(t, chatgpt.RoleSystem, req.Messages[0].Role)
	require.Contains(t, req.Messages[0].Content, "bullet-point summary with key points of approximately 450 words")
	require.Equal(t, chatgpt.RoleUser, req.Messages[1].Role)
	require.Equal(t, "Bitcoin is a decentralized digital currency.", req.Messages[1].Content)
}

func TestSummarizeEmptyContentUsesStyleFloor(t *testing.T) {
	client := &stubChatClient{resp: completion("Nothing much here.")}
	svc := newService(&stubExtractor{}, client, false)

	resp, err := svc.Summarize(context.Background(), summarizer.Request{
		URL:     "https://example.com/empty",
		Options: summarizer.RequestOptions{Style: "concise"},
	})
	require.NoError(t, err)
	require.Equal(t, 150, resp.TokenBudget)
	require.Equal(t, 3, resp.WordCount)

	req := client.requests[0]
	require.Equal(t, 150, req.MaxTokens)
	require.InDelta(t, 0.3, req.Temperature, 1e-9)
	require.Contains(t, req.Messages[0].Content, "approximately 113 words")
}

func TestSummarizeRejectsInvalidURLBeforeFetching(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a url", "/relative/path", "ftp://example.com/file", "https://", " \thttps:// "} {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			t.Parallel()
			extractor := &stubExtractor{}
			client := &stubChatClient{}
			svc := newService(extractor, client, false)

			_, err := svc.Summarize(context.Background(), summarizer.Request{
				URL:     raw,
				Options: summarizer.RequestOptions{Style: "concise"},
			})
			require.True(t, apperrors.IsCode(err, summarizer.CodeInvalidURL), "got %v", err)
			require.Empty(t, extractor.urls)
			require.Empty(t, client.requests)
		})
	}
}

func TestSummarizeTrimsURLBeforeFetching(t *testing.T) {
	extractor := &stubExtractor{content: "Some page text."}
	client := &stubChatClient{resp: completion("Short.")}
	svc := newService(extractor, client, false)

	resp, err := svc.Summarize(context.Background(), summarizer.Request{
		URL:     "  https://example.com/a \n",
		Options: summarizer.RequestOptions{Style: "concise"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"https://example.com/a"}, extractor.urls)
	require.Equal(t, "https://example.com/a", resp.OriginalURL)
}

func TestSummarizeRejectsInvalidOptions(t *testing.T) {
	zero, negative := 0, -5
	tests := []struct {
		name string
		opts summarizer.RequestOptions
	}{
		{name: "unknown style", opts: summarizer.RequestOptions{Style: "invalid"}},
		{name: "missing style", opts: summarizer.RequestOptions{}},
		{name: "zero word count", opts: summarizer.RequestOptions{Style: "concise", WordCount: &zero}},
		{name: "negative word count", opts: summarizer.RequestOptions{Style: "detailed", WordCount: &negative}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			extractor := &stubExtractor{}
			svc := newService(extractor, &stubChatClient{}, false)

			_, err := svc.Summarize(context.Background(), summarizer.Request{URL: "https://example.com", Options: tt.opts})
			require.True(t, apperrors.IsCode(err, summarizer.CodeInvalidOptions), "got %v", err)
			require.Empty(t, extractor.urls)
		})
	}
}

func TestSummarizeFetchErrorSkipsCompletion(t *testing.T) {
	extractor := &stubExtractor{err: &summarizer.FetchError{URL: "https://example.com/missing", StatusCode: http.StatusNotFound, Reason: "Not Found"}}
	client := &stubChatClient{}
	svc := newService(extractor, client, false)

	_, err := svc.Summarize(context.Background(), summarizer.Request{
		URL:     "https://example.com/missing",
		Options: summarizer.RequestOptions{Style: "concise"},
	})
	require.True(t, apperrors.IsCode(err, summarizer.CodeFetchFailed))

	var fetchErr *summarizer.FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	require.Empty(t, client.requests)
}

func TestSummarizeExtractionError(t *testing.T) {
	extractor := &stubExtractor{err: &summarizer.ExtractionError{Err: errors.New("bad markup")}}
	svc := newService(extractor, &stubChatClient{}, false)

	_, err := svc.Summarize(context.Background(), summarizer.Request{
		URL:     "https://example.com",
		Options: summarizer.RequestOptions{Style: "detailed"},
	})
	require.True(t, apperrors.IsCode(err, summarizer.CodeExtractionFailed))
}

func TestSummarizeCompletionErrorIsWrapped(t *testing.T) {
	upstream := &chatgpt.APIError{StatusCode: http.StatusTooManyRequests, Message: "quota exceeded"}
	client := &stubChatClient{err: upstream}
	svc := newService(&stubExtractor{content: "text"}, client, false)

	_, err := svc.Summarize(context.Background(), summarizer.Request{
		URL:     "https://example.com",
		Options: summarizer.RequestOptions{Style: "concise"},
	})
	require.True(t, apperrors.IsCode(err, summarizer.CodeCompletionFailed))
	require.ErrorIs(t, err, upstream)
	require.Contains(t, err.Error(), "status=429")
	require.Len(t, client.requests, 1)
}

func TestSummarizeMissingChoiceIsEmptySummary(t *testing.T) {
	client := &stubChatClient{resp: chatgpt.ChatCompletionResponse{}}
	svc := newService(&stubExtractor{content: "text"}, client, false)

	resp, err := svc.Summarize(context.Background(), summarizer.Request{
		URL:     "https://example.com",
		Options: summarizer.RequestOptions{Style: "concise"},
	})
	require.NoError(t, err)
	require.Equal(t, "", resp.Summary)
	require.Equal(t, 0, resp.WordCount)
	require.Nil(t, resp.TokenUsage)
}

func TestSummarizeReportsTokenUsage(t *testing.T) {
	out := completion("  Short answer.  ")
	out.Usage = metrics.TokenUsage{PromptTokens: 40, CompletionTokens: 3, TotalTokens: 43}
	svc := newService(&stubExtractor{content: "text"}, &stubChatClient{resp: out}, false)

	resp, err := svc.Summarize(context.Background(), summarizer.Request{
		URL:     "https://example.com",
		Options: summarizer.RequestOptions{Style: "concise"},
	})
	require.NoError(t, err)
	require.Equal(t, "Short answer.", resp.Summary)
	require.Equal(t, &metrics.TokenUsage{PromptTokens: 40, CompletionTokens: 3, TotalTokens: 43}, resp.TokenUsage)
}

func TestSummarizeModelOverride(t *testing.T) {
	req := summarizer.Request{
		URL:     "https://example.com",
		Options: summarizer.RequestOptions{Style: "concise", Model: "gpt-4o-mini"},
	}

	client := &stubChatClient{resp: completion("ok")}
	_, err := newService(&stubExtractor{content: "text"}, client, false).Summarize(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "test-model", client.requests[0].Model)

	client = &stubChatClient{resp: completion("ok")}
	_, err = newService(&stubExtractor{content: "text"}, client, true).Summarize(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", client.requests[0].Model)
}

func newService(extractor summarizer.PageExtractor, client summarizer.ChatClient, allowOverride bool) summarizer.Service {
	policy := testPolicy()
	cfg := summarizer.Config{Policy: policy, AllowModelOverride: allowOverride}
	return summarizer.NewService(cfg, extractor, summarizer.WordEstimator{Coefficient: policy.TokenCoefficient}, client, newTestLogger())
}

func testPolicy() summarizer.ChatPolicy {
	return summarizer.ChatPolicy{
		TokenCoefficient: 1.33,
		MinTokenCount: map[summarizer.Style]int{
			summarizer.StyleConcise:      150,
			summarizer.StyleBulletPoints: 250,
			summarizer.StyleDetailed:     300,
		},
		MaxTokenCount: 3000,
		Temperatures: map[summarizer.Style]float64{
			summarizer.StyleConcise:      0.3,
			summarizer.StyleBulletPoints: 0.4,
			summarizer.StyleDetailed:     0.5,
		},
		Model: "test-model",
	}
}

func completion(content string) chatgpt.ChatCompletionResponse {
	return chatgpt.ChatCompletionResponse{
		Choices: []chatgpt.Choice{{Message: chatgpt.Message{Role: chatgpt.RoleAssistant, Content: content}, FinishReason: "stop"}},
	}
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubExtractor struct {
	content string
	err     error
	urls    []string
}

func (s *stubExtractor) Extract(_ context.Context, url string) (string, error) {
	s.urls = append(s.urls, url)
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

type stubChatClient struct {
	resp     chatgpt.ChatCompletionResponse
	err      error
	requests []chatgpt.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return chatgpt.ChatCompletionResponse{}, s.err
	}
	return s.resp, nil
}
