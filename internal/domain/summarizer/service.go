package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yanqian/web-summarizer/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/web-summarizer/pkg/errors"
	"github.com/yanqian/web-summarizer/pkg/util"
)

// Service exposes web page summarization.
type Service interface {
	Summarize(ctx context.Context, req Request) (Response, error)
}

// PageExtractor fetches a page and reduces it to its main text.
type PageExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type service struct {
	cfg       Config
	extractor PageExtractor
	estimator TokenEstimator
	client    ChatClient
	logger    *slog.Logger
	now       func() time.Time
}

// NewService is a wire provider for the summarizer domain.
func NewService(cfg Config, extractor PageExtractor, estimator TokenEstimator, client ChatClient, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		extractor: extractor,
		estimator: estimator,
		client:    client,
		logger:    logger.With("component", "summarizer.service"),
		now:       util.NowUTC,
	}
}

func (s *service) Summarize(ctx context.Context, req Request) (Response, error) {
	start := s.now()
	req.URL = strings.TrimSpace(req.URL)

	style, err := s.validate(req)
	if err != nil {
		s.logger.Warn("summary request rejected", "url", req.URL, "error", err)
		return Response{}, err
	}

	content, err := s.extractor.Extract(ctx, req.URL)
	if err != nil {
		err = classifyExtractError(err)
		s.logger.Error("page extraction failed", "url", req.URL, "code", apperrors.CodeOf(err), "error", err)
		return Response{}, err
	}

	policy := s.cfg.Policy
	budget := ComputeBudget(content, style, req.Options.WordCount, policy, s.estimator)
	targetWords := TargetWordCount(budget, req.Options.WordCount, policy)
	model := s.model(req.Options)
	s.logger.Info("summary budget computed",
		"url", req.URL,
		"style", style,
		"content_chars", utf8.RuneCountInString(content),
		"token_budget", budget,
		"target_words", targetWords,
		"model", model,
	)

	completion, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: model,
		Messages: []chatgpt.Message{
			{Role: chatgpt.RoleSystem, Content: ComposePrompt(style, targetWords)},
			{Role: chatgpt.RoleUser, Content: content},
		},
		Temperature: policy.Temperatures[style],
		MaxTokens:   budget,
	})
	if err != nil {
		err = apperrors.Wrap(CodeCompletionFailed, "completion request failed", err)
		s.logger.Error("completion request failed", "url", req.URL, "model", model, "error", err)
		return Response{}, err
	}

	var summary string
	if len(completion.Choices) > 0 {
		summary = strings.TrimSpace(completion.Choices[0].Message.Content)
	}
	s.logger.Debug("completion received", "url", req.URL, "summary_chars", len(summary))

	resp := Response{
		Summary:     summary,
		OriginalURL: req.URL,
		WordCount:   CountWords(summary),
		TokenBudget: budget,
		DurationMs:  util.MillisSince(start, s.now()),
	}
	if !completion.Usage.IsZero() {
		usage := completion.Usage
		resp.TokenUsage = &usage
	}
	return resp, nil
}

func (s *service) validate(req Request) (Style, error) {
	if err := validateURL(req.URL); err != nil {
		return "", apperrors.Wrap(CodeInvalidURL, "invalid or missing url", err)
	}
	style, err := ParseStyle(req.Options.Style)
	if err != nil {
		return "", apperrors.Wrap(CodeInvalidOptions, "invalid options", err)
	}
	if wc := req.Options.WordCount; wc != nil && *wc <= 0 {
		return "", apperrors.Wrap(CodeInvalidOptions, "invalid options", fmt.Errorf("wordCount must be a positive integer, got %d", *wc))
	}
	return style, nil
}

func (s *service) model(opts RequestOptions) string {
	if s.cfg.AllowModelOverride {
		if model := strings.TrimSpace(opts.Model); model != "" {
			return model
		}
	}
	return s.cfg.Policy.Model
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return fmt.Errorf("url %q is not absolute", raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url scheme %q is not supported", parsed.Scheme)
	}
	return nil
}

func classifyExtractError(err error) error {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return apperrors.Wrap(CodeFetchFailed, "page fetch failed", err)
	}
	return apperrors.Wrap(CodeExtractionFailed, "content extraction failed", err)
}
