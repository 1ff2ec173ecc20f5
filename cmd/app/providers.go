package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/yanqian/web-summarizer/internal/domain/summarizer"
	"github.com/yanqian/web-summarizer/internal/infra/config"
	"github.com/yanqian/web-summarizer/internal/infra/llm/chatgpt"
	"github.com/yanqian/web-summarizer/internal/infra/tokenizer"
	"github.com/yanqian/web-summarizer/internal/infra/webpage"
)

func provideChatPolicy(cfg *config.Config) (summarizer.ChatPolicy, error) {
	s := cfg.Summary
	policy := summarizer.ChatPolicy{
		TokenCoefficient: s.TokenCoefficient,
		MaxTokenCount:    s.MaxTokenCount,
		Model:            cfg.LLM.Model,
		MinTokenCount: map[summarizer.Style]int{
			summarizer.StyleConcise:      s.MinTokenCount.Concise,
			summarizer.StyleBulletPoints: s.MinTokenCount.BulletPoints,
			summarizer.StyleDetailed:     s.MinTokenCount.Detailed,
		},
		Temperatures: map[summarizer.Style]float64{
			summarizer.StyleConcise:      s.Temperature.Concise,
			summarizer.StyleBulletPoints: s.Temperature.BulletPoints,
			summarizer.StyleDetailed:     s.Temperature.Detailed,
		},
	}
	if err := policy.Validate(); err != nil {
		return summarizer.ChatPolicy{}, fmt.Errorf("invalid chat policy: %w", err)
	}
	return policy, nil
}

func provideSummaryConfig(cfg *config.Config, policy summarizer.ChatPolicy) summarizer.Config {
	return summarizer.Config{
		Policy:             policy,
		AllowModelOverride: cfg.LLM.AllowModelOverride,
	}
}

func provideFetcher(cfg *config.Config) *webpage.Fetcher {
	return webpage.NewFetcher(
		webpage.WithUserAgent(cfg.Fetch.UserAgent),
		webpage.WithMaxBodyBytes(cfg.Fetch.MaxBodyBytes),
	)
}

// provideTokenEstimator prefers exact BPE counts and degrades to the word
// coefficient when the encoding cannot be loaded.
func provideTokenEstimator(cfg *config.Config, policy summarizer.ChatPolicy, logger *slog.Logger) summarizer.TokenEstimator {
	fallback := summarizer.WordEstimator{Coefficient: policy.TokenCoefficient}
	if cfg.Summary.Tokenizer != config.TokenizerTiktoken {
		logger.Info("using word coefficient token estimator", "coefficient", policy.TokenCoefficient)
		return fallback
	}
	estimator, err := tokenizer.NewTiktoken(cfg.Summary.Encoding)
	if err != nil {
		logger.Error("tiktoken unavailable, using word coefficient estimator", "encoding", cfg.Summary.Encoding, "error", err)
		return fallback
	}
	logger.Info("tiktoken token estimator enabled", "encoding", cfg.Summary.Encoding)
	return estimator
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, &http.Client{})
}
