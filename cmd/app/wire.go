//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/web-summarizer/internal/bootstrap"
	"github.com/yanqian/web-summarizer/internal/domain/summarizer"
	"github.com/yanqian/web-summarizer/internal/infra/config"
	"github.com/yanqian/web-summarizer/internal/infra/llm/chatgpt"
	"github.com/yanqian/web-summarizer/internal/infra/webpage"
	httpiface "github.com/yanqian/web-summarizer/internal/interface/http"
	"github.com/yanqian/web-summarizer/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideChatPolicy,
		provideSummaryConfig,
		provideFetcher,
		provideTokenEstimator,
		provideChatGPTClient,
		webpage.NewExtractor,
		summarizer.NewService,
		wire.Bind(new(summarizer.PageExtractor), new(*webpage.Extractor)),
		wire.Bind(new(summarizer.ChatClient), new(*chatgpt.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
