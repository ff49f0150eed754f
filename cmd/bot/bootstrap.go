package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"web3alerts-bot/internal/alerts"
	"web3alerts-bot/internal/alerts/sourceobs"
	"web3alerts-bot/internal/interfaces"
	"web3alerts-bot/internal/llm/gemini"
	"web3alerts-bot/internal/llm/llmobs"
	"web3alerts-bot/internal/llm/noop"
	"web3alerts-bot/internal/logger"
	"web3alerts-bot/internal/pipeline"
	"web3alerts-bot/internal/runlog"
	"web3alerts-bot/internal/store"
	"web3alerts-bot/internal/summary"
	"web3alerts-bot/internal/trace"
	"web3alerts-bot/internal/typefully"
	"web3alerts-bot/internal/typefully/pubobs"
)

// initializeSystem initializes the logger and tracer.
func initializeSystem() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses old run records if retention is configured.
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("BOT_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := runlog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old run records", "error", err)
		}
	}
}

// initializeSource builds the catalog client with observability.
func initializeSource(ctx context.Context, cfg *store.Config) (interfaces.ProjectSource, error) {
	client, err := alerts.NewClient(alerts.Params{
		BaseURL:             cfg.Source.BaseURL,
		CookiesPath:         cfg.Source.CookiesPath,
		Timeout:             time.Duration(cfg.Source.TimeoutSeconds) * time.Second,
		Enrich:              cfg.Source.Enrich,
		MinDescriptionChars: cfg.Source.MinDescriptionChars,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Source.Enrich {
		logger.Info(ctx, "Description enrichment enabled", "min_chars", cfg.Source.MinDescriptionChars)
	}
	return sourceobs.Wrap(client), nil
}

// initializeSummarizer builds the summarizer with observability.
func initializeSummarizer(ctx context.Context, cfg *store.Config) interfaces.Summarizer {
	var summarizer interfaces.Summarizer
	switch cfg.LLM.Provider {
	case "GEMINI":
		summarizer = gemini.New(cfg.GeminiAPIKey, cfg.LLM.Model)
	default:
		summarizer = noop.New()
		logger.Warn(ctx, "No LLM provider configured - summaries will be truncated descriptions")
	}
	return llmobs.Wrap(summarizer)
}

// initializePublisher builds the Typefully publisher with observability.
func initializePublisher(cfg *store.Config, publishNow bool) (interfaces.Publisher, error) {
	pub, err := typefully.NewPublisher(typefully.Params{
		APIKey:     cfg.TypefullyAPIKey,
		HoursDelay: cfg.Publish.HoursDelay,
		Timezone:   cfg.Publish.Timezone,
		PublishNow: publishNow,
	})
	if err != nil {
		return nil, err
	}
	return pubobs.Wrap(pub), nil
}

// buildPipeline wires the stages together.
func buildPipeline(ctx context.Context, cfg *store.Config, publishNow bool) (interfaces.Runner, error) {
	if cfg.Mode == "DRY_RUN" {
		logger.Warn(ctx, "Running in DRY_RUN mode - the post will be printed, not published")
	}

	source, err := initializeSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := summary.NewService(initializeSummarizer(ctx, cfg), summary.Params{
		MaxWords:     cfg.LLM.MaxWords,
		RequestDelay: time.Duration(cfg.LLM.RequestDelaySeconds) * time.Second,
	})

	publisher, err := initializePublisher(cfg, publishNow)
	if err != nil {
		return nil, err
	}

	return pipeline.New(cfg, source, svc, publisher), nil
}
