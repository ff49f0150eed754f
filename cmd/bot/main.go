package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"web3alerts-bot/internal/logger"
	"web3alerts-bot/internal/trace"
)

type options struct {
	Now    bool   `long:"now" description:"Publish immediately instead of scheduling for later"`
	Config string `long:"config" default:"config.yaml" description:"Path to the config file"`
}

func main() {
	_ = godotenv.Load()

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = trace.Shutdown(context.Background()) }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		logger.Warn(ctx, "Shutting down...")
		cancel()
	}()

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		os.Exit(1)
	}

	if opts.Now {
		logger.Info(ctx, "Mode: INSTANT PUBLISH")
	} else {
		logger.Info(ctx, "Mode: SCHEDULED", "hours_delay", cfg.Publish.HoursDelay)
	}

	compressOldLogs(ctx)

	runner, err := buildPipeline(ctx, cfg, opts.Now)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to build pipeline", err)
		os.Exit(1)
	}

	result, err := runner.Run(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Run failed", err)
		os.Exit(1)
	}

	switch {
	case result.Projects == 0:
		logger.Warn(ctx, "Run finished with no projects")
	case result.DryRun:
		logger.Info(ctx, "Dry run finished", "projects", result.Projects, "fallbacks", result.Fallbacks)
	default:
		logger.Info(ctx, "Run finished",
			"projects", result.Projects,
			"fallbacks", result.Fallbacks,
			"draft_url", result.Published.URL,
			"scheduled_at", result.Published.ScheduledAt,
		)
	}
}
