package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"cognito-terminal/internal/app"
	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/server"
	"cognito-terminal/internal/store"
)

// initializeSystem loads .env and brings up logging; the logger owns the
// tracer (LOG_TRACING_ENABLED) and logger.Shutdown flushes it.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// initializeServer wires the application and mounts it on an HTTP server
func initializeServer(ctx context.Context, cfg *store.Config) (*app.App, *server.Server, error) {
	a, err := app.Build(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	srv := server.New(server.Deps{
		Runner:   a.Runner,
		Market:   a.Market,
		History:  a.History,
		Oracle:   a.Oracle,
		News:     a.News,
		Gatherer: a.Registry,
	})
	return a, srv, nil
}
