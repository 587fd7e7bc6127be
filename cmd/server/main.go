package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cognito-terminal/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		os.Exit(1)
	}

	a, srv, err := initializeServer(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to initialize server", err)
		os.Exit(1)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start(cfg.Server.Addr)
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigc:
		logger.Info(ctx, "Shutting down", "signal", sig.String())
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithErr(ctx, "Server stopped unexpectedly", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Graceful shutdown failed", err)
	}
	if err := a.Close(shutdownCtx); err != nil {
		logger.Warn(shutdownCtx, "Failed to close history store", "error", err.Error())
	}
	_ = logger.Shutdown(shutdownCtx)
}
