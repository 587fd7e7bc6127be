// Package server exposes simulations, run history and market views over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/oracle"
	"cognito-terminal/internal/sim"
)

type Deps struct {
	Runner   *sim.Runner
	Market   interfaces.MarketData
	History  interfaces.HistoryStore
	Oracle   *oracle.Oracle
	News     interfaces.NewsFeed // optional
	Gatherer prometheus.Gatherer
}

type Server struct {
	echo *echo.Echo
	deps Deps
}

func New(d Deps) *Server {
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(recoverMiddleware())
	e.Use(requestLogging())

	s := &Server{echo: e, deps: d}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{})))

	g := s.echo.Group("/api")
	g.POST("/simulations", s.runSimulation)
	g.GET("/simulations/stream", s.streamSimulation)
	g.GET("/history", s.listHistory)
	g.DELETE("/history", s.clearHistory)
	g.GET("/assets/:id/audit", s.auditAsset)
	g.GET("/assets/:id/history", s.assetHistory)
	g.GET("/assets/:id/news", s.assetNews)
	g.GET("/scanner", s.scanner)
	g.POST("/chat", s.chat)
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	logger.Info(context.Background(), "HTTP server listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	logger.Info(ctx, "HTTP server stopped gracefully")
	return nil
}
