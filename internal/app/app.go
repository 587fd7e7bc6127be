// Package app wires the configured collaborators into a ready-to-use runner.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"cognito-terminal/internal/eod"
	"cognito-terminal/internal/eod/eodobs"
	"cognito-terminal/internal/history"
	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/llm"
	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/marketdata"
	"cognito-terminal/internal/metrics"
	"cognito-terminal/internal/news"
	"cognito-terminal/internal/oracle"
	"cognito-terminal/internal/sim"
	"cognito-terminal/internal/store"
	"cognito-terminal/internal/tradelog"
)

type App struct {
	Config   *store.Config
	Registry *prometheus.Registry
	Metrics  *metrics.Recorder
	Market   *marketdata.CoinGecko
	Oracle   *oracle.Oracle
	History  interfaces.HistoryStore
	News     *news.Service
	Journal  *tradelog.Journal
	EOD      interfaces.EodSummarizer // nil when journaling is off
	Runner   *sim.Runner
}

func Build(ctx context.Context, cfg *store.Config) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	hist, err := history.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}

	a := &App{
		Config:   cfg,
		Registry: reg,
		Metrics:  m,
		Market:   marketdata.NewCoinGecko(cfg),
		Oracle:   oracle.New(llm.New(ctx, cfg, m), m),
		History:  hist,
		Journal:  tradelog.New(cfg.Simulation.JournalDir),
	}
	if a.Journal != nil {
		a.EOD = eodobs.Wrap(eod.NewSummarizer(a.Journal.Dir()))
		if err := a.Journal.CompressOlder(cfg.Simulation.JournalKeep); err != nil {
			logger.Warn(ctx, "Failed to compress old journals", "error", err.Error())
		}
	}
	a.News = news.NewService(cfg, a.Oracle)
	a.Runner = sim.NewRunner(cfg, a.Market, a.Oracle, a.History, a.Metrics, sim.WithJournal(a.Journal))

	logger.Info(ctx, "Application wired",
		"oracle_provider", cfg.Oracle.Provider,
		"history_backend", cfg.History.Backend,
		"journal_dir", cfg.Simulation.JournalDir,
	)
	return a, nil
}

// Close writes today's fill summary and releases the history backend.
func (a *App) Close(ctx context.Context) error {
	if a.EOD != nil {
		if _, err := a.EOD.SummarizeDay(ctx, time.Now()); err != nil {
			logger.Warn(ctx, "EOD summary failed", "error", err.Error())
		}
	}
	if c, ok := a.History.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
