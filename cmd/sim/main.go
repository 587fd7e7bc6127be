// Command sim runs one simulation from the terminal and prints the daily ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"cognito-terminal/internal/app"
	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/sim"
	"cognito-terminal/internal/store"
	"cognito-terminal/internal/types"
)

func main() {
	os.Exit(run())
}

// run returns the exit code; main is the only caller of os.Exit.
func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	asset := flag.String("asset", "", "asset ticker or coin id (defaults to simulation.asset)")
	cash := flag.Float64("cash", -1, "starting cash (defaults to simulation.cash)")
	qty := flag.Float64("qty", -1, "starting holdings (defaults to simulation.qty)")
	days := flag.Int("days", 0, "number of days to simulate (defaults to simulation.days)")
	flag.Parse()

	_ = godotenv.Load()
	// stdout carries the ledger
	logCfg := logger.LoadConfigFromEnv()
	logCfg.Output = os.Stderr
	if err := logger.InitWithConfig(logCfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Shutdown(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return 1
	}

	return simulate(ctx, cfg, paramsFrom(cfg, *asset, *cash, *qty, *days), os.Stdout)
}

// simulate runs one simulation and writes the ledger and report to out.
// The application is closed on every path, so the EOD summary is written
// even when the run fails.
func simulate(ctx context.Context, cfg *store.Config, p sim.Params, out io.Writer) int {
	a, err := app.Build(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to initialize", err)
		return 1
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Warn(ctx, "Failed to close history store", "error", err.Error())
		}
	}()

	res, err := a.Runner.Run(ctx, p, func(r types.DailyStepRecord) {
		logger.Info(ctx, "Day complete", "day", r.Day, "action", string(r.Action), "price", r.Price)
	})
	if err != nil {
		logger.ErrorWithErr(ctx, "Simulation failed", err)
		return 1
	}

	fmt.Fprintln(out, renderLedger(res.Records))
	fmt.Fprintln(out, renderReport(res.Asset, res.InitialValue, res.FinalValue, res.PnLPercent, res.Report))
	return 0
}

// paramsFrom overlays explicitly set flags onto the configured defaults.
func paramsFrom(cfg *store.Config, asset string, cash, qty float64, days int) sim.Params {
	p := sim.Params{
		Asset: cfg.Simulation.Asset,
		Cash:  cfg.Simulation.Cash,
		Qty:   cfg.Simulation.Qty,
		Days:  cfg.Simulation.Days,
	}
	if asset != "" {
		p.Asset = asset
	}
	if cash >= 0 {
		p.Cash = cash
	}
	if qty >= 0 {
		p.Qty = qty
	}
	if days > 0 {
		p.Days = days
	}
	return p
}
