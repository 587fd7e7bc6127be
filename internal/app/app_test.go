package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cognito-terminal/internal/sim"
	"cognito-terminal/internal/store"
)

func TestBuildAndRunOffline(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	dir := t.TempDir()
	cfg := store.Default()
	cfg.Oracle.Provider = "NOOP"
	cfg.Market.BaseURL = down.URL
	cfg.History.Path = filepath.Join(dir, "history.json")
	cfg.Simulation.JournalDir = filepath.Join(dir, "journal")

	ctx := context.Background()
	a, err := Build(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, a.EOD)

	res, err := a.Runner.Run(ctx, sim.Params{Asset: "BTC", Cash: 10000, Days: 4}, nil)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, res.InitialValue)
	assert.Len(t, res.Records, 4)

	entries, err := a.History.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, a.Close(ctx))
	_, err = os.Stat(filepath.Join(cfg.Simulation.JournalDir, "decisions", time.Now().Format("2006-01-02")+".txt"))
	assert.NoError(t, err)
}

func TestBuildRejectsUnreachableRedis(t *testing.T) {
	cfg := store.Default()
	cfg.Oracle.Provider = "NOOP"
	cfg.History.Backend = "REDIS"
	cfg.History.RedisAddr = "127.0.0.1:1"

	_, err := Build(context.Background(), cfg)
	assert.Error(t, err)
}
