package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cognito-terminal/internal/store"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*CoinGecko, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := store.Default()
	cfg.Market.BaseURL = srv.URL
	cfg.Market.CacheTTL = time.Minute
	return NewCoinGecko(cfg), &calls
}

func TestResolveCoinID(t *testing.T) {
	tests := map[string]string{
		"BTC":               "bitcoin",
		"avax":              "avalanche-2",
		"Bitcoin (bitcoin)": "bitcoin",
		"Solana ( solana )": "solana",
		"cardano":           "cardano",
		"  PEPE ":           "pepe",
	}
	for in, want := range tests {
		if got := ResolveCoinID(in); got != want {
			t.Errorf("ResolveCoinID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStartPrice(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ids") != "ethereum" {
			t.Errorf("unexpected ids %q", r.URL.Query().Get("ids"))
		}
		w.Write([]byte(`{"ethereum":{"usd":3120.5,"usd_24h_change":-1.2}}`))
	})

	price, err := c.StartPrice(context.Background(), "ETH")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 3120.5 {
		t.Errorf("Expected 3120.5, got %v", price)
	}
}

func TestStartPriceUnknownAsset(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := c.StartPrice(context.Background(), "NOTACOIN")
	if !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("Expected ErrUnknownAsset, got %v", err)
	}
}

func TestStartPriceHTTPFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	if _, err := c.StartPrice(context.Background(), "BTC"); err == nil {
		t.Error("Expected error on 429")
	}
}

func TestQuoteIsCached(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bitcoin":{"usd":64000,"usd_24h_vol":1e9,"usd_24h_change":2.5,"usd_market_cap":1.2e12}}`))
	})

	for i := 0; i < 3; i++ {
		q, err := c.Quote(context.Background(), "Bitcoin (bitcoin)")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Change24h != 2.5 || q.MarketCap != 1.2e12 {
			t.Errorf("unexpected quote %+v", q)
		}
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Errorf("Expected 1 upstream call, got %d", n)
	}
}

func TestScanner(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("per_page") != "2" {
			t.Errorf("unexpected per_page %q", r.URL.Query().Get("per_page"))
		}
		w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":64000,"price_change_percentage_24h":3.1},
			{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3100,"price_change_percentage_24h":-6.4}
		]`))
	})

	rows, err := c.Scanner(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[1].Change24h != -6.4 {
		t.Errorf("unexpected rows %+v", rows)
	}
}

func TestHistory(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/solana/market_chart" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("days") != "7" {
			t.Errorf("unexpected days %q", r.URL.Query().Get("days"))
		}
		w.Write([]byte(`{"prices":[[1700000000000,55.5],[1700086400000,57.25]],"total_volumes":[[1700000000000,1000]]}`))
	})

	pts, err := c.History(context.Background(), "SOL", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(pts))
	}
	if pts[0].Volume != 1000 || pts[1].Volume != 0 {
		t.Errorf("unexpected volumes %+v", pts)
	}
	if !pts[1].Time.Equal(time.UnixMilli(1700086400000)) {
		t.Errorf("unexpected time %v", pts[1].Time)
	}
}
