package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cognito-terminal/internal/api"
	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/store"
	"cognito-terminal/internal/types"
)

// ErrUnknownAsset is returned when the API has no price for the resolved coin id.
var ErrUnknownAsset = errors.New("unknown asset")

// tickerIDs maps the tickers offered by the simulator to CoinGecko coin ids.
var tickerIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"AVAX": "avalanche-2",
	"XRP":  "ripple",
	"DOGE": "dogecoin",
}

// CoinGecko is a best-effort client of the public CoinGecko REST API.
type CoinGecko struct {
	client *api.Client
	cache  *ttlCache
	ttl    time.Duration
}

var _ interfaces.MarketData = (*CoinGecko)(nil)

func NewCoinGecko(cfg *store.Config) *CoinGecko {
	return &CoinGecko{
		client: api.NewClient(
			api.WithBaseURL(strings.TrimRight(cfg.Market.BaseURL, "/")),
			api.WithTimeout(cfg.Market.Timeout),
			api.WithLogging(true),
		),
		cache: newTTLCache(),
		ttl:   cfg.Market.CacheTTL,
	}
}

// ResolveCoinID turns user input into a CoinGecko id.
// Accepts a ticker ("BTC"), an id ("bitcoin") or the "Name (id)" form used by asset pickers.
func ResolveCoinID(input string) string {
	q := strings.TrimSpace(input)
	if open := strings.Index(q, "("); open >= 0 {
		if close := strings.Index(q[open:], ")"); close > 0 {
			return strings.ToLower(strings.TrimSpace(q[open+1 : open+close]))
		}
	}
	if id, ok := tickerIDs[strings.ToUpper(q)]; ok {
		return id
	}
	return strings.ToLower(q)
}

// KnownTicker reports the listed ticker for input (a ticker, coin id or
// "Name (id)"), or false when the asset is not one the simulator offers.
func KnownTicker(input string) (string, bool) {
	id := ResolveCoinID(input)
	for ticker, tid := range tickerIDs {
		if tid == id {
			return ticker, true
		}
	}
	return "", false
}

type simplePrice map[string]map[string]float64

// StartPrice returns the current USD price of symbol.
func (c *CoinGecko) StartPrice(ctx context.Context, symbol string) (float64, error) {
	q, err := c.Quote(ctx, symbol)
	if err != nil {
		return 0, err
	}
	return q.Price, nil
}

// Quote returns price, 24h volume, 24h change and market cap for asset.
func (c *CoinGecko) Quote(ctx context.Context, asset string) (types.Quote, error) {
	id := ResolveCoinID(asset)
	if id == "" {
		return types.Quote{}, fmt.Errorf("%w: empty asset", ErrUnknownAsset)
	}
	if v, ok := c.cache.get("quote:" + id); ok {
		return v.(types.Quote), nil
	}

	resp, err := c.client.GET(ctx, "/simple/price", url.Values{
		"ids":                 {id},
		"vs_currencies":       {"usd"},
		"include_24hr_vol":    {"true"},
		"include_24hr_change": {"true"},
		"include_market_cap":  {"true"},
	}, api.BrowserHeaders())
	if err != nil {
		return types.Quote{}, fmt.Errorf("coingecko price %s: %w", id, err)
	}

	var data simplePrice
	if err := resp.ParseJSON(&data); err != nil {
		return types.Quote{}, fmt.Errorf("coingecko price %s: %w", id, err)
	}
	d, ok := data[id]
	if !ok {
		return types.Quote{}, fmt.Errorf("%w: %q", ErrUnknownAsset, id)
	}
	price, ok := d["usd"]
	if !ok {
		return types.Quote{}, fmt.Errorf("%w: %q has no usd price", ErrUnknownAsset, id)
	}

	q := types.Quote{
		ID:        id,
		Price:     price,
		Volume24h: d["usd_24h_vol"],
		Change24h: d["usd_24h_change"],
		MarketCap: d["usd_market_cap"],
	}
	c.cache.set("quote:"+id, q, c.ttl)
	return q, nil
}

// Scanner returns the top limit markets by capitalisation.
func (c *CoinGecko) Scanner(ctx context.Context, limit int) ([]types.MarketRow, error) {
	if limit <= 0 {
		limit = 50
	}
	key := "scanner:" + strconv.Itoa(limit)
	if v, ok := c.cache.get(key); ok {
		return v.([]types.MarketRow), nil
	}

	resp, err := c.client.GET(ctx, "/coins/markets", url.Values{
		"vs_currency":             {"usd"},
		"order":                   {"market_cap_desc"},
		"per_page":                {strconv.Itoa(limit)},
		"page":                    {"1"},
		"price_change_percentage": {"24h"},
	}, api.BrowserHeaders())
	if err != nil {
		return nil, fmt.Errorf("coingecko markets: %w", err)
	}

	var rows []types.MarketRow
	if err := resp.ParseJSON(&rows); err != nil {
		return nil, fmt.Errorf("coingecko markets: %w", err)
	}
	c.cache.set(key, rows, c.ttl)
	return rows, nil
}

type marketChart struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

// History returns price and volume samples covering the last days days.
func (c *CoinGecko) History(ctx context.Context, asset string, days int) ([]types.PricePoint, error) {
	id := ResolveCoinID(asset)
	if id == "" {
		return nil, fmt.Errorf("%w: empty asset", ErrUnknownAsset)
	}
	if days <= 0 {
		days = 30
	}
	key := "history:" + id + ":" + strconv.Itoa(days)
	if v, ok := c.cache.get(key); ok {
		return v.([]types.PricePoint), nil
	}

	resp, err := c.client.GET(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", url.Values{
		"vs_currency": {"usd"},
		"days":        {strconv.Itoa(days)},
	}, api.BrowserHeaders())
	if err != nil {
		return nil, fmt.Errorf("coingecko history %s: %w", id, err)
	}

	var chart marketChart
	if err := resp.ParseJSON(&chart); err != nil {
		return nil, fmt.Errorf("coingecko history %s: %w", id, err)
	}

	points := make([]types.PricePoint, 0, len(chart.Prices))
	for i, p := range chart.Prices {
		pt := types.PricePoint{Time: time.UnixMilli(int64(p[0])).UTC(), Price: p[1]}
		if i < len(chart.TotalVolumes) {
			pt.Volume = chart.TotalVolumes[i][1]
		}
		points = append(points, pt)
	}
	c.cache.set(key, points, c.ttl)
	return points, nil
}
