// Package news scrapes real headlines for an asset and has the news analyst score them.
package news

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/marketdata"
	"cognito-terminal/internal/oracle"
	"cognito-terminal/internal/store"
	"cognito-terminal/internal/types"
)

const (
	positiveFrom = 60
	negativeFrom = 40
)

// Service provides scored news coverage with caching
type Service struct {
	scraper  *Scraper
	oracle   *oracle.Oracle
	cache    *sentimentCache
	limit    int
	disabled bool
	now      func() time.Time
}

type sentimentCache struct {
	mu   sync.RWMutex
	data map[string]cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	sentiment types.NewsSentiment
	timestamp time.Time
}

func newSentimentCache(ttl time.Duration) *sentimentCache {
	return &sentimentCache{data: make(map[string]cacheEntry), ttl: ttl}
}

func (c *sentimentCache) get(key string, now time.Time) (types.NewsSentiment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.data[key]
	if !ok || now.Sub(entry.timestamp) > c.ttl {
		return types.NewsSentiment{}, false
	}
	return entry.sentiment, true
}

// set stores a result and drops expired entries; a non-positive ttl disables caching.
func (c *sentimentCache) set(key string, s types.NewsSentiment, now time.Time) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.data {
		if now.Sub(e.timestamp) > c.ttl {
			delete(c.data, k)
		}
	}
	c.data[key] = cacheEntry{sentiment: s, timestamp: now}
}

func NewService(cfg *store.Config, orc *oracle.Oracle) *Service {
	return &Service{
		scraper:  NewScraper(cfg.News.Sources, cfg.News.Timeout),
		oracle:   orc,
		cache:    newSentimentCache(cfg.News.CacheTTL),
		limit:    cfg.News.MaxArticles,
		disabled: cfg.News.Disabled,
		now:      time.Now,
	}
}

// Sentiment returns cached or freshly scraped coverage for asset. A scraping
// failure is returned to the caller; an unreachable oracle degrades to a neutral score.
func (s *Service) Sentiment(ctx context.Context, asset string) (types.NewsSentiment, error) {
	symbol := strings.ToUpper(strings.TrimSpace(asset))
	coin := marketdata.ResolveCoinID(asset)
	now := s.now()

	if s.disabled {
		return neutral(symbol, "News scraping disabled", now), nil
	}
	if cached, ok := s.cache.get(coin, now); ok {
		logger.Debug(ctx, "Using cached news sentiment", "symbol", symbol)
		return cached, nil
	}

	articles, err := s.scraper.Scrape(ctx, symbol, coin, s.limit)
	if err != nil {
		return types.NewsSentiment{}, fmt.Errorf("scrape news for %s: %w", symbol, err)
	}

	var out types.NewsSentiment
	if len(articles) == 0 {
		out = neutral(symbol, "No recent coverage found.", now)
	} else {
		titles := make([]string, len(articles))
		for i, a := range articles {
			titles[i] = a.Title
		}
		score := s.oracle.Score(ctx, oracle.RoleNews, oracle.HeadlinesContext(symbol, titles))
		out = types.NewsSentiment{
			Symbol:    symbol,
			Score:     score,
			Label:     label(score),
			Summary:   fmt.Sprintf("%d headlines scored %d/100.", len(articles), score),
			Articles:  articles,
			Timestamp: now.Unix(),
		}
	}

	s.cache.set(coin, out, now)
	return out, nil
}

func neutral(symbol, summary string, now time.Time) types.NewsSentiment {
	return types.NewsSentiment{
		Symbol:    symbol,
		Score:     oracle.NeutralScore,
		Label:     "NEUTRAL",
		Summary:   summary,
		Articles:  []types.NewsArticle{},
		Timestamp: now.Unix(),
	}
}

func label(score int) string {
	switch {
	case score >= positiveFrom:
		return "POSITIVE"
	case score <= negativeFrom:
		return "NEGATIVE"
	default:
		return "NEUTRAL"
	}
}
