package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/store"
	"cognito-terminal/internal/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Scraper collects headlines from listing pages described by store.NewsSource.
type Scraper struct {
	sources []store.NewsSource
	timeout time.Duration
}

func NewScraper(sources []store.NewsSource, timeout time.Duration) *Scraper {
	if len(sources) == 0 {
		sources = DefaultSources()
	}
	return &Scraper{sources: sources, timeout: timeout}
}

// DefaultSources are used when the config names none.
func DefaultSources() []store.NewsSource {
	return []store.NewsSource{
		{
			Name:        "Cointelegraph",
			BaseURL:     "https://cointelegraph.com",
			SearchPath:  "/tags/{coin}",
			Item:        "article.post-card-inline",
			Title:       ".post-card-inline__title",
			Link:        "a.post-card-inline__title-link",
			PublishedAt: "time",
		},
	}
}

// Scrape returns up to limit unique headlines across all sources. It fails only
// when every source fails.
func (s *Scraper) Scrape(ctx context.Context, symbol, coin string, limit int) ([]types.NewsArticle, error) {
	logger.Info(ctx, "Starting news scraping", "symbol", symbol, "sources", len(s.sources))

	var (
		out     []types.NewsArticle
		seen    = map[string]bool{}
		lastErr error
		failed  int
	)
	for _, src := range s.sources {
		if len(out) >= limit {
			break
		}
		articles, err := s.scrapeSource(ctx, src, symbol, coin, limit-len(out))
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape source", err, "source", src.Name, "symbol", symbol)
			lastErr = err
			failed++
			continue
		}
		for _, a := range articles {
			key := strings.ToLower(a.Title)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, a)
		}
	}
	if failed == len(s.sources) && lastErr != nil {
		return nil, lastErr
	}

	logger.Info(ctx, "News scraping completed", "symbol", symbol, "articles", len(out))
	return out, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, src store.NewsSource, symbol, coin string, limit int) ([]types.NewsArticle, error) {
	var articles []types.NewsArticle

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(false),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	c.OnHTML(src.Item, func(e *colly.HTMLElement) {
		if len(articles) >= limit {
			return
		}
		title := firstText(e.DOM, src.Title)
		if title == "" {
			return
		}
		linkSel := src.Link
		if linkSel == "" {
			linkSel = "a"
		}
		link := firstAttr(e.DOM, linkSel, "href")
		if link == "" {
			return
		}

		a := types.NewsArticle{
			Title:  title,
			URL:    e.Request.AbsoluteURL(link),
			Source: src.Name,
			Symbol: symbol,
		}
		if src.PublishedAt != "" {
			a.PublishedAt = publishedAt(e.DOM.Find(src.PublishedAt).First())
		}
		articles = append(articles, a)
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Debug(ctx, "Scraping error", "source", src.Name, "url", r.Request.URL.String(), "status", r.StatusCode)
	})

	path := strings.NewReplacer("{symbol}", symbol, "{coin}", coin).Replace(src.SearchPath)
	target := strings.TrimRight(src.BaseURL, "/") + path
	if err := c.Visit(target); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", target, err)
	}
	c.Wait()
	return articles, nil
}

func firstText(sel *goquery.Selection, selector string) string {
	return strings.Join(strings.Fields(sel.Find(selector).First().Text()), " ")
}

func firstAttr(sel *goquery.Selection, selector, attr string) string {
	match := sel.Find(selector).First()
	if match.Length() == 0 && sel.Is(selector) {
		match = sel
	}
	v, _ := match.Attr(attr)
	return strings.TrimSpace(v)
}

// publishedAt prefers a machine-readable datetime attribute over display text.
func publishedAt(sel *goquery.Selection) string {
	if v, ok := sel.Attr("datetime"); ok && v != "" {
		return v
	}
	return strings.TrimSpace(sel.Text())
}
