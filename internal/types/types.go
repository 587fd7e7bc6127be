package types

import "time"

// Action is the trade decision taken on a simulated day.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// EngineState is the lifecycle position of a simulation engine.
type EngineState string

const (
	StateIdle         EngineState = "Idle"
	StateStepComplete EngineState = "StepComplete"
	StateFinished     EngineState = "Finished"
)

// Scores holds the four agent votes and their arithmetic mean.
type Scores struct {
	Tech  int     `json:"tech"`
	News  int     `json:"news"`
	Risk  int     `json:"risk"`
	Chaos int     `json:"chaos"`
	Avg   float64 `json:"avg"`
}

// DailyStepRecord is produced once per simulated day and never mutated afterwards.
type DailyStepRecord struct {
	Day            int     `json:"day"`
	Price          float64 `json:"price"`
	Mood           string  `json:"mood"`
	Headline       string  `json:"headline"`
	NoiseLabel     string  `json:"noise_label"`
	Move           float64 `json:"move"`
	Scores         Scores  `json:"scores"`
	Action         Action  `json:"action"`
	Reason         string  `json:"reason"`
	PortfolioValue float64 `json:"portfolio_value"`
	Cash           float64 `json:"cash"`
	HoldingsValue  float64 `json:"holdings_value"`
	PnLDay         float64 `json:"pnl_day"`
	Explanation    string  `json:"explanation"`
}

// CurvePoint is one sample of the portfolio performance curve.
type CurvePoint struct {
	Day        int     `json:"day"`
	TotalValue float64 `json:"total_value"`
	Baseline   float64 `json:"baseline"`
}

// HistoryEntry is a persisted summary of one completed simulation run.
type HistoryEntry struct {
	ID       string  `json:"ID,omitempty"`
	Date     string  `json:"Date"`
	Asset    string  `json:"Asset"`
	Duration string  `json:"Duration"`
	Initial  float64 `json:"Initial ($)"`
	Final    float64 `json:"Final ($)"`
	PnL      float64 `json:"PnL (%)"`
	Summary  string  `json:"Summary"`
}

// Quote is a real-time market snapshot for one asset.
type Quote struct {
	ID        string  `json:"id"`
	Price     float64 `json:"price"`
	Volume24h float64 `json:"volume_24h"`
	Change24h float64 `json:"change_24h"`
	MarketCap float64 `json:"market_cap"`
}

// MarketRow is one line of the market scanner.
type MarketRow struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"current_price"`
	Change24h float64 `json:"price_change_percentage_24h"`
	MarketCap float64 `json:"market_cap"`
}

// PricePoint is one sample of an asset's price history.
type PricePoint struct {
	Time   time.Time `json:"time"`
	Price  float64   `json:"price"`
	Volume float64   `json:"volume"`
}

// NewsArticle is one scraped headline about an asset.
type NewsArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
	Symbol      string `json:"symbol"`
}

// NewsSentiment is the news analyst's read on recent coverage of an asset.
type NewsSentiment struct {
	Symbol    string        `json:"symbol"`
	Score     int           `json:"score"`
	Label     string        `json:"label"`
	Summary   string        `json:"summary"`
	Articles  []NewsArticle `json:"articles"`
	Timestamp int64         `json:"timestamp"`
}
