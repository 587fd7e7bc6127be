package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Simulation struct {
		Asset          string  `yaml:"asset" default:"BTC" validate:"required"`
		Cash           float64 `yaml:"cash" default:"10000" validate:"gte=0"`
		Qty            float64 `yaml:"qty" default:"0.5" validate:"gte=0"`
		Days           int     `yaml:"days" default:"10" validate:"gte=1,lte=365"`
		ParallelScores bool    `yaml:"parallel_scores"`
		PriceFloor     float64 `yaml:"price_floor" default:"0.00000001" validate:"gte=0"`
		JournalDir     string  `yaml:"journal_dir"`
		JournalKeep    int     `yaml:"journal_keep_days" default:"30" validate:"gte=0"`
	} `yaml:"simulation"`
	Oracle struct {
		Provider    string        `yaml:"provider" default:"OLLAMA"`
		Model       string        `yaml:"model" default:"llama3"`
		Endpoint    string        `yaml:"endpoint"`
		Timeout     time.Duration `yaml:"timeout" default:"60s" validate:"gt=0"`
		MaxTokens   int           `yaml:"max_tokens" default:"256" validate:"gt=0"`
		Temperature float32       `yaml:"temperature" default:"0.7" validate:"gte=0,lte=2"`
		System      string        `yaml:"system"`
	} `yaml:"oracle"`
	Market struct {
		BaseURL  string        `yaml:"base_url" default:"https://api.coingecko.com/api/v3" validate:"required,url"`
		Timeout  time.Duration `yaml:"timeout" default:"5s" validate:"gt=0"`
		CacheTTL time.Duration `yaml:"cache_ttl" default:"30s"`
	} `yaml:"market"`
	News struct {
		Disabled    bool          `yaml:"disabled"`
		Timeout     time.Duration `yaml:"timeout" default:"10s" validate:"gt=0"`
		MaxArticles int           `yaml:"max_articles" default:"10" validate:"gte=1,lte=50"`
		CacheTTL    time.Duration `yaml:"cache_ttl" default:"15m"`
		Sources     []NewsSource  `yaml:"sources" validate:"dive"`
	} `yaml:"news"`
	History struct {
		Backend   string `yaml:"backend" default:"FILE"`
		Path      string `yaml:"path" default:"cognito_history.json"`
		RedisAddr string `yaml:"redis_addr" default:"localhost:6379"`
		RedisDB   int    `yaml:"redis_db"`
		RedisKey  string `yaml:"redis_key" default:"cognito:history"`
	} `yaml:"history"`
	Server struct {
		Addr            string        `yaml:"addr" default:":8080"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
}

// NewsSource describes one scrapeable listing page. SearchPath may contain
// {symbol} (upper-case ticker) and {coin} (CoinGecko id) placeholders.
type NewsSource struct {
	Name        string `yaml:"name" validate:"required"`
	BaseURL     string `yaml:"base_url" validate:"required,url"`
	SearchPath  string `yaml:"search_path"`
	Item        string `yaml:"item" validate:"required"`
	Title       string `yaml:"title" validate:"required"`
	Link        string `yaml:"link"`
	PublishedAt string `yaml:"published_at"`
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	switch c.Oracle.Provider {
	case "OLLAMA", "OPENAI", "CLAUDE", "NOOP":
	default:
		return fmt.Errorf("invalid oracle.provider '%s': must be OLLAMA, OPENAI, CLAUDE or NOOP", c.Oracle.Provider)
	}
	switch c.History.Backend {
	case "FILE":
		if c.History.Path == "" {
			return errors.New("history.path cannot be empty with FILE backend")
		}
	case "REDIS":
		if c.History.RedisAddr == "" {
			return errors.New("history.redis_addr cannot be empty with REDIS backend")
		}
	default:
		return fmt.Errorf("invalid history.backend '%s': must be FILE or REDIS", c.History.Backend)
	}
	return nil
}

// Default returns a configuration populated only from struct defaults.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(err)
	}
	return &c
}

// LoadConfig applies defaults, overlays path and environment overrides, and validates.
// Values set in the file win over defaults, including explicit zeros.
// A missing file is not an error: the defaults are used.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}
	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ORACLE_PROVIDER"); v != "" {
		c.Oracle.Provider = v
	}
	if v := os.Getenv("ORACLE_MODEL"); v != "" {
		c.Oracle.Model = v
	}
	c.Oracle.Provider = strings.ToUpper(strings.TrimSpace(c.Oracle.Provider))
	if v := os.Getenv("OLLAMA_HOST"); v != "" && c.Oracle.Provider == "OLLAMA" {
		c.Oracle.Endpoint = v
	}
	if v := os.Getenv("HISTORY_BACKEND"); v != "" {
		c.History.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.History.RedisAddr = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	c.Oracle.Provider = strings.ToUpper(strings.TrimSpace(c.Oracle.Provider))
	c.History.Backend = strings.ToUpper(strings.TrimSpace(c.History.Backend))
}
