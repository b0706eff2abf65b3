package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Ticker identifies one security to chart.
type Ticker struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
	Slug   string `yaml:"slug"` // file name prefix for outputs
}

// DashboardTitle is the title of the price vs revenue dashboard.
func (t Ticker) DashboardTitle() string {
	return t.Name + " Stock Price vs Revenue"
}

// LineChartTitle is the title of the closing price line chart.
func (t Ticker) LineChartTitle() string {
	return t.Name + " Stock Price Over Time"
}

// Config holds all application configuration.
type Config struct {
	Tickers   []Ticker `yaml:"tickers"`
	OutputDir string   `yaml:"output_dir"`
	LogLevel  string   `yaml:"log_level"`
	Proxy     string   `yaml:"proxy"`

	DataSource struct {
		BaseURL             string  `yaml:"base_url"`
		APIKey              string  `yaml:"api_key"`
		ChartBaseURL        string  `yaml:"chart_base_url"`
		FundamentalsBaseURL string  `yaml:"fundamentals_base_url"`
		RevenuePeriod       string  `yaml:"revenue_period"`
		RequestsPerSecond   float64 `yaml:"requests_per_second"`
		TimeoutSeconds      int     `yaml:"timeout_seconds"`
	} `yaml:"data_source"`
	Fetch struct {
		MaxAttempts int           `yaml:"max_attempts"`
		RetryDelay  time.Duration `yaml:"retry_delay"`
	} `yaml:"fetch"`
	Display struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"display"`
	Charts struct {
		LineChart  *bool  `yaml:"line_chart"`
		AssetsHost string `yaml:"assets_host"`
	} `yaml:"charts"`
	Export struct {
		CSV bool `yaml:"csv"`
	} `yaml:"export"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
}

// DefaultTickers are charted when the config names none.
func DefaultTickers() []Ticker {
	return []Ticker{
		{Symbol: "TSLA", Name: "Tesla", Slug: "tesla"},
		{Symbol: "GME", Name: "GameStop", Slug: "gamestop"},
	}
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
// A missing file is not an error; defaults reproduce the stock TSLA/GME run.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	// Environment variable overrides
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("REVENUE_PERIOD"); v != "" {
		cfg.DataSource.RevenuePeriod = v
	}
	if v, ok := envBool("DISPLAY_CHARTS"); ok {
		cfg.Display.Enabled = &v
	}
	if v, ok := envBool("EXPORT_CSV"); ok {
		cfg.Export.CSV = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Tickers) == 0 {
		c.Tickers = DefaultTickers()
	}
	for i := range c.Tickers {
		t := &c.Tickers[i]
		t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
		if t.Name == "" {
			t.Name = t.Symbol
		}
		if t.Slug == "" {
			t.Slug = strings.ToLower(t.Symbol)
		}
	}
	if c.OutputDir == "" {
		c.OutputDir = "dashboards"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DataSource.ChartBaseURL == "" {
		c.DataSource.ChartBaseURL = "https://query1.finance.yahoo.com"
	}
	if c.DataSource.FundamentalsBaseURL == "" {
		c.DataSource.FundamentalsBaseURL = "https://query2.finance.yahoo.com"
	}
	if c.DataSource.RevenuePeriod == "" {
		c.DataSource.RevenuePeriod = "annual"
	}
	if c.DataSource.RequestsPerSecond == 0 {
		c.DataSource.RequestsPerSecond = 2
	}
	if c.DataSource.TimeoutSeconds == 0 {
		c.DataSource.TimeoutSeconds = 30
	}
	if c.Fetch.MaxAttempts == 0 {
		c.Fetch.MaxAttempts = 3
	}
	if c.Display.Enabled == nil {
		enabled := true
		c.Display.Enabled = &enabled
	}
	if c.Charts.LineChart == nil {
		enabled := true
		c.Charts.LineChart = &enabled
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 30 17 * * 1-5"
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("at least one ticker is required")
	}
	seen := make(map[string]bool, len(c.Tickers))
	for _, t := range c.Tickers {
		if t.Symbol == "" {
			return fmt.Errorf("tickers: symbol is required")
		}
		if seen[t.Slug] {
			return fmt.Errorf("tickers: duplicate slug %q", t.Slug)
		}
		seen[t.Slug] = true
	}
	if c.Fetch.MaxAttempts < 1 {
		return fmt.Errorf("fetch.max_attempts must be at least 1")
	}
	if c.Fetch.RetryDelay < 0 {
		return fmt.Errorf("fetch.retry_delay must not be negative")
	}
	switch c.DataSource.RevenuePeriod {
	case "annual", "quarterly":
	default:
		return fmt.Errorf("data_source.revenue_period must be annual or quarterly, got %q", c.DataSource.RevenuePeriod)
	}
	if c.DataSource.RequestsPerSecond < 0 {
		return fmt.Errorf("data_source.requests_per_second must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Proxy != "" {
		u, err := url.Parse(c.Proxy)
		if err != nil {
			return fmt.Errorf("proxy: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("proxy %q must be an absolute URL such as http://host:port", c.Proxy)
		}
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// DisplayEnabled reports whether rendered charts should be opened in a viewer.
func (c *Config) DisplayEnabled() bool {
	return c.Display.Enabled == nil || *c.Display.Enabled
}

// LineChartEnabled reports whether the first ticker gets a closing price line chart.
func (c *Config) LineChartEnabled() bool {
	return c.Charts.LineChart == nil || *c.Charts.LineChart
}

// Timeout is the per-request HTTP timeout for the data provider.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.DataSource.TimeoutSeconds) * time.Second
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring non-boolean environment value")
		return false, false
	}
	return b, true
}
