package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultTickers(), cfg.Tickers)
	assert.Equal(t, "dashboards", cfg.OutputDir)
	assert.Equal(t, 3, cfg.Fetch.MaxAttempts)
	assert.Zero(t, cfg.Fetch.RetryDelay)
	assert.Equal(t, "annual", cfg.DataSource.RevenuePeriod)
	assert.True(t, cfg.DisplayEnabled())
	assert.True(t, cfg.LineChartEnabled())
	assert.False(t, cfg.Export.CSV)
	assert.Empty(t, cfg.Database.SQLitePath)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, "Tesla Stock Price vs Revenue", cfg.Tickers[0].DashboardTitle())
	assert.Equal(t, "Tesla Stock Price Over Time", cfg.Tickers[0].LineChartTitle())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tickers:
  - symbol: aapl
    name: Apple
  - symbol: MSFT
output_dir: out
fetch:
  max_attempts: 5
  retry_delay: 250ms
display:
  enabled: false
charts:
  line_chart: false
data_source:
  revenue_period: quarterly
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []Ticker{
		{Symbol: "AAPL", Name: "Apple", Slug: "aapl"},
		{Symbol: "MSFT", Name: "MSFT", Slug: "msft"},
	}, cfg.Tickers)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 5, cfg.Fetch.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Fetch.RetryDelay)
	assert.False(t, cfg.DisplayEnabled())
	assert.False(t, cfg.LineChartEnabled())
	assert.Equal(t, "quarterly", cfg.DataSource.RevenuePeriod)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "/tmp/charts")
	t.Setenv("DISPLAY_CHARTS", "false")
	t.Setenv("EXPORT_CSV", "true")
	t.Setenv("SQLITE_PATH", "data/history.db")
	t.Setenv("REVENUE_PERIOD", "quarterly")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/charts", cfg.OutputDir)
	assert.False(t, cfg.DisplayEnabled())
	assert.True(t, cfg.Export.CSV)
	assert.Equal(t, "data/history.db", cfg.Database.SQLitePath)
	assert.Equal(t, "quarterly", cfg.DataSource.RevenuePeriod)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tickers: [\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no attempts", func(c *Config) { c.Fetch.MaxAttempts = -1 }},
		{"negative delay", func(c *Config) { c.Fetch.RetryDelay = -time.Second }},
		{"bad period", func(c *Config) { c.DataSource.RevenuePeriod = "weekly" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"duplicate slug", func(c *Config) { c.Tickers[1].Slug = c.Tickers[0].Slug }},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "token" }},
		{"empty symbol", func(c *Config) { c.Tickers[0].Symbol = "" }},
		{"proxy without scheme", func(c *Config) { c.Proxy = "proxy.local:8080" }},
		{"unparsable proxy", func(c *Config) { c.Proxy = "http://[::1" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
