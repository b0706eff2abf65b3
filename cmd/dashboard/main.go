package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/chart"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/collector"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/config"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/display"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/notifier"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/pipeline"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/recorder"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/scheduler"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Fetch stock price and revenue history and render comparison dashboards",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx, cancel := signalContext()
		defer cancel()

		p, closeFn := buildPipeline(cfg)
		defer closeFn()
		p.Run(ctx)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run once, then refresh the dashboards on the configured cron schedule",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx, cancel := signalContext()
		defer cancel()

		p, closeFn := buildPipeline(cfg)
		defer closeFn()

		sched := scheduler.NewScheduler(ctx, p)
		if err := sched.Register(cfg.Schedule.Cron); err != nil {
			log.Fatal().Err(err).Msg("register cron task")
		}
		sched.RunNow()
		sched.Start()
		defer sched.Stop()

		log.Info().Str("cron", cfg.Schedule.Cron).Msg("watching, press Ctrl+C to stop")
		<-ctx.Done()
		log.Info().Msg("shutdown signal received, stopping")
	},
}

func init() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultPath, "path to the YAML config file")
	rootCmd.AddCommand(watchCmd)
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)
	return cfg
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// buildPipeline wires the pipeline from cfg. The returned func releases the recorder.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, func()) {
	var provider collector.Provider
	if cfg.DataSource.BaseURL != "" {
		provider = collector.NewRESTProvider(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy,
			cfg.Timeout(), cfg.DataSource.RequestsPerSecond)
	} else {
		provider = collector.NewYahooProvider(collector.YahooOptions{
			ChartBaseURL:        cfg.DataSource.ChartBaseURL,
			FundamentalsBaseURL: cfg.DataSource.FundamentalsBaseURL,
			ProxyURL:            cfg.Proxy,
			Timeout:             cfg.Timeout(),
			RequestsPerSec:      cfg.DataSource.RequestsPerSecond,
		})
	}
	log.Info().Str("provider", provider.Name()).Msg("data source selected")

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			rec = sr
		}
	}

	opts := pipeline.Options{
		Tickers:   cfg.Tickers,
		OutputDir: cfg.OutputDir,
		LineChart: cfg.LineChartEnabled(),
		ExportCSV: cfg.Export.CSV,
		Dashboard: chart.DashboardOptions{AssetsHost: cfg.Charts.AssetsHost},
		Fetcher: collector.NewFetcher(provider, cfg.Fetch.MaxAttempts, cfg.Fetch.RetryDelay,
			cfg.DataSource.RevenuePeriod),
		Viewer:   display.New(cfg.DisplayEnabled()),
		Recorder: rec,
		Out:      os.Stdout,
	}
	if cfg.Telegram.BotToken != "" {
		opts.Notifier = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	return pipeline.New(opts), func() {
		if err := rec.Close(); err != nil {
			log.Warn().Err(err).Msg("close recorder")
		}
	}
}
