// Package pipeline runs the fetch, print, chart and persist sequence for every configured ticker.
package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/calculator"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/chart"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/collector"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/config"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/display"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/export"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/recorder"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/report"
)

const previewRows = 5

// Notifier delivers a run summary somewhere outside the process.
type Notifier interface {
	Notify(ctx context.Context, summary *model.RunSummary) error
}

// Options configures a Pipeline.
type Options struct {
	Tickers   []config.Ticker
	OutputDir string
	LineChart bool
	ExportCSV bool
	Dashboard chart.DashboardOptions
	Fetcher   *collector.Fetcher
	Viewer    display.Viewer
	Recorder  recorder.Recorder
	Notifier  Notifier // optional
	Out       io.Writer
}

// Pipeline fetches data for each ticker and renders its charts. A run never
// aborts: missing data skips the dependent steps for that ticker only.
type Pipeline struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a Pipeline, filling unset collaborators with no-op implementations.
func New(opts Options) *Pipeline {
	if opts.OutputDir == "" {
		opts.OutputDir = "dashboards"
	}
	if opts.Viewer == nil {
		opts.Viewer = display.NoopViewer{}
	}
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Pipeline{
		opts:   opts,
		logger: log.With().Str("component", "pipeline").Logger(),
	}
}

// tickerData carries one ticker's fetch results between stages.
type tickerData struct {
	ticker  config.Ticker
	price   model.PriceResult
	revenue model.RevenueResult
	outcome *model.TickerOutcome
}

// Run executes the full sequence once and returns what it produced.
func (p *Pipeline) Run(ctx context.Context) *model.RunSummary {
	summary := &model.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		OutputDir: p.opts.OutputDir,
		Tickers:   make([]model.TickerOutcome, len(p.opts.Tickers)),
	}
	logger := p.logger.With().Str("run_id", summary.RunID).Logger()

	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		logger.Error().Err(err).Str("dir", p.opts.OutputDir).Msg("create output directory failed")
	}

	data := make([]*tickerData, len(p.opts.Tickers))
	for i, t := range p.opts.Tickers {
		summary.Tickers[i] = model.TickerOutcome{Symbol: t.Symbol, Name: t.Name}
		data[i] = p.fetch(ctx, logger, summary.RunID, t, &summary.Tickers[i])
	}

	for _, d := range data {
		if !d.price.Present() {
			continue
		}
		p.dashboard(logger, summary.RunID, d)
	}

	if p.opts.LineChart && len(data) > 0 && data[0].price.Present() {
		p.lineChart(logger, summary.RunID, data[0])
	}

	summary.FinishedAt = time.Now()
	if err := p.opts.Recorder.RecordRun(summary); err != nil {
		logger.Error().Err(err).Msg("record run")
	}
	if p.opts.Notifier != nil {
		if err := p.opts.Notifier.Notify(ctx, summary); err != nil {
			logger.Error().Err(err).Msg("send run summary")
		}
	}

	logger.Info().Int("dashboards", summary.Dashboards()).
		Msgf("process completed, check the %q directory for saved HTML files", p.opts.OutputDir)
	return summary
}

func (p *Pipeline) fetch(ctx context.Context, logger zerolog.Logger, runID string, t config.Ticker, out *model.TickerOutcome) *tickerData {
	d := &tickerData{ticker: t, outcome: out}

	logger.Info().Str("ticker", t.Symbol).Msgf("fetching %s stock data", t.Name)
	d.price = p.opts.Fetcher.FetchPriceSeries(ctx, t.Symbol)
	out.PriceStatus = d.price.Status
	out.PriceAttempts = d.price.Attempts
	out.PriceRows = d.price.Series.Len()
	p.recordFetch(logger, runID, t.Symbol, "price", d.price.Status, d.price.Attempts, d.price.Series.Len(), d.price.Err)
	if d.price.Present() {
		report.PrintPriceHead(p.opts.Out, t.Name, d.price.Series, previewRows)
		if sum, err := calculator.Summarize(d.price.Series); err == nil {
			report.PrintPriceSummary(p.opts.Out, t.Name, sum)
		}
		if p.opts.ExportCSV {
			path := filepath.Join(p.opts.OutputDir, t.Slug+"_prices.csv")
			if err := export.WritePrices(path, d.price.Series); err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("export prices")
			}
		}
	}

	logger.Info().Str("ticker", t.Symbol).Msgf("fetching %s revenue data", t.Name)
	d.revenue = p.opts.Fetcher.FetchRevenueSeries(ctx, t.Symbol)
	out.RevenueStatus = d.revenue.Status
	out.RevenueRows = d.revenue.Series.Len()
	p.recordFetch(logger, runID, t.Symbol, "revenue", d.revenue.Status, d.revenue.Attempts, d.revenue.Series.Len(), d.revenue.Err)
	if d.revenue.Present() {
		report.PrintRevenueTail(p.opts.Out, t.Name, d.revenue.Series, previewRows)
		if p.opts.ExportCSV {
			path := filepath.Join(p.opts.OutputDir, t.Slug+"_revenue.csv")
			if err := export.WriteRevenue(path, d.revenue.Series); err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("export revenue")
			}
		}
	}
	return d
}

func (p *Pipeline) dashboard(logger zerolog.Logger, runID string, d *tickerData) {
	logger.Info().Str("ticker", d.ticker.Symbol).Msgf("creating %s dashboard", d.ticker.Name)
	dash := chart.BuildDashboard(d.price.Series, d.revenue.Series, d.ticker.DashboardTitle(), p.opts.Dashboard)
	if dash == nil {
		return
	}

	path := filepath.Join(p.opts.OutputDir, d.ticker.Slug+"_dashboard.html")
	n, err := dash.WriteHTML(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("write dashboard")
		return
	}
	d.outcome.DashboardPath = path
	logger.Info().Str("path", path).Int64("bytes", n).Msg("dashboard saved")

	if err := p.opts.Recorder.RecordChart(&recorder.ChartEvent{
		RunID: runID, Ticker: d.ticker.Symbol, Kind: "dashboard", Path: path, Bytes: n,
	}); err != nil {
		logger.Error().Err(err).Msg("record chart")
	}
	if err := p.opts.Viewer.Show(path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("display dashboard")
	}
}

func (p *Pipeline) lineChart(logger zerolog.Logger, runID string, d *tickerData) {
	path := filepath.Join(p.opts.OutputDir, d.ticker.Slug+"_price.png")
	if err := chart.ShowLineChart(d.price.Series, d.ticker.LineChartTitle(), path, p.opts.Viewer); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("line chart")
	}

	info, err := os.Stat(path)
	if err != nil {
		return
	}
	d.outcome.LineChartPath = path
	if err := p.opts.Recorder.RecordChart(&recorder.ChartEvent{
		RunID: runID, Ticker: d.ticker.Symbol, Kind: "line", Path: path, Bytes: info.Size(),
	}); err != nil {
		logger.Error().Err(err).Msg("record chart")
	}
}

func (p *Pipeline) recordFetch(logger zerolog.Logger, runID, ticker, kind string, status model.FetchStatus, attempts, rows int, fetchErr error) {
	evt := &recorder.FetchEvent{
		RunID: runID, Ticker: ticker, Kind: kind, Status: status, Attempts: attempts, Rows: rows,
	}
	if fetchErr != nil {
		evt.Error = fetchErr.Error()
	}
	if err := p.opts.Recorder.RecordFetch(evt); err != nil {
		logger.Error().Err(err).Msg("record fetch")
	}
}
