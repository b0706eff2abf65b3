package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/collector"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/config"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

type recordingViewer struct {
	shown []string
}

func (v *recordingViewer) Show(path string) error {
	v.shown = append(v.shown, path)
	return nil
}

type recordingNotifier struct {
	summaries []*model.RunSummary
}

func (n *recordingNotifier) Notify(_ context.Context, s *model.RunSummary) error {
	n.summaries = append(n.summaries, s)
	return nil
}

var testEnd = time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

// newTestPipeline wires a mock provider with full TSLA data and nothing for GME.
func newTestPipeline(t *testing.T, lineChart bool) (*Pipeline, *collector.MockProvider, *recordingViewer, string) {
	t.Helper()
	mp := collector.NewMockProvider()
	mp.Prices["TSLA"] = collector.GenerateMockBars(200, 400, testEnd)
	mp.Revenue["TSLA"] = collector.GenerateMockRevenue(30_000_000_000, 4, 2023)

	dir := filepath.Join(t.TempDir(), "dashboards")
	viewer := &recordingViewer{}
	p := New(Options{
		Tickers:   config.DefaultTickers(),
		OutputDir: dir,
		LineChart: lineChart,
		Fetcher:   collector.NewFetcher(mp, 3, 0, "annual"),
		Viewer:    viewer,
		Out:       &bytes.Buffer{},
	})
	return p, mp, viewer, dir
}

func TestRun_TeslaDashboardCreated(t *testing.T) {
	p, _, viewer, dir := newTestPipeline(t, false)

	summary := p.Run(context.Background())

	path := filepath.Join(dir, "tesla_dashboard.html")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	require.Len(t, summary.Tickers, 2)
	assert.Equal(t, path, summary.Tickers[0].DashboardPath)
	assert.Equal(t, model.StatusOK, summary.Tickers[0].PriceStatus)
	assert.Equal(t, 400, summary.Tickers[0].PriceRows)
	assert.Equal(t, []string{path}, viewer.shown)
}

func TestRun_GameStopEmptyPriceSkipsDashboard(t *testing.T) {
	p, mp, _, dir := newTestPipeline(t, false)

	summary := p.Run(context.Background())

	assert.Equal(t, 3, mp.PriceCalls["GME"])
	assert.Equal(t, 1, mp.RevenueCalls["GME"])
	_, err := os.Stat(filepath.Join(dir, "gamestop_dashboard.html"))
	assert.True(t, os.IsNotExist(err))

	gme := summary.Tickers[1]
	assert.Equal(t, model.StatusEmpty, gme.PriceStatus)
	assert.Equal(t, 3, gme.PriceAttempts)
	assert.Empty(t, gme.DashboardPath)
	assert.Equal(t, 1, summary.Dashboards())
}

func TestRun_MissingRevenueSkipsDashboardOnly(t *testing.T) {
	p, mp, _, dir := newTestPipeline(t, true)
	delete(mp.Revenue, "TSLA")

	summary := p.Run(context.Background())

	_, err := os.Stat(filepath.Join(dir, "tesla_dashboard.html"))
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, summary.Tickers[0].DashboardPath)
	assert.Equal(t, model.StatusEmpty, summary.Tickers[0].RevenueStatus)

	// the line chart only needs price data
	assert.Equal(t, filepath.Join(dir, "tesla_price.png"), summary.Tickers[0].LineChartPath)
}

func TestRun_LineChartForFirstTickerOnly(t *testing.T) {
	p, mp, viewer, dir := newTestPipeline(t, true)
	mp.Prices["GME"] = collector.GenerateMockBars(20, 50, testEnd)
	mp.Revenue["GME"] = collector.GenerateMockRevenue(5_000_000_000, 4, 2023)

	summary := p.Run(context.Background())

	assert.Equal(t, []string{
		filepath.Join(dir, "tesla_dashboard.html"),
		filepath.Join(dir, "gamestop_dashboard.html"),
		filepath.Join(dir, "tesla_price.png"),
	}, viewer.shown)
	assert.Empty(t, summary.Tickers[1].LineChartPath)
	_, err := os.Stat(filepath.Join(dir, "gamestop_price.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Idempotent(t *testing.T) {
	p, mp, _, dir := newTestPipeline(t, false)
	mp.Prices["GME"] = collector.GenerateMockBars(20, 50, testEnd)
	mp.Revenue["GME"] = collector.GenerateMockRevenue(5_000_000_000, 4, 2023)

	first := p.Run(context.Background())
	firstTesla, err := os.ReadFile(filepath.Join(dir, "tesla_dashboard.html"))
	require.NoError(t, err)

	second := p.Run(context.Background())
	assert.Equal(t, 2, first.Dashboards())
	assert.Equal(t, 2, second.Dashboards())
	assert.NotEqual(t, first.RunID, second.RunID)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	secondTesla, err := os.ReadFile(filepath.Join(dir, "tesla_dashboard.html"))
	require.NoError(t, err)
	assert.Equal(t, len(firstTesla), len(secondTesla))
}

func TestRun_ExportCSVAndNotify(t *testing.T) {
	p, _, _, dir := newTestPipeline(t, false)
	n := &recordingNotifier{}
	p.opts.ExportCSV = true
	p.opts.Notifier = n

	p.Run(context.Background())

	assert.FileExists(t, filepath.Join(dir, "tesla_prices.csv"))
	assert.FileExists(t, filepath.Join(dir, "tesla_revenue.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "gamestop_prices.csv"))
	require.Len(t, n.summaries, 1)
	assert.Equal(t, 1, n.summaries[0].Dashboards())
}

func TestRun_PrintsPreviewTables(t *testing.T) {
	p, _, _, _ := newTestPipeline(t, false)
	out := &bytes.Buffer{}
	p.opts.Out = out

	p.Run(context.Background())

	assert.Contains(t, out.String(), "Tesla Stock Data (First 5 rows)")
	assert.Contains(t, out.String(), "Tesla Revenue Data (Last 5 rows)")
	assert.NotContains(t, out.String(), "GameStop Stock Data")
}
