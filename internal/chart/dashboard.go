// Package chart renders price and revenue series into dashboards and line charts.
package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog/log"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

const (
	dateLayout        = "2006-01-02"
	PriceAxisTitle    = "Stock Price ($)"
	RevenueAxisTitle  = "Revenue ($)"
	DateAxisTitle     = "Date"
	priceSeriesName   = "Stock Price"
	revenueSeriesName = "Revenue"
)

// DashboardOptions controls page-level rendering. Empty fields use go-echarts defaults.
type DashboardOptions struct {
	AssetsHost string
	Width      string
	Height     string
}

// Dashboard is an interactive dual y-axis chart: closing price as a line on
// the left axis, revenue as bars on the right axis, sharing a date x-axis.
type Dashboard struct {
	Title string
	chart *charts.Line
}

// BuildDashboard combines a price and a revenue series into a Dashboard.
// It returns nil when either series is absent or empty.
func BuildDashboard(price *model.PriceSeries, revenue *model.RevenueSeries, title string, o DashboardOptions) *Dashboard {
	if price.Empty() || revenue.Empty() {
		log.Warn().Str("component", "chart").Msgf("cannot create dashboard for %s due to missing data", title)
		return nil
	}
	if o.Width == "" {
		o.Width = "1200px"
	}
	if o.Height == "" {
		o.Height = "600px"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  title,
			Width:      o.Width,
			Height:     o.Height,
			AssetsHost: o.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Name: DateAxisTitle, Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: PriceAxisTitle, Type: "value"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	line.ExtendYAxis(opts.YAxis{Name: RevenueAxisTitle, Type: "value"})

	priceData := make([]opts.LineData, 0, price.Len())
	for _, b := range price.Bars {
		priceData = append(priceData, opts.LineData{Value: []interface{}{b.Date.Format(dateLayout), b.Close}})
	}
	line.AddSeries(priceSeriesName, priceData,
		charts.WithLineStyleOpts(opts.LineStyle{Width: 1}),
	)

	revenueData := make([]opts.BarData, 0, revenue.Len())
	for _, p := range revenue.Points {
		revenueData = append(revenueData, opts.BarData{Value: []interface{}{p.Date.Format(dateLayout), p.Revenue.InexactFloat64()}})
	}
	bar := charts.NewBar()
	bar.AddSeries(revenueSeriesName, revenueData,
		charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}),
	)
	line.Overlap(bar)

	return &Dashboard{Title: title, chart: line}
}

// Render writes the dashboard as a standalone HTML page.
func (d *Dashboard) Render(w io.Writer) error {
	return d.chart.Render(w)
}

// WriteHTML renders the dashboard to path, replacing any existing file.
// It returns the number of bytes written.
func (d *Dashboard) WriteHTML(path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create dashboard file: %w", err)
	}
	if err := d.Render(f); err != nil {
		f.Close()
		return 0, fmt.Errorf("render dashboard: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("stat dashboard file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close dashboard file: %w", err)
	}
	return info.Size(), nil
}
