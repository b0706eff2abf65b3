package chart

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/display"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

// ShowLineChart renders the closing price over time to a PNG at path and
// hands it to viewer. An absent or empty series is logged and skipped
// without rendering anything. The returned error covers render and display failures only.
func ShowLineChart(price *model.PriceSeries, title, path string, viewer display.Viewer) error {
	if price.Empty() {
		log.Warn().Str("component", "chart").Msgf("no data available to create graph for %s", title)
		return nil
	}

	p, err := newLinePlot(price, title)
	if err != nil {
		return err
	}
	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save line chart: %w", err)
	}
	log.Debug().Str("component", "chart").Str("path", path).Msg("line chart rendered")

	if viewer == nil {
		return nil
	}
	return viewer.Show(path)
}

func newLinePlot(price *model.PriceSeries, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = DateAxisTitle
	p.Y.Label.Text = PriceAxisTitle

	p.X.Tick.Marker = plot.TimeTicks{Format: dateLayout}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, price.Len())
	for i, b := range price.Bars {
		pts[i].X = float64(b.Date.Unix())
		pts[i].Y = b.Close
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("build line: %w", err)
	}
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)
	return p, nil
}
