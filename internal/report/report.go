// Package report prints fetched series to the console as tables.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/calculator"
	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

// PrintPriceHead renders the first n bars of a price series.
func PrintPriceHead(w io.Writer, name string, s *model.PriceSeries, n int) {
	t := newTable(w, fmt.Sprintf("%s Stock Data (First %d rows)", name, n))
	t.AppendHeader(table.Row{"Date", "Open", "High", "Low", "Close", "Volume"})
	for _, b := range s.Head(n) {
		t.AppendRow(table.Row{
			b.Date.Format(dateLayout),
			fmt.Sprintf("%.2f", b.Open),
			fmt.Sprintf("%.2f", b.High),
			fmt.Sprintf("%.2f", b.Low),
			fmt.Sprintf("%.2f", b.Close),
			humanize.Comma(int64(b.Volume)),
		})
	}
	t.Render()
}

// PrintRevenueTail renders the last n periods of a revenue series.
func PrintRevenueTail(w io.Writer, name string, s *model.RevenueSeries, n int) {
	t := newTable(w, fmt.Sprintf("%s Revenue Data (Last %d rows)", name, n))
	t.AppendHeader(table.Row{"Date", "Revenue", "Currency"})
	for _, p := range s.Tail(n) {
		t.AppendRow(table.Row{
			p.Date.Format(dateLayout),
			humanize.Comma(p.Revenue.IntPart()),
			p.Currency,
		})
	}
	t.Render()
}

// PrintPriceSummary renders one summary line per statistic.
func PrintPriceSummary(w io.Writer, name string, sum calculator.PriceSummary) {
	t := newTable(w, name+" Summary")
	t.AppendRow(table.Row{"rows", humanize.Comma(int64(sum.Rows))})
	t.AppendRow(table.Row{"span", sum.First.Format(dateLayout) + " .. " + sum.Last.Format(dateLayout)})
	t.AppendRow(table.Row{"last close", fmt.Sprintf("%.2f", sum.LastClose)})
	if sum.MA200 > 0 {
		t.AppendRow(table.Row{"MA200", fmt.Sprintf("%.2f", sum.MA200)})
	}
	t.AppendRow(table.Row{"52w range", fmt.Sprintf("%.2f - %.2f", sum.Low52w, sum.High52w)})
	t.AppendRow(table.Row{"52w position", fmt.Sprintf("%.0f%%", sum.Position52w*100)})
	t.Render()
}
