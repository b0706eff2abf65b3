// Package export writes fetched series to CSV files.
package export

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

type priceRow struct {
	Date   string  `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

type revenueRow struct {
	Date     string `csv:"date"`
	Revenue  string `csv:"revenue"`
	Currency string `csv:"currency"`
}

// WritePrices writes the series to path, one row per bar.
func WritePrices(path string, s *model.PriceSeries) error {
	rows := make([]*priceRow, 0, s.Len())
	for _, b := range s.Head(s.Len()) {
		rows = append(rows, &priceRow{
			Date:   b.Date.Format("2006-01-02"),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	return writeFile(path, &rows)
}

// WriteRevenue writes the series to path, one row per reporting period.
func WriteRevenue(path string, s *model.RevenueSeries) error {
	rows := make([]*revenueRow, 0, s.Len())
	for _, p := range s.Head(s.Len()) {
		rows = append(rows, &revenueRow{
			Date:     p.Date.Format("2006-01-02"),
			Revenue:  p.Revenue.String(),
			Currency: p.Currency,
		})
	}
	return writeFile(path, &rows)
}

func writeFile(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := gocsv.MarshalFile(rows, f); err != nil {
		f.Close()
		return fmt.Errorf("marshal csv: %w", err)
	}
	return f.Close()
}
