package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceBar represents a single daily candlestick bar.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the full price history of one ticker, oldest bar first.
type PriceSeries struct {
	Symbol    string
	Bars      []PriceBar
	FetchedAt time.Time
}

func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Empty reports whether the series is absent or has no bars.
func (s *PriceSeries) Empty() bool { return s.Len() == 0 }

// Head returns up to n bars from the start of the series.
func (s *PriceSeries) Head(n int) []PriceBar {
	if s.Empty() || n <= 0 {
		return nil
	}
	if n > len(s.Bars) {
		n = len(s.Bars)
	}
	return s.Bars[:n]
}

// Tail returns up to n bars from the end of the series.
func (s *PriceSeries) Tail(n int) []PriceBar {
	if s.Empty() || n <= 0 {
		return nil
	}
	if n > len(s.Bars) {
		n = len(s.Bars)
	}
	return s.Bars[len(s.Bars)-n:]
}

// Closes extracts the closing prices in series order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, s.Len())
	for i := range closes {
		closes[i] = s.Bars[i].Close
	}
	return closes
}

// RevenuePoint is the total revenue reported for the period ending on Date.
type RevenuePoint struct {
	Date     time.Time
	Revenue  decimal.Decimal
	Currency string
}

// RevenueSeries holds reported revenue per period, oldest period first.
type RevenueSeries struct {
	Symbol    string
	Period    string // "annual" or "quarterly"
	Points    []RevenuePoint
	FetchedAt time.Time
}

func (s *RevenueSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

func (s *RevenueSeries) Empty() bool { return s.Len() == 0 }

func (s *RevenueSeries) Head(n int) []RevenuePoint {
	if s.Empty() || n <= 0 {
		return nil
	}
	if n > len(s.Points) {
		n = len(s.Points)
	}
	return s.Points[:n]
}

func (s *RevenueSeries) Tail(n int) []RevenuePoint {
	if s.Empty() || n <= 0 {
		return nil
	}
	if n > len(s.Points) {
		n = len(s.Points)
	}
	return s.Points[len(s.Points)-n:]
}
