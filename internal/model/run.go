package model

import "time"

// TickerOutcome records what a pipeline run produced for one ticker.
type TickerOutcome struct {
	Symbol        string
	Name          string
	PriceStatus   FetchStatus
	PriceAttempts int
	PriceRows     int
	RevenueStatus FetchStatus
	RevenueRows   int
	DashboardPath string
	LineChartPath string
}

// RunSummary is the result of one full pipeline run.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	OutputDir  string
	Tickers    []TickerOutcome
}

// Dashboards counts the dashboards written during the run.
func (s *RunSummary) Dashboards() int {
	n := 0
	for _, t := range s.Tickers {
		if t.DashboardPath != "" {
			n++
		}
	}
	return n
}
