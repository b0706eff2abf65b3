package recorder

import "github.com/MattVogelsang/IBM-DataAnalzing/internal/model"

// FetchEvent records the outcome of one price or revenue fetch.
type FetchEvent struct {
	RunID    string
	Ticker   string
	Kind     string // "price" or "revenue"
	Status   model.FetchStatus
	Attempts int
	Rows     int
	Error    string
}

// ChartEvent records a chart written to disk.
type ChartEvent struct {
	RunID  string
	Ticker string
	Kind   string // "dashboard" or "line"
	Path   string
	Bytes  int64
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordFetch(evt *FetchEvent) error
	RecordChart(evt *ChartEvent) error
	RecordRun(summary *model.RunSummary) error
	Close() error
}
