package recorder

import "github.com/MattVogelsang/IBM-DataAnalzing/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordFetch(_ *FetchEvent) error     { return nil }
func (n *NoopRecorder) RecordChart(_ *ChartEvent) error     { return nil }
func (n *NoopRecorder) RecordRun(_ *model.RunSummary) error { return nil }
func (n *NoopRecorder) Close() error                        { return nil }
