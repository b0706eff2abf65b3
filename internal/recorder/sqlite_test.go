package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

func TestSQLiteRecorder(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RecordFetch(&FetchEvent{
		RunID: "run-1", Ticker: "TSLA", Kind: "price", Status: model.StatusOK, Attempts: 1, Rows: 3500,
	}))
	require.NoError(t, r.RecordFetch(&FetchEvent{
		RunID: "run-1", Ticker: "GME", Kind: "price", Status: model.StatusEmpty, Attempts: 3, Error: "no data returned",
	}))
	require.NoError(t, r.RecordChart(&ChartEvent{
		RunID: "run-1", Ticker: "TSLA", Kind: "dashboard", Path: "dashboards/tesla_dashboard.html", Bytes: 1024,
	}))

	summary := &model.RunSummary{
		RunID:      "run-1",
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
		OutputDir:  "dashboards",
		Tickers: []model.TickerOutcome{
			{Symbol: "TSLA", DashboardPath: "dashboards/tesla_dashboard.html"},
			{Symbol: "GME"},
		},
	}
	require.NoError(t, r.RecordRun(summary))
	require.NoError(t, r.RecordRun(summary), "re-recording a run must replace it")

	var attempts int
	require.NoError(t, r.db.QueryRow(
		`SELECT attempts FROM fetch_events WHERE ticker = ? AND kind = 'price'`, "GME").Scan(&attempts))
	assert.Equal(t, 3, attempts)

	var charts int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM chart_events WHERE run_id = ?`, "run-1").Scan(&charts))
	assert.Equal(t, 1, charts)

	var runs, dashboards int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*), MAX(dashboards) FROM runs`).Scan(&runs, &dashboards))
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, dashboards)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordFetch(&FetchEvent{}))
	assert.NoError(t, r.RecordChart(&ChartEvent{}))
	assert.NoError(t, r.RecordRun(&model.RunSummary{}))
	assert.NoError(t, r.Close())
}
