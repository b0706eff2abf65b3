package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

func testSummary() *model.RunSummary {
	return &model.RunSummary{
		RunID:      "run-1",
		FinishedAt: time.Date(2024, 6, 28, 18, 0, 0, 0, time.UTC),
		OutputDir:  "dashboards",
		Tickers: []model.TickerOutcome{
			{Symbol: "TSLA", Name: "Tesla", PriceStatus: model.StatusOK, PriceAttempts: 1, PriceRows: 3500,
				RevenueStatus: model.StatusOK, RevenueRows: 4, DashboardPath: "dashboards/tesla_dashboard.html"},
			{Symbol: "GME", Name: "GameStop", PriceStatus: model.StatusEmpty, PriceAttempts: 3},
		},
	}
}

func TestFormatRunSummary(t *testing.T) {
	msg := FormatRunSummary(testSummary())
	assert.Contains(t, msg, "<b>Tesla</b> (TSLA)")
	assert.Contains(t, msg, "dashboard: tesla_dashboard.html")
	assert.Contains(t, msg, "price: EMPTY, 0 rows, 3 attempt(s)")
	assert.Contains(t, msg, "dashboard: skipped")
	assert.Contains(t, msg, "1/2 dashboards written to dashboards")
}

func TestTelegramNotify(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL

	require.NoError(t, tn.Notify(context.Background(), testSummary()))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "HTML", got["parse_mode"])
	assert.Contains(t, got["text"], "TSLA")
}

func TestTelegramSendWithRetry_GivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL

	err := tn.SendWithRetry(context.Background(), "hello", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
