package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

// RESTProvider implements Provider against a self-hosted market data REST API.
type RESTProvider struct {
	BaseURL string
	APIKey  string
	client  *httpClient
}

// NewRESTProvider creates a new provider with optional proxy support.
func NewRESTProvider(baseURL, apiKey, proxyURL string, timeout time.Duration, requestsPerSec float64) *RESTProvider {
	return &RESTProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  newHTTPClient(proxyURL, timeout, requestsPerSec),
	}
}

func (f *RESTProvider) Name() string { return "rest" }

// restBar is the expected JSON shape of one daily bar.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// restRevenue is the expected JSON shape of one reporting period.
type restRevenue struct {
	PeriodEnd string          `json:"period_end"`
	Revenue   decimal.Decimal `json:"revenue"`
	Currency  string          `json:"currency"`
}

func (f *RESTProvider) header() http.Header {
	h := http.Header{}
	if f.APIKey != "" {
		h.Set("Authorization", "Bearer "+f.APIKey)
	}
	return h
}

// FetchPriceHistory requests the full daily history; limit=0 means no limit.
func (f *RESTProvider) FetchPriceHistory(ctx context.Context, symbol string) ([]model.PriceBar, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=0", f.BaseURL, url.QueryEscape(symbol))
	body, err := f.client.get(ctx, endpoint, f.header())
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	var restBars []restBar
	if err := json.Unmarshal(body, &restBars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.PriceBar, len(restBars))
	for i, rb := range restBars {
		bars[i] = model.PriceBar{
			Date:   time.Unix(rb.Timestamp, 0).UTC(),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func (f *RESTProvider) FetchRevenue(ctx context.Context, symbol, period string) ([]model.RevenuePoint, error) {
	if period == "" {
		period = "annual"
	}
	endpoint := fmt.Sprintf("%s/api/v1/financials/revenue?symbol=%s&period=%s",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(period))
	body, err := f.client.get(ctx, endpoint, f.header())
	if err != nil {
		return nil, fmt.Errorf("fetch revenue: %w", err)
	}
	var rows []restRevenue
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode revenue: %w", err)
	}
	points := make([]model.RevenuePoint, 0, len(rows))
	for _, r := range rows {
		date, err := time.Parse("2006-01-02", r.PeriodEnd)
		if err != nil {
			return nil, fmt.Errorf("revenue period_end %q: %w", r.PeriodEnd, err)
		}
		points = append(points, model.RevenuePoint{Date: date, Revenue: r.Revenue, Currency: r.Currency})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
