package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

// yahooRevenueEpoch is the earliest period1 Yahoo accepts for fundamentals (1985-08-23).
const yahooRevenueEpoch = 493590046

// YahooProvider is a Provider backed by the Yahoo Finance public chart and fundamentals APIs.
type YahooProvider struct {
	ChartBaseURL        string
	FundamentalsBaseURL string
	client              *httpClient
	now                 func() time.Time
}

// YahooOptions configures a YahooProvider. Zero values select the public endpoints.
type YahooOptions struct {
	ChartBaseURL        string
	FundamentalsBaseURL string
	ProxyURL            string
	Timeout             time.Duration
	RequestsPerSec      float64
}

// NewYahooProvider creates a new Yahoo Finance provider.
func NewYahooProvider(opts YahooOptions) *YahooProvider {
	if opts.ChartBaseURL == "" {
		opts.ChartBaseURL = "https://query1.finance.yahoo.com"
	}
	if opts.FundamentalsBaseURL == "" {
		opts.FundamentalsBaseURL = "https://query2.finance.yahoo.com"
	}
	return &YahooProvider{
		ChartBaseURL:        opts.ChartBaseURL,
		FundamentalsBaseURL: opts.FundamentalsBaseURL,
		client:              newHTTPClient(opts.ProxyURL, opts.Timeout, opts.RequestsPerSec),
		now:                 time.Now,
	}
}

func (f *YahooProvider) Name() string { return "yahoo" }

func yahooHeader() http.Header {
	h := http.Header{}
	h.Set("User-Agent", "Mozilla/5.0")
	h.Set("Accept", "application/json")
	return h
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

func valueAt(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

// FetchPriceHistory returns the full daily history available for symbol.
func (f *YahooProvider) FetchPriceHistory(ctx context.Context, symbol string) ([]model.PriceBar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=max&includeAdjustedClose=false",
		f.ChartBaseURL, url.PathEscape(symbol))

	body, err := f.client.get(ctx, u, yahooHeader())
	var chart yahooChart
	if err != nil {
		var statusErr *HTTPStatusError
		if errors.As(err, &statusErr) && json.Unmarshal(body, &chart) == nil && chart.Chart.Error != nil {
			return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
		}
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}

	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.PriceBar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		// every chart plots the close, so a bar without one is unusable
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bars = append(bars, model.PriceBar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   valueAt(quote.Open, i),
			High:   valueAt(quote.High, i),
			Low:    valueAt(quote.Low, i),
			Close:  *quote.Close[i],
			Volume: valueAt(quote.Volume, i),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// yahooTimeseries is the fundamentals-timeseries response. Each result
// carries its values under a key named after the requested type.
type yahooTimeseries struct {
	Timeseries struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *yahooError                  `json:"error"`
	} `json:"timeseries"`
}

type yahooReported struct {
	AsOfDate      string `json:"asOfDate"`
	PeriodType    string `json:"periodType"`
	CurrencyCode  string `json:"currencyCode"`
	ReportedValue struct {
		Raw json.Number `json:"raw"`
	} `json:"reportedValue"`
}

func revenueType(period string) (string, error) {
	switch period {
	case "", "annual":
		return "annualTotalRevenue", nil
	case "quarterly":
		return "quarterlyTotalRevenue", nil
	default:
		return "", fmt.Errorf("unsupported revenue period %q", period)
	}
}

// FetchRevenue returns total revenue per reporting period for symbol.
func (f *YahooProvider) FetchRevenue(ctx context.Context, symbol, period string) ([]model.RevenuePoint, error) {
	typ, err := revenueType(period)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("type", typ)
	q.Set("period1", fmt.Sprint(yahooRevenueEpoch))
	q.Set("period2", fmt.Sprint(f.now().Unix()))
	u := fmt.Sprintf("%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?%s",
		f.FundamentalsBaseURL, url.PathEscape(symbol), q.Encode())

	body, err := f.client.get(ctx, u, yahooHeader())
	if err != nil {
		return nil, fmt.Errorf("yahoo fundamentals fetch: %w", err)
	}

	var ts yahooTimeseries
	if err := json.Unmarshal(body, &ts); err != nil {
		return nil, fmt.Errorf("yahoo fundamentals decode: %w", err)
	}
	if ts.Timeseries.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", ts.Timeseries.Error.Description)
	}

	var points []model.RevenuePoint
	for _, res := range ts.Timeseries.Result {
		raw, ok := res[typ]
		if !ok {
			continue
		}
		var reported []*yahooReported
		if err := json.Unmarshal(raw, &reported); err != nil {
			return nil, fmt.Errorf("yahoo fundamentals decode %s: %w", typ, err)
		}
		for _, r := range reported {
			if r == nil || r.ReportedValue.Raw == "" {
				continue
			}
			date, err := time.Parse("2006-01-02", r.AsOfDate)
			if err != nil {
				return nil, fmt.Errorf("yahoo fundamentals date %q: %w", r.AsOfDate, err)
			}
			revenue, err := decimal.NewFromString(r.ReportedValue.Raw.String())
			if err != nil {
				return nil, fmt.Errorf("yahoo fundamentals value %q: %w", r.ReportedValue.Raw, err)
			}
			points = append(points, model.RevenuePoint{
				Date:     date,
				Revenue:  revenue,
				Currency: r.CurrencyCode,
			})
		}
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
