package collector

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
// Symbols without an entry yield an empty response.
type MockProvider struct {
	Prices     map[string][]model.PriceBar
	Revenue    map[string][]model.RevenuePoint
	PriceErr   map[string]error
	RevenueErr map[string]error

	PriceCalls   map[string]int
	RevenueCalls map[string]int
}

// NewMockProvider creates an empty MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Prices:       make(map[string][]model.PriceBar),
		Revenue:      make(map[string][]model.RevenuePoint),
		PriceErr:     make(map[string]error),
		RevenueErr:   make(map[string]error),
		PriceCalls:   make(map[string]int),
		RevenueCalls: make(map[string]int),
	}
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchPriceHistory(_ context.Context, symbol string) ([]model.PriceBar, error) {
	m.PriceCalls[symbol]++
	if err := m.PriceErr[symbol]; err != nil {
		return nil, err
	}
	return m.Prices[symbol], nil
}

func (m *MockProvider) FetchRevenue(_ context.Context, symbol, _ string) ([]model.RevenuePoint, error) {
	m.RevenueCalls[symbol]++
	if err := m.RevenueErr[symbol]; err != nil {
		return nil, err
	}
	return m.Revenue[symbol], nil
}

// GenerateMockBars builds count consecutive daily bars ending at end, drifting up from basePrice.
func GenerateMockBars(basePrice float64, count int, end time.Time) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// GenerateMockRevenue builds one annual revenue point per year ending at endYear.
func GenerateMockRevenue(base int64, years, endYear int) []model.RevenuePoint {
	points := make([]model.RevenuePoint, years)
	for i := 0; i < years; i++ {
		year := endYear - (years - 1 - i)
		points[i] = model.RevenuePoint{
			Date:     time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
			Revenue:  decimal.NewFromInt(base).Mul(decimal.NewFromFloat(1 + 0.1*float64(i))),
			Currency: "USD",
		}
	}
	return points
}
