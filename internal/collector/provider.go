package collector

import (
	"context"
	"errors"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

// ErrEmpty is returned by the Fetcher when a provider answered with no data.
var ErrEmpty = errors.New("no data returned")

// Provider fetches raw market data for a ticker. An empty slice with a nil
// error means the provider had nothing for the symbol.
type Provider interface {
	FetchPriceHistory(ctx context.Context, symbol string) ([]model.PriceBar, error)
	FetchRevenue(ctx context.Context, symbol, period string) ([]model.RevenuePoint, error)
	Name() string
}
