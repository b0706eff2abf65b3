package collector

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

// DefaultMaxAttempts is how many times a price fetch is tried before giving up.
const DefaultMaxAttempts = 3

// Fetcher turns provider calls into explicit fetch results. Provider errors
// never escape; callers branch on PriceResult/RevenueResult instead.
type Fetcher struct {
	Provider      Provider
	MaxAttempts   int
	RetryDelay    time.Duration
	RevenuePeriod string
	logger        zerolog.Logger
	now           func() time.Time
}

// NewFetcher creates a Fetcher. maxAttempts < 1 selects DefaultMaxAttempts.
func NewFetcher(provider Provider, maxAttempts int, retryDelay time.Duration, revenuePeriod string) *Fetcher {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Fetcher{
		Provider:      provider,
		MaxAttempts:   maxAttempts,
		RetryDelay:    retryDelay,
		RevenuePeriod: revenuePeriod,
		logger:        log.With().Str("component", "fetcher").Str("provider", provider.Name()).Logger(),
		now:           time.Now,
	}
}

func (f *Fetcher) retryPolicy(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff = &backoff.ZeroBackOff{}
	if f.RetryDelay > 0 {
		b = backoff.NewConstantBackOff(f.RetryDelay)
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(f.MaxAttempts-1)), ctx)
}

// FetchPriceSeries fetches the full price history for ticker, retrying on
// empty results and provider errors alike. Unknown tickers and transient
// outages are not told apart; the result Status reflects the last attempt.
func (f *Fetcher) FetchPriceSeries(ctx context.Context, ticker string) model.PriceResult {
	res := model.PriceResult{}

	operation := func() error {
		res.Attempts++
		bars, err := f.Provider.FetchPriceHistory(ctx, ticker)
		if err != nil {
			res.Status = model.StatusError
			res.Err = err
			f.logger.Warn().Err(err).Str("ticker", ticker).
				Msgf("error getting stock data, attempt %d/%d", res.Attempts, f.MaxAttempts)
			return err
		}
		if len(bars) == 0 {
			res.Status = model.StatusEmpty
			res.Err = ErrEmpty
			f.logger.Warn().Str("ticker", ticker).
				Msgf("no stock data found, attempt %d/%d", res.Attempts, f.MaxAttempts)
			return ErrEmpty
		}
		res.Status = model.StatusOK
		res.Err = nil
		res.Series = &model.PriceSeries{Symbol: ticker, Bars: bars, FetchedAt: f.now()}
		return nil
	}

	if err := backoff.Retry(operation, f.retryPolicy(ctx)); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			res.Status = model.StatusError
			res.Err = err
		}
		res.Series = nil
		return res
	}

	f.logger.Debug().Str("ticker", ticker).Int("bars", res.Series.Len()).Int("attempts", res.Attempts).Msg("fetched stock data")
	return res
}

// FetchRevenueSeries fetches reported revenue for ticker in a single attempt.
func (f *Fetcher) FetchRevenueSeries(ctx context.Context, ticker string) model.RevenueResult {
	res := model.RevenueResult{Attempts: 1}

	points, err := f.Provider.FetchRevenue(ctx, ticker, f.RevenuePeriod)
	if err != nil {
		f.logger.Warn().Err(err).Str("ticker", ticker).Msg("error getting revenue data")
		res.Status = model.StatusError
		res.Err = err
		return res
	}
	if len(points) == 0 {
		f.logger.Warn().Str("ticker", ticker).Msg("no revenue data found")
		res.Status = model.StatusEmpty
		res.Err = ErrEmpty
		return res
	}

	period := f.RevenuePeriod
	if period == "" {
		period = "annual"
	}
	res.Status = model.StatusOK
	res.Series = &model.RevenueSeries{Symbol: ticker, Period: period, Points: points, FetchedAt: f.now()}
	return res
}
