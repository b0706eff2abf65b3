package model

// FetchStatus classifies the outcome of a provider fetch.
type FetchStatus string

const (
	StatusOK    FetchStatus = "OK"
	StatusEmpty FetchStatus = "EMPTY"
	StatusError FetchStatus = "ERROR"
)

// PriceResult is the outcome of fetching a price series. Series is nil unless Status is StatusOK.
type PriceResult struct {
	Series   *PriceSeries
	Status   FetchStatus
	Attempts int
	Err      error
}

// Present reports whether usable price data was fetched.
func (r PriceResult) Present() bool {
	return r.Status == StatusOK && !r.Series.Empty()
}

// RevenueResult is the outcome of fetching a revenue series.
type RevenueResult struct {
	Series   *RevenueSeries
	Status   FetchStatus
	Attempts int
	Err      error
}

func (r RevenueResult) Present() bool {
	return r.Status == StatusOK && !r.Series.Empty()
}
