package calculator

import (
	"errors"
	"time"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

// PriceSummary condenses a price series for the console report.
type PriceSummary struct {
	Rows        int
	First       time.Time
	Last        time.Time
	LastClose   float64
	MA200       float64 // 0 when fewer than 200 bars
	High52w     float64
	Low52w      float64
	Position52w float64
}

// Summarize computes a PriceSummary. Indicators that need more history than
// the series has are left at zero.
func Summarize(s *model.PriceSeries) (PriceSummary, error) {
	if s.Empty() {
		return PriceSummary{}, errors.New("empty price series")
	}
	bars := s.Bars
	last := bars[len(bars)-1]
	sum := PriceSummary{
		Rows:      len(bars),
		First:     bars[0].Date,
		Last:      last.Date,
		LastClose: last.Close,
	}
	if ma, err := CalculateMA200(s); err == nil {
		sum.MA200 = ma
	}
	high, low, err := Calculate52WeekRange(bars)
	if err != nil {
		return sum, err
	}
	sum.High52w, sum.Low52w = high, low
	pos, err := Calculate52WeekPosition(last.Close, high, low)
	if err != nil {
		return sum, err
	}
	sum.Position52w = pos
	return sum, nil
}
