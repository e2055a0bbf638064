package folio

import (
	"math"

	"github.com/ewald/folio/date"
)

// ValuePoint is the total portfolio value on one calendar day.
type ValuePoint struct {
	Date  date.Date `json:"date"`
	Value float64   `json:"value"`
}

// CalculateHistory replays the transactions day by day, from the first
// transaction's calendar day through today inclusive, valuing the balances
// held at the end of each day against the historical series.
//
// histories is keyed by raw symbol for prices and by FX pair spelling
// ({quote}{base}=X, with the bare quote currency as fallback key) for rates.
// Days missing from a series use the most recent earlier point; an asset with
// no series at all prices at zero, and a missing FX pair converts at 1.
//
// quoteOverride, when non-nil, takes precedence over the quote currencies
// derived from the ledger itself.
func CalculateHistory(transactions []Transaction, histories map[string]*date.History[float64], baseCurrency string, quoteOverride map[string]string) []ValuePoint {
	if len(transactions) == 0 {
		return nil
	}
	if baseCurrency == "" {
		baseCurrency = "USD"
	}
	baseCurrency = Normalize(baseCurrency)

	sorted := sortedByDay(transactions)
	s := newSheet()

	var points []ValuePoint
	next := 0
	for day := range date.Days(sorted[0].Day(), date.Today()) {
		for next < len(sorted) && !sorted[next].Day().After(day) {
			s.apply(sorted[next])
			next++
		}
		points = append(points, ValuePoint{Date: day, Value: s.valueOn(day, histories, baseCurrency, quoteOverride)})
	}
	return points
}

// valueOn sums the base-currency value of every held asset on one day.
func (s *sheet) valueOn(day date.Date, histories map[string]*date.History[float64], baseCurrency string, quoteOverride map[string]string) float64 {
	var total float64
	for _, key := range s.held() {
		quoteCurr := quoteOverride[key]
		if quoteCurr == "" {
			quoteCurr = s.quoteHint(key)
		}
		if quoteCurr == "" {
			quoteCurr = "USD"
		}

		var localPrice float64
		if key == quoteCurr {
			localPrice = 1
		} else {
			localPrice = priceAsOf(histories[s.symbolOf(key)], day, 0)
		}

		fxRate := 1.0
		if quoteCurr != baseCurrency {
			series, ok := histories[quoteCurr+baseCurrency+fxMarker]
			if !ok {
				series = histories[quoteCurr]
			}
			fxRate = priceAsOf(series, day, 1)
		}

		contribution := s.balances[key].InexactFloat64() * localPrice * fxRate
		if math.IsNaN(contribution) {
			continue
		}
		total += contribution
	}
	return total
}

// priceAsOf returns the series value on the day, carrying the last earlier
// observation forward, or fallback when the series is nil or starts later.
func priceAsOf(series *date.History[float64], day date.Date, fallback float64) float64 {
	if series == nil {
		return fallback
	}
	if v, ok := series.ValueAsOf(day); ok {
		return v
	}
	return fallback
}
