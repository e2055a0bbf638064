package folio

import "math"

// Summary aggregates a holdings snapshot into the headline figures.
type Summary struct {
	Currency      string  `json:"currency"`
	Value         float64 `json:"value"`
	DailyPnL      float64 `json:"dailyPnl"`
	DailyPercent  float64 `json:"dailyPercent"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profitPercent"`
	Holdings      int     `json:"holdings"`
}

// Summarize totals the holdings. Percent figures relate the gain to the value
// before the gain; a zero or non-finite denominator degrades the percent to
// zero rather than propagating NaN into display math.
func Summarize(holdings []Holding, baseCurrency string) Summary {
	sum := Summary{Currency: Normalize(baseCurrency), Holdings: len(holdings)}
	if sum.Currency == "" {
		sum.Currency = "USD"
	}
	for _, h := range holdings {
		sum.Value += h.Value
		sum.DailyPnL += h.DailyPnL
		sum.Profit += h.Profit
	}
	sum.DailyPercent = gainPercent(sum.Value, sum.DailyPnL)
	sum.ProfitPercent = gainPercent(sum.Value, sum.Profit)
	return sum
}

func gainPercent(value, gain float64) float64 {
	before := value - gain
	if math.Abs(before) < 1e-9 {
		return 0
	}
	pct := gain / before * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return pct
}
