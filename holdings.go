package folio

import (
	"math"
	"sort"
)

// Holding is one valued row of the portfolio snapshot. All monetary fields
// except LocalPrice are expressed in the requested base currency.
type Holding struct {
	Asset         string   `json:"asset"`
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name,omitempty"`
	Amount        float64  `json:"amount"`
	LocalPrice    float64  `json:"localPrice"`
	Price         float64  `json:"price"`
	Value         float64  `json:"value"`
	ChangePercent float64  `json:"changePercent"`
	DailyPnL      float64  `json:"dailyPnl"`
	Profit        float64  `json:"profit"`
	Currency      string   `json:"currency"`
	Category      Category `json:"category"`
	IsFiat        bool     `json:"isFiat"`
}

// CalculateHoldings folds the transactions into per-asset balances and values
// them against the live quote snapshot, in the given base currency.
//
// Missing market data never fails the calculation: an absent quote prices at
// zero, an absent FX pair converts at 1, and the affected rows show up valued
// at zero instead of the whole snapshot erroring out.
func CalculateHoldings(transactions []Transaction, quotes QuoteMap, baseCurrency string) []Holding {
	if baseCurrency == "" {
		baseCurrency = "USD"
	}
	baseCurrency = Normalize(baseCurrency)

	s := newSheet()
	for _, tx := range sortedByDay(transactions) {
		s.apply(tx)
	}

	var holdings []Holding
	for _, key := range s.held() {
		symbol := s.symbolOf(key)
		q := quotes.Lookup(symbol)

		quoteCurr := s.quoteHint(key)
		if quoteCurr == "" {
			quoteCurr = Normalize(q.Currency)
		}
		if quoteCurr == "" {
			quoteCurr = "USD"
		}

		// An asset that is its own quote currency is cash: one unit is worth
		// one unit, whatever the quote says.
		localPrice := q.Price
		if key == quoteCurr {
			localPrice = 1
		}

		fxRate, fxChange := quotes.FxRate(quoteCurr, baseCurrency)

		amount := s.balances[key].InexactFloat64()
		value := amount * localPrice * fxRate

		assetChange := q.ChangePercent
		if key == quoteCurr {
			assetChange = 0
		}
		combined := combinedChange(assetChange, fxChange)
		dailyPnL := dailyPnL(value, combined)

		localProfit := amount*localPrice - s.cashFlow[key].InexactFloat64()
		profit := localProfit * fxRate

		c := classification{
			Asset:     key,
			Symbol:    symbol,
			QuoteType: q.QuoteType,
			TypeDisp:  q.TypeDisp,
			Currency:  quoteCurr,
			Base:      baseCurrency,
		}

		holdings = append(holdings, Holding{
			Asset:         key,
			Symbol:        symbol,
			Name:          q.Name,
			Amount:        amount,
			LocalPrice:    localPrice,
			Price:         localPrice * fxRate,
			Value:         value,
			ChangePercent: combined,
			DailyPnL:      dailyPnL,
			Profit:        profit,
			Currency:      quoteCurr,
			Category:      Categorize(c),
			IsFiat:        c.IsFiat(),
		})
	}

	// Instruments first, largest position on top; cash rows close the list.
	sort.SliceStable(holdings, func(i, j int) bool {
		if holdings[i].IsFiat != holdings[j].IsFiat {
			return !holdings[i].IsFiat
		}
		return holdings[i].Value > holdings[j].Value
	})
	return holdings
}

// sortedByDay returns a copy of the transactions in chronological order.
// Same-day transactions keep their relative input order, which only affects
// accumulation order, never a final balance or cash-flow sum.
func sortedByDay(transactions []Transaction) []Transaction {
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Day().Before(sorted[j].Day())
	})
	return sorted
}

// combinedChange merges an asset's own daily move with its FX pair's move
// into one percent figure: both factors apply to the base-currency value.
func combinedChange(assetPercent, fxPercent float64) float64 {
	combined := ((1+assetPercent/100)*(1+fxPercent/100) - 1) * 100
	if math.IsNaN(combined) || math.IsInf(combined, 0) {
		return 0
	}
	return combined
}

// dailyPnL backs today's gain out of the current value and the combined
// change percent. A factor within epsilon of zero means no meaningful move,
// and dividing by it would explode, so the P&L degrades to zero.
func dailyPnL(value, changePercent float64) float64 {
	factor := 1 + changePercent/100
	if math.Abs(factor) < 1e-4 {
		return 0
	}
	pnl := value - value/factor
	if math.IsNaN(pnl) || math.IsInf(pnl, 0) {
		return 0
	}
	return pnl
}
