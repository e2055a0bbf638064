package folio

import "strings"

// Quote is a live market snapshot for one symbol.
type Quote struct {
	Symbol          string  `json:"symbol"`
	Price           float64 `json:"price"`
	ChangePercent   float64 `json:"changePercent"`
	Currency        string  `json:"currency,omitempty"`
	Name            string  `json:"name,omitempty"`
	QuoteType       string  `json:"quoteType,omitempty"`
	TypeDisp        string  `json:"typeDisp,omitempty"`
	MarketState     string  `json:"marketState,omitempty"`
	PreMarketPrice  float64 `json:"preMarketPrice,omitempty"`
	PostMarketPrice float64 `json:"postMarketPrice,omitempty"`
}

// QuoteMap maps raw symbols to their live quote. Missing symbols resolve to a
// zero quote, never an error: valuation degrades to zero instead of failing.
type QuoteMap map[string]Quote

// Lookup returns the quote for a symbol, or a zero quote when absent.
func (m QuoteMap) Lookup(symbol string) Quote {
	if q, ok := m[symbol]; ok {
		return q
	}
	return Quote{Symbol: symbol}
}

// FxRate returns the live rate converting one unit of 'from' into 'to',
// together with the pair's daily change percent. Identical currencies rate 1.
//
// The pair is searched under three spellings, most specific first: the full
// pair (EURUSD=X), the bare currency (EUR), and the suffixed bare currency
// (EUR=X). A pair found nowhere rates 1, so a missing FX quote leaves values
// unconverted rather than zeroing them.
func (m QuoteMap) FxRate(from, to string) (rate, changePercent float64) {
	if from == to || from == "" || to == "" {
		return 1, 0
	}
	for _, key := range []string{from + to + fxMarker, from, from + fxMarker} {
		if q, ok := m[key]; ok && q.Price != 0 {
			return q.Price, q.ChangePercent
		}
	}
	return 1, 0
}

// IsOpen reports whether the symbol's market is in a regular trading session.
func (q Quote) IsOpen() bool { return strings.EqualFold(q.MarketState, "REGULAR") }
