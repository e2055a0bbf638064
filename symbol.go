package folio

import "strings"

// fxMarker is the suffix identifying foreign-exchange pair symbols (EURUSD=X).
const fxMarker = "=X"

// knownQuotes are the currencies a pair symbol can be quoted in. A trailing
// pair component outside this set is only treated as a quote currency when it
// is at least 3 characters long, which keeps single-letter share classes
// (BRK-B) untouched.
var knownQuotes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "BTC": true,
	"ETH": true, "USDT": true, "USDC": true, "BNB": true,
}

func isSeparator(r rune) bool { return r == '-' || r == '/' }

// Normalize maps a raw instrument symbol to its canonical asset key, the unit
// balances are aggregated by. Two raw spellings of the same asset normalize
// to the same key: EUR=X and EURUSD=X are both EUR, BTC-USD is BTC.
//
// Dash-separated equity tickers with a single-letter class suffix (BRK-B)
// pass through unchanged: a 1-character trailing part matches neither the
// known quote set nor the length rule. This is intentional, not a gap.
func Normalize(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))

	if strings.HasSuffix(s, fxMarker) {
		base := strings.TrimSuffix(s, fxMarker)
		if len(base) > 3 {
			// 6-char pair like EURUSD: the first 3 are the asset.
			return base[:3]
		}
		return base
	}

	if strings.ContainsFunc(s, isSeparator) {
		parts := strings.FieldsFunc(s, isSeparator)
		if len(parts) >= 2 {
			last := parts[len(parts)-1]
			if knownQuotes[last] || len(last) >= 3 {
				return parts[0]
			}
		}
	}

	return s
}

// QuoteSuffix infers the quote currency a raw symbol's trades are denominated
// in, from the symbol alone. It is the fallback used when a transaction does
// not carry an explicit quote currency. Defaults to USD.
func QuoteSuffix(raw string) string {
	if q := quoteFromSymbol(raw); q != "" {
		return q
	}
	return "USD"
}

// quoteFromSymbol extracts the quote currency encoded in a pair symbol
// (EURUSD=X carries USD, BTC-EUR carries EUR), or "" when the symbol encodes
// none. Separate from QuoteSuffix so callers can distinguish "inferred from
// the symbol" from "defaulted".
func quoteFromSymbol(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))

	if strings.HasSuffix(s, fxMarker) {
		base := strings.TrimSuffix(s, fxMarker)
		if len(base) > 3 {
			return base[3:]
		}
		return "USD"
	}

	if strings.ContainsFunc(s, isSeparator) {
		parts := strings.FieldsFunc(s, isSeparator)
		if len(parts) >= 2 {
			if last := parts[len(parts)-1]; knownQuotes[last] {
				return last
			}
		}
	}

	return ""
}

// Category classifies a holding for grouping in reports.
type Category string

const (
	Currencies Category = "Currencies"
	ETFs       Category = "ETFs"
	Crypto     Category = "Crypto"
	Shares     Category = "Shares"
	Funds      Category = "Funds"
)

// classification is the input of the category rule table: the asset key, the
// raw symbol used for price lookup, and what the quote reported about itself.
type classification struct {
	Asset     string
	Symbol    string
	QuoteType string // e.g. EQUITY, ETF, CRYPTOCURRENCY, MUTUALFUND, CURRENCY
	TypeDisp  string // human form of QuoteType
	Currency  string // quote currency resolved for this asset
	Base      string // requested reporting currency
}

func (c classification) typeContains(s string) bool {
	return strings.Contains(strings.ToUpper(c.QuoteType), s) ||
		strings.Contains(strings.ToUpper(c.TypeDisp), s)
}

// categoryRules is evaluated in order; the first matching predicate wins.
// Kept as a table so the heuristics stay in one reviewable place.
var categoryRules = []struct {
	category Category
	match    func(classification) bool
}{
	{Currencies, func(c classification) bool { return c.IsFiat() }},
	{Crypto, func(c classification) bool { return c.typeContains("CRYPTO") }},
	{ETFs, func(c classification) bool { return c.typeContains("ETF") }},
	{Funds, func(c classification) bool { return c.typeContains("FUND") }},
	{Shares, func(c classification) bool { return true }},
}

// Categorize returns the category of a holding per the rule table.
func Categorize(c classification) Category {
	for _, rule := range categoryRules {
		if rule.match(c) {
			return rule.category
		}
	}
	return Shares
}

// IsFiat reports whether the asset is a currency rather than an instrument:
// a short key that is priced as an FX pair, is its own quote currency, is the
// reporting currency, or whose quote type says so.
func (c classification) IsFiat() bool {
	if len(c.Asset) > 4 {
		return false
	}
	return strings.HasSuffix(strings.ToUpper(c.Symbol), fxMarker) ||
		c.Asset == c.Currency ||
		c.Asset == c.Base ||
		c.typeContains("CURRENCY")
}
