package folio

import "github.com/shopspring/decimal"

// zeroBalance is the threshold under which a replayed balance counts as
// liquidated. Below it, accumulated float dust from partial sells is noise.
const zeroBalance = 1e-5

// sheet is the accumulator of the ledger fold. Both the holdings snapshot and
// the day-by-day history replay fold transactions through the same sheet, so
// the two views can never disagree on what is held.
type sheet struct {
	// balances holds the running signed quantity per asset key.
	balances map[string]decimal.Decimal
	// cashFlow holds, per asset key, the net quote-currency amount spent
	// acquiring it. It is the cost basis cumulative profit is measured against.
	cashFlow map[string]decimal.Decimal
	// symbols remembers the first raw symbol seen per asset key; market data
	// is looked up under that spelling.
	symbols map[string]string
	// quotes remembers the first resolved quote currency per asset key.
	quotes map[string]string
}

func newSheet() *sheet {
	return &sheet{
		balances: make(map[string]decimal.Decimal),
		cashFlow: make(map[string]decimal.Decimal),
		symbols:  make(map[string]string),
		quotes:   make(map[string]string),
	}
}

// see registers an asset key's first raw spelling, and the first known quote
// currency. The hint may be empty when the ledger carries no explicit quote
// currency and the symbol encodes none.
func (s *sheet) see(key, rawSymbol, quoteHint string) {
	if _, ok := s.symbols[key]; !ok {
		s.symbols[key] = rawSymbol
	}
	if s.quotes[key] == "" && quoteHint != "" {
		s.quotes[key] = quoteHint
	}
}

// apply folds one transaction into the sheet. Same-day order does not matter:
// balances and cash flow are pure sums.
func (s *sheet) apply(tx Transaction) {
	base := tx.Asset()
	quote := Normalize(tx.ResolvedQuote())

	hint := quoteFromSymbol(tx.BaseCurrency)
	if tx.QuoteCurrency != "" {
		hint = Normalize(tx.QuoteCurrency)
	}
	s.see(base, tx.BaseCurrency, hint)

	switch tx.Type {
	case Buy:
		s.balances[base] = s.balances[base].Add(tx.BaseAmount)
		s.cashFlow[base] = s.cashFlow[base].Add(tx.QuoteAmount)
		s.balances[quote] = s.balances[quote].Sub(tx.QuoteAmount)
	case Sell:
		s.balances[base] = s.balances[base].Sub(tx.BaseAmount)
		s.cashFlow[base] = s.cashFlow[base].Sub(tx.QuoteAmount)
		s.balances[quote] = s.balances[quote].Add(tx.QuoteAmount)
	case Deposit:
		s.balances[base] = s.balances[base].Add(tx.BaseAmount)
	case Withdraw:
		s.balances[base] = s.balances[base].Sub(tx.BaseAmount)
	}

	if !tx.Fee.IsZero() && tx.FeeCurrency != "" {
		feeCurr := Normalize(tx.FeeCurrency)
		s.balances[feeCurr] = s.balances[feeCurr].Sub(tx.Fee)
		// A fee paid in the quote currency is part of the acquisition cost.
		if feeCurr == quote {
			s.cashFlow[base] = s.cashFlow[base].Add(tx.Fee)
		}
	}
}

// held returns the asset keys with a balance above the zero threshold.
// Near-zero keys stay in the sheet (a later transaction can revive them) but
// are excluded from every valuation.
func (s *sheet) held() []string {
	var keys []string
	for key, bal := range s.balances {
		if bal.Abs().InexactFloat64() > zeroBalance {
			keys = append(keys, key)
		}
	}
	return keys
}

// quoteHint returns the quote currency the ledger recorded for an asset key,
// or "" when none was explicit or inferable from the symbol.
func (s *sheet) quoteHint(key string) string { return s.quotes[key] }

// symbolOf returns the raw symbol market data is keyed by for an asset key.
// Assets that only ever appeared as a quote or fee currency have no recorded
// spelling; their key doubles as the symbol.
func (s *sheet) symbolOf(key string) string {
	if symbol := s.symbols[key]; symbol != "" {
		return symbol
	}
	return key
}

// QuoteCurrencies folds the transactions and returns, per held asset key,
// the raw symbol prices are keyed by and the currency its trades are
// denominated in (USD when unknown). Callers use it to decide which FX
// series they need to fetch.
func QuoteCurrencies(transactions []Transaction) (symbols, currencies map[string]string) {
	s := newSheet()
	for _, tx := range sortedByDay(transactions) {
		s.apply(tx)
	}
	symbols = make(map[string]string)
	currencies = make(map[string]string)
	for _, key := range s.held() {
		symbols[key] = s.symbolOf(key)
		currency := s.quoteHint(key)
		if currency == "" {
			currency = "USD"
		}
		currencies[key] = currency
	}
	return symbols, currencies
}
