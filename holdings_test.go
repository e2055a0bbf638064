package folio

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func tx(date string, typ TxType, amount float64, symbol string, quoteAmount float64, quoteCurrency string) Transaction {
	t := NewTransaction(day(date), typ, decimal.NewFromFloat(amount), symbol)
	t.QuoteAmount = decimal.NewFromFloat(quoteAmount)
	t.QuoteCurrency = quoteCurrency
	return t
}

func findHolding(t *testing.T, holdings []Holding, asset string) Holding {
	t.Helper()
	for _, h := range holdings {
		if h.Asset == asset {
			return h
		}
	}
	t.Fatalf("no %s holding in %+v", asset, holdings)
	return Holding{}
}

func TestCalculateHoldingsEndToEnd(t *testing.T) {
	transactions := []Transaction{
		tx("2024-01-01", Buy, 1, "BTC-USD", 40000, "USD"),
	}
	quotes := QuoteMap{
		"BTC-USD": {Symbol: "BTC-USD", Price: 50000, ChangePercent: 5, Currency: "USD"},
	}

	holdings := CalculateHoldings(transactions, quotes, "USD")

	btc := findHolding(t, holdings, "BTC")
	if btc.Amount != 1 {
		t.Errorf("amount = %v, want 1", btc.Amount)
	}
	if btc.LocalPrice != 50000 {
		t.Errorf("localPrice = %v, want 50000", btc.LocalPrice)
	}
	if btc.Value != 50000 {
		t.Errorf("value = %v, want 50000", btc.Value)
	}
	if btc.Profit != 10000 {
		t.Errorf("profit = %v, want 10000", btc.Profit)
	}
}

func TestCalculateHoldingsFxConversion(t *testing.T) {
	transactions := []Transaction{
		tx("2024-01-01", Buy, 10, "VOD.L", 500, "GBP"),
	}
	quotes := QuoteMap{
		"VOD.L":    {Symbol: "VOD.L", Price: 60, Currency: "GBP"},
		"GBPUSD=X": {Symbol: "GBPUSD=X", Price: 1.25},
	}

	holdings := CalculateHoldings(transactions, quotes, "USD")

	vod := findHolding(t, holdings, "VOD.L")
	if vod.Value != 750 {
		t.Errorf("value = %v, want 10*60*1.25 = 750", vod.Value)
	}
	if vod.Currency != "GBP" {
		t.Errorf("currency = %q, want GBP", vod.Currency)
	}
}

func TestCalculateHoldingsFxIdentity(t *testing.T) {
	// a USD-quoted asset in a USD report converts at exactly 1
	transactions := []Transaction{
		tx("2024-01-01", Buy, 3, "AAPL", 500, "USD"),
	}
	quotes := QuoteMap{
		"AAPL": {Symbol: "AAPL", Price: 190.5, Currency: "USD"},
	}

	holdings := CalculateHoldings(transactions, quotes, "USD")

	aapl := findHolding(t, holdings, "AAPL")
	if want := 3 * 190.5; aapl.Value != want {
		t.Errorf("value = %v, want exactly %v", aapl.Value, want)
	}
}

func TestBalanceConservation(t *testing.T) {
	// only BUY/SELL on one asset, no fee: the quote balance is the exact
	// negated sum of buys plus the sum of sells
	transactions := []Transaction{
		tx("2024-01-01", Buy, 1, "BTC-USD", 40000, "USD"),
		tx("2024-02-01", Buy, 0.5, "BTC-USD", 25000, "USD"),
		tx("2024-03-01", Sell, 0.2, "BTC-USD", 12000, "USD"),
	}

	s := newSheet()
	for _, transaction := range sortedByDay(transactions) {
		s.apply(transaction)
	}

	want := decimal.NewFromInt(-40000 - 25000 + 12000)
	if !s.balances["USD"].Equal(want) {
		t.Errorf("balances[USD] = %s, want %s", s.balances["USD"], want)
	}
	if !s.balances["BTC"].Equal(decimal.NewFromFloat(1.3)) {
		t.Errorf("balances[BTC] = %s, want 1.3", s.balances["BTC"])
	}
}

func TestZeroBalanceFiltered(t *testing.T) {
	transactions := []Transaction{
		tx("2024-01-01", Buy, 2, "ETH-USD", 4000, "USD"),
		tx("2024-02-01", Sell, 2, "ETH-USD", 5000, "USD"),
	}
	quotes := QuoteMap{
		"ETH-USD": {Symbol: "ETH-USD", Price: 2600, Currency: "USD"},
	}

	holdings := CalculateHoldings(transactions, quotes, "USD")

	for _, h := range holdings {
		if h.Asset == "ETH" {
			t.Errorf("fully sold asset still present: %+v", h)
		}
	}
	// the sale proceeds remain as a USD cash position
	usd := findHolding(t, holdings, "USD")
	if usd.Value != 1000 {
		t.Errorf("USD balance value = %v, want 1000", usd.Value)
	}
}

func TestFeeDebitsBalanceAndCostBasis(t *testing.T) {
	buy := tx("2024-01-01", Buy, 1, "BTC-USD", 40000, "USD")
	buy.Fee = decimal.NewFromInt(100)
	buy.FeeCurrency = "USD"

	s := newSheet()
	s.apply(buy)

	if want := decimal.NewFromInt(-40100); !s.balances["USD"].Equal(want) {
		t.Errorf("balances[USD] = %s, want %s", s.balances["USD"], want)
	}
	// a fee in the quote currency raises the cost basis
	if want := decimal.NewFromInt(40100); !s.cashFlow["BTC"].Equal(want) {
		t.Errorf("cashFlow[BTC] = %s, want %s", s.cashFlow["BTC"], want)
	}
}

func TestFeeInForeignCurrency(t *testing.T) {
	buy := tx("2024-01-01", Buy, 1, "BTC-USD", 40000, "USD")
	buy.Fee = decimal.NewFromInt(10)
	buy.FeeCurrency = "EUR"

	s := newSheet()
	s.apply(buy)

	if want := decimal.NewFromInt(-10); !s.balances["EUR"].Equal(want) {
		t.Errorf("balances[EUR] = %s, want %s", s.balances["EUR"], want)
	}
	// a fee outside the quote currency does not touch the cost basis
	if want := decimal.NewFromInt(40000); !s.cashFlow["BTC"].Equal(want) {
		t.Errorf("cashFlow[BTC] = %s, want %s", s.cashFlow["BTC"], want)
	}
}

func TestDepositWithdrawOnlyMoveBase(t *testing.T) {
	transactions := []Transaction{
		tx("2024-01-01", Deposit, 1000, "EUR=X", 0, ""),
		tx("2024-02-01", Withdraw, 300, "EUR=X", 0, ""),
	}

	s := newSheet()
	for _, transaction := range transactions {
		s.apply(transaction)
	}

	if want := decimal.NewFromInt(700); !s.balances["EUR"].Equal(want) {
		t.Errorf("balances[EUR] = %s, want %s", s.balances["EUR"], want)
	}
	if !s.cashFlow["EUR"].IsZero() {
		t.Errorf("cashFlow[EUR] = %s, want 0", s.cashFlow["EUR"])
	}
}

func TestMissingQuoteDegradesToZero(t *testing.T) {
	transactions := []Transaction{
		tx("2024-01-01", Buy, 5, "AAPL", 900, "USD"),
	}

	holdings := CalculateHoldings(transactions, QuoteMap{}, "USD")

	aapl := findHolding(t, holdings, "AAPL")
	if aapl.Value != 0 {
		t.Errorf("value without quote = %v, want 0", aapl.Value)
	}
	if math.IsNaN(aapl.Profit) || math.IsInf(aapl.Profit, 0) {
		t.Errorf("profit is not finite: %v", aapl.Profit)
	}
}

func TestHoldingsSortFiatLast(t *testing.T) {
	transactions := []Transaction{
		tx("2024-01-01", Deposit, 1000, "EUR=X", 0, ""),
		tx("2024-01-02", Buy, 1, "BTC-USD", 100, "USD"),
		tx("2024-01-03", Buy, 10, "AAPL", 500, "USD"),
	}
	quotes := QuoteMap{
		"BTC-USD": {Symbol: "BTC-USD", Price: 50000, Currency: "USD", QuoteType: "CRYPTOCURRENCY"},
		"AAPL":    {Symbol: "AAPL", Price: 190, Currency: "USD", QuoteType: "EQUITY"},
		"EUR=X":   {Symbol: "EUR=X", Price: 1.1, Currency: "USD", QuoteType: "CURRENCY"},
	}

	holdings := CalculateHoldings(transactions, quotes, "USD")

	if len(holdings) != 4 {
		t.Fatalf("got %d holdings, want 4 (BTC, AAPL, EUR, USD)", len(holdings))
	}
	if holdings[0].Asset != "BTC" {
		t.Errorf("largest instrument first, got %s", holdings[0].Asset)
	}
	if holdings[1].Asset != "AAPL" {
		t.Errorf("second instrument by value, got %s", holdings[1].Asset)
	}
	for _, h := range holdings[2:] {
		if !h.IsFiat {
			t.Errorf("expected only fiat rows at the end, got %+v", h)
		}
	}
}

func TestCombinedChange(t *testing.T) {
	// +10% asset move and +5% FX move compound, not add
	got := combinedChange(10, 5)
	if want := 15.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("combinedChange(10, 5) = %v, want %v", got, want)
	}
	if combinedChange(0, 0) != 0 {
		t.Errorf("combinedChange(0, 0) should be 0")
	}
}

func TestDailyPnLGuards(t *testing.T) {
	// a combined factor within epsilon of zero cannot be divided by
	if got := dailyPnL(1000, -100); got != 0 {
		t.Errorf("dailyPnL at -100%% = %v, want 0", got)
	}
	got := dailyPnL(1050, 5)
	if want := 50.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("dailyPnL(1050, 5) = %v, want %v", got, want)
	}
}
