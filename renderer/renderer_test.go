package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ewald/folio"
	"github.com/ewald/folio/date"
	"github.com/ewald/folio/series"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		value float64
		code  string
		want  string
	}{
		{1234.5, "USD", "$1,234.50"},
		{-20, "USD", "-$20.00"},
		{0.12345678, "WEIRDCOIN", "0.12 WEIRDCOIN"},
		{5, "", "$5.00"},
	}
	for _, c := range cases {
		if got := Money(c.value, c.code); got != c.want {
			t.Errorf("Money(%v, %q) = %q, want %q", c.value, c.code, got, c.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(1.234); got != "+1.23%" {
		t.Errorf("Percent = %q", got)
	}
	if got := Percent(-0.5); got != "-0.50%" {
		t.Errorf("Percent = %q", got)
	}
}

func TestAmount(t *testing.T) {
	cases := map[float64]string{
		0.5:        "0.5",
		1:          "1",
		0.12345678: "0.12345678",
	}
	for value, want := range cases {
		if got := Amount(value); got != want {
			t.Errorf("Amount(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestHoldingsMarkdown(t *testing.T) {
	holdings := []folio.Holding{
		{Asset: "BTC", Name: "Bitcoin", Amount: 0.5, Value: 30000, ChangePercent: 2.5, Profit: 5000, Category: folio.Crypto},
		{Asset: "AAPL", Name: "Apple Inc.", Amount: 10, Value: 1905, Category: folio.Shares},
		{Asset: "USD", Amount: 1000, Value: 1000, Category: folio.Currencies, IsFiat: true},
	}
	summary := folio.Summarize(holdings, "USD")

	out := HoldingsMarkdown(holdings, summary, date.MustParse("2024-06-15"))

	for _, want := range []string{
		"# Holdings on 2024-06-15",
		"## Crypto",
		"## Shares",
		"## Currencies",
		"| BTC | Bitcoin | 0.5 |",
		"$30,000.00",
		"+2.50%",
		"$32,905.00", // total
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report is missing %q:\n%s", want, out)
		}
	}

	// categories render in first-seen order
	if strings.Index(out, "## Crypto") > strings.Index(out, "## Shares") {
		t.Error("category order does not follow the holdings order")
	}
}

func TestHistoryMarkdown(t *testing.T) {
	when := time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)
	points := []series.Point{
		{When: when.Add(-time.Hour), Value: 1000},
		{When: when, Value: 1100},
	}

	out := HistoryMarkdown(points, series.Day, "USD")

	for _, want := range []string{
		"# Portfolio Value (1D)",
		"2024-06-15 14:30", // intraday rows carry the clock
		"$1,100.00",
		"Latest: **$1,100.00**",
		"+10.00%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report is missing %q:\n%s", want, out)
		}
	}

	// daily timeframes drop the clock
	out = HistoryMarkdown(points, series.Year, "USD")
	if strings.Contains(out, "14:30") {
		t.Error("daily report should not show intraday timestamps")
	}

	out = HistoryMarkdown(nil, series.Day, "USD")
	if !strings.Contains(out, "No data for this timeframe.") {
		t.Errorf("empty report = %q", out)
	}
}

func TestLogMarkdown(t *testing.T) {
	ledger := folio.NewLedger()
	older := folio.NewTransaction(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), folio.Buy, decimal.NewFromInt(1), "BTC-USD")
	older.QuoteAmount = decimal.NewFromInt(40000)
	older.QuoteCurrency = "USD"
	newer := folio.NewTransaction(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), folio.Deposit, decimal.NewFromInt(500), "USD")
	if err := ledger.Append(older, newer); err != nil {
		t.Fatal(err)
	}

	out := LogMarkdown(ledger, "")

	if !strings.Contains(out, "# Transactions") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "40000 USD") {
		t.Errorf("missing quote leg:\n%s", out)
	}
	if strings.Index(out, "2024-02-01") > strings.Index(out, "2024-01-01") {
		t.Error("log is not newest first")
	}
}
