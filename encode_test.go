package folio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestEncodeDecodeLedgerRoundTrip(t *testing.T) {
	buy := tx("2024-01-01", Buy, 0.5, "BTC-USD", 20000, "USD")
	buy.Fee = decimal.NewFromFloat(12.5)
	buy.FeeCurrency = "USD"
	buy.PortfolioID = "savings"
	deposit := tx("2024-02-01", Deposit, 1000, "EUR=X", 0, "")

	ledger := NewLedger()
	if err := ledger.Append(buy, deposit); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatal(err)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Len() != 2 {
		t.Fatalf("decoded %d transactions, want 2", decoded.Len())
	}
	got, ok := decoded.Get(buy.ID)
	if !ok {
		t.Fatalf("transaction %s lost in round trip", buy.ID)
	}
	if !got.Equal(buy) {
		t.Errorf("round trip changed the transaction:\ngot  %+v\nwant %+v", got, buy)
	}
}

func TestEncodeLedgerOneLinePerTransaction(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Append(tx("2024-01-01", Buy, 1, "BTC-USD", 100, "USD")); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected exactly one line, got %q", out)
	}
	// decimals stay plain numbers, not quoted strings
	if strings.Contains(out, `"baseAmount":"`) {
		t.Errorf("baseAmount encoded as a string: %q", out)
	}
}

func TestDecodeLedgerSkipsEmptyLines(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Append(tx("2024-01-01", Buy, 1, "BTC-USD", 100, "USD")); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatal(err)
	}

	withBlank := "\n" + buf.String() + "\n\n"
	decoded, err := DecodeLedger(strings.NewReader(withBlank))
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Len() != 1 {
		t.Errorf("decoded %d transactions, want 1", decoded.Len())
	}
}

func TestDecodeLedgerRejectsMalformedLine(t *testing.T) {
	if _, err := DecodeLedger(strings.NewReader("{not json}\n")); err == nil {
		t.Error("malformed line accepted")
	}
	// structurally valid JSON but an invalid transaction
	if _, err := DecodeLedger(strings.NewReader(`{"id":"x","type":"BUY"}` + "\n")); err == nil {
		t.Error("invalid transaction accepted")
	}
}
