package folio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleCSV = `Date,Way,Base amount,Base currency,Base type,Quote amount,Quote currency,Exchange,Fee amount,Fee currency (name)
2024-01-15,BUY,0.5,BTC (Bitcoin),CRYPTO,20000,USD,Kraken,10,USD
2024-02-01,DEPOSIT,1000,EUR,FIAT,,,,,
2024-03-10,BUY,10,VOD.L,STOCK,500,GBP,,,
`

func TestImportCSV(t *testing.T) {
	ledger, err := ImportCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 3 {
		t.Fatalf("imported %d transactions, want 3", ledger.Len())
	}

	txs := ledger.Slice()

	btc := txs[0]
	if btc.BaseCurrency != "BTC-USD" {
		t.Errorf("crypto symbol = %q, want BTC-USD (first word, pair suffix)", btc.BaseCurrency)
	}
	if btc.Type != Buy || !btc.BaseAmount.Equal(decimal.NewFromFloat(0.5)) {
		t.Errorf("unexpected first transaction: %+v", btc)
	}
	if !btc.Fee.Equal(decimal.NewFromInt(10)) || btc.FeeCurrency != "USD" {
		t.Errorf("fee not imported: %+v", btc)
	}

	eur := txs[1]
	if eur.BaseCurrency != "EUR=X" {
		t.Errorf("fiat symbol = %q, want EUR=X", eur.BaseCurrency)
	}
	if eur.Type != Deposit || !eur.QuoteAmount.IsZero() {
		t.Errorf("unexpected deposit row: %+v", eur)
	}

	vod := txs[2]
	if vod.BaseCurrency != "VOD.L" {
		t.Errorf("stock symbol = %q, want VOD.L unchanged", vod.BaseCurrency)
	}
	if vod.QuoteCurrency != "GBP" {
		t.Errorf("quote currency = %q, want GBP", vod.QuoteCurrency)
	}
}

func TestImportCSVSkipsEmptySymbolRows(t *testing.T) {
	csv := "Date,Way,Base amount,Base currency\n2024-01-01,BUY,1,\n"
	ledger, err := ImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 0 {
		t.Errorf("imported %d transactions from empty-symbol rows, want 0", ledger.Len())
	}
}

func TestImportCSVRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"invalid date":   "Date,Way,Base amount,Base currency\nnot-a-date,BUY,1,AAPL\n",
		"invalid amount": "Date,Way,Base amount,Base currency\n2024-01-01,BUY,one,AAPL\n",
		"invalid way":    "Date,Way,Base amount,Base currency\n2024-01-01,LEND,1,AAPL\n",
		"missing column": "Date,Way,Base amount\n2024-01-01,BUY,1\n",
	}
	for name, csv := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ImportCSV(strings.NewReader(csv)); err == nil {
				t.Error("bad csv accepted")
			}
		})
	}
}

func TestExportCSVRoundTrip(t *testing.T) {
	original, err := ImportCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, original); err != nil {
		t.Fatal(err)
	}

	reimported, err := ImportCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if reimported.Len() != original.Len() {
		t.Fatalf("round trip changed the count: %d, want %d", reimported.Len(), original.Len())
	}
	got := reimported.Slice()
	for i, want := range original.Slice() {
		if got[i].BaseCurrency != want.BaseCurrency || got[i].Type != want.Type || !got[i].BaseAmount.Equal(want.BaseAmount) {
			t.Errorf("row %d changed: got %+v want %+v", i, got[i], want)
		}
	}
}
