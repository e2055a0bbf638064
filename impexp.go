package folio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// csvHeader is the exchange-export column layout imports and exports use.
var csvHeader = []string{
	"Date", "Way", "Base amount", "Base currency", "Base type",
	"Quote amount", "Quote currency", "Exchange", "Fee amount", "Fee currency (name)",
}

// csvDateLayouts are the date spellings accepted on import, tried in order.
var csvDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ImportCSV reads transactions from an exchange-export CSV and returns a
// ledger. Rows with no base currency are skipped; a row with an invalid date
// or amount aborts the import, so a bad export never half-loads.
//
// The base symbol is rewritten for market-data lookup: the "BTC (Bitcoin)"
// spelling is cut at the first space, crypto rows get a -USD pair suffix and
// non-USD fiat rows the =X marker.
func ImportCSV(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Date", "Way", "Base amount", "Base currency"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv is missing the %q column", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	ledger := NewLedger()
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		symbol := marketSymbol(field(record, "Base currency"), field(record, "Base type"))
		if symbol == "" {
			continue
		}

		day, err := parseCSVDate(field(record, "Date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		typ, err := ParseTxType(strings.ToUpper(field(record, "Way")))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		baseAmount, err := parseCSVAmount(field(record, "Base amount"))
		if err != nil {
			return nil, fmt.Errorf("line %d: base amount: %w", line, err)
		}
		quoteAmount, err := parseCSVAmount(field(record, "Quote amount"))
		if err != nil {
			return nil, fmt.Errorf("line %d: quote amount: %w", line, err)
		}
		fee, err := parseCSVAmount(field(record, "Fee amount"))
		if err != nil {
			return nil, fmt.Errorf("line %d: fee amount: %w", line, err)
		}

		tx := NewTransaction(day, typ, baseAmount, symbol)
		tx.QuoteAmount = quoteAmount
		tx.QuoteCurrency = field(record, "Quote currency")
		tx.Fee = fee
		tx.FeeCurrency = field(record, "Fee currency (name)")
		if err := ledger.Append(tx); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return ledger, nil
}

// marketSymbol rewrites an export's human symbol spelling into the form
// market data is keyed by.
func marketSymbol(raw, baseType string) string {
	symbol, _, _ := strings.Cut(strings.TrimSpace(raw), " ")
	if symbol == "" {
		return ""
	}
	switch strings.ToUpper(baseType) {
	case "CRYPTO":
		if !strings.Contains(symbol, "-") {
			symbol += "-USD"
		}
	case "FIAT":
		if !strings.EqualFold(symbol, "USD") && !strings.HasSuffix(strings.ToUpper(symbol), fxMarker) {
			symbol += fxMarker
		}
	}
	return symbol
}

func parseCSVDate(s string) (time.Time, error) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func parseCSVAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}

// ExportCSV writes the ledger in the import column layout. The base type is
// derived back from the symbol form.
func ExportCSV(w io.Writer, ledger *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, tx := range ledger.Transactions() {
		record := []string{
			tx.Date.UTC().Format(time.RFC3339),
			string(tx.Type),
			tx.BaseAmount.String(),
			tx.BaseCurrency,
			baseType(tx.BaseCurrency),
			tx.QuoteAmount.String(),
			tx.QuoteCurrency,
			"", // exchange is not tracked
			tx.Fee.String(),
			tx.FeeCurrency,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func baseType(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	switch {
	case strings.HasSuffix(s, fxMarker) || s == "USD":
		return "FIAT"
	case strings.Contains(s, "-"):
		return "CRYPTO"
	default:
		return "STOCK"
	}
}
