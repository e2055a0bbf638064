package renderer

import (
	"slices"
	"time"

	"github.com/ewald/folio"
)

// LogReport is the view model of the transaction log report.
type LogReport struct {
	Portfolio string
	Rows      []LogRow
}

// LogRow is one preformatted transaction line.
type LogRow struct {
	ID     string
	Date   string
	Type   string
	Amount string
	Symbol string
	Quote  string
	Fee    string
}

// LogMarkdown renders the ledger's transactions, newest first.
func LogMarkdown(ledger *folio.Ledger, portfolio string) string {
	report := LogReport{Portfolio: portfolio}
	for _, tx := range ledger.Transactions(folio.ByPortfolio(portfolio)) {
		row := LogRow{
			ID:     tx.ID,
			Date:   tx.Date.UTC().Format(time.DateOnly),
			Type:   string(tx.Type),
			Amount: tx.BaseAmount.String(),
			Symbol: tx.BaseCurrency,
		}
		if !tx.QuoteAmount.IsZero() {
			row.Quote = tx.QuoteAmount.String() + " " + tx.QuoteCurrency
		}
		if !tx.Fee.IsZero() {
			row.Fee = tx.Fee.String() + " " + tx.FeeCurrency
		}
		report.Rows = append(report.Rows, row)
	}
	// newest on top
	slices.Reverse(report.Rows)
	return renderTemplate("log", "log.md", map[string]string{}, &report)
}
