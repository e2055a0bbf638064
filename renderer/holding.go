package renderer

import (
	"github.com/ewald/folio"
	"github.com/ewald/folio/date"
)

// HoldingsReport is the view model of the holdings report.
type HoldingsReport struct {
	Date       string
	Currency   string
	Total      string
	Daily      string
	DailyPct   string
	Profit     string
	ProfitPct  string
	Categories []CategoryRows
}

// CategoryRows groups the holdings of one category.
type CategoryRows struct {
	Name string
	Rows []HoldingRow
}

// HoldingRow is one preformatted holdings table line.
type HoldingRow struct {
	Asset  string
	Name   string
	Amount string
	Price  string
	Value  string
	Day    string
	Profit string
}

// HoldingsMarkdown renders the holdings snapshot grouped by category, in the
// order the calculator sorted them.
func HoldingsMarkdown(holdings []folio.Holding, summary folio.Summary, on date.Date) string {
	report := HoldingsReport{
		Date:      on.String(),
		Currency:  summary.Currency,
		Total:     Money(summary.Value, summary.Currency),
		Daily:     Money(summary.DailyPnL, summary.Currency),
		DailyPct:  Percent(summary.DailyPercent),
		Profit:    Money(summary.Profit, summary.Currency),
		ProfitPct: Percent(summary.ProfitPercent),
	}

	// categories appear in the order their first holding does; within one
	// category the calculator's sort order is preserved
	index := make(map[string]int)
	for _, h := range holdings {
		row := HoldingRow{
			Asset:  h.Asset,
			Name:   h.Name,
			Amount: Amount(h.Amount),
			Price:  Money(h.Price, summary.Currency),
			Value:  Money(h.Value, summary.Currency),
			Day:    Percent(h.ChangePercent),
			Profit: Money(h.Profit, summary.Currency),
		}
		name := string(h.Category)
		i, ok := index[name]
		if !ok {
			i = len(report.Categories)
			index[name] = i
			report.Categories = append(report.Categories, CategoryRows{Name: name})
		}
		report.Categories[i].Rows = append(report.Categories[i].Rows, row)
	}

	partials := map[string]string{
		"holdings_summary":  "holdings_summary.md",
		"holdings_category": "holdings_category.md",
	}
	return renderTemplate("holdings", "holdings.md", partials, &report)
}
