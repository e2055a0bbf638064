package renderer

import "github.com/ewald/folio/series"

// HistoryReport is the view model of the value-over-time report.
type HistoryReport struct {
	Timeframe string
	Currency  string
	Latest    string
	Change    string
	Rows      []HistoryRow
}

// HistoryRow is one preformatted history table line.
type HistoryRow struct {
	Date  string
	Value string
}

// timestampLayout depends on point density: intraday points need the clock,
// daily points only the day.
func timestampLayout(tf series.Timeframe) string {
	if tf == series.Day || tf == series.Week {
		return "2006-01-02 15:04"
	}
	return "2006-01-02"
}

// HistoryMarkdown renders a cleaned value series for one timeframe.
func HistoryMarkdown(points []series.Point, tf series.Timeframe, currency string) string {
	report := HistoryReport{Timeframe: string(tf), Currency: currency}

	layout := timestampLayout(tf)
	for _, p := range points {
		report.Rows = append(report.Rows, HistoryRow{
			Date:  p.When.UTC().Format(layout),
			Value: Money(p.Value, currency),
		})
	}
	if n := len(points); n > 0 {
		report.Latest = Money(points[n-1].Value, currency)
		if first := points[0].Value; first != 0 {
			report.Change = Percent((points[n-1].Value - first) / first * 100)
		}
	}

	partials := map[string]string{"history_footer": "history_footer.md"}
	return renderTemplate("history", "history.md", partials, &report)
}
