package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/ewald/folio"
	"github.com/ewald/folio/date"
	"github.com/ewald/folio/renderer"
	"github.com/ewald/folio/series"
	"github.com/ewald/folio/yahoo"
)

// historyCmd displays the value-over-time series.
type historyCmd struct {
	timeframe string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display portfolio value over time" }
func (*historyCmd) Usage() string {
	return `pft history [-timeframe 1D|1W|1M|1Y|YTD|ALL]

  Replays the ledger day by day against historical prices and exchange
  rates, cleans the series for the timeframe, and displays it.
`
}
func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timeframe, "timeframe", string(series.All), "Display timeframe")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tf, err := series.ParseTimeframe(c.timeframe)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	transactions := ledger.Slice(folio.ByPortfolio(*portfolioID))
	if len(transactions) == 0 {
		fmt.Println("No transactions recorded yet.")
		return subcommands.ExitSuccess
	}

	histories := fetchHistories(ctx, transactions, *baseCurrency, tf)
	points := folio.CalculateHistory(transactions, histories, *baseCurrency, nil)

	now := time.Now().UTC()
	raw := make([]series.Point, 0, len(points))
	for _, p := range points {
		raw = append(raw, series.Point{When: p.Date.Time(), Value: p.Value})
	}
	cleaned := series.Clean(raw, tf, now)

	// end the chart at the live value, not at yesterday's close
	holdings, summary, status := currentHoldings(ctx)
	if status == subcommands.ExitSuccess && len(holdings) > 0 {
		cleaned = series.AppendLive(cleaned, summary.Value, now)
	}

	printMarkdown(renderer.HistoryMarkdown(cleaned, tf, folio.Normalize(*baseCurrency)))
	return subcommands.ExitSuccess
}

// fetchHistories fetches and pre-smooths the price series of every held
// symbol plus the FX series converting each quote currency into the
// reporting currency. A symbol whose fetch fails is simply absent: the
// replay values it at zero instead of failing the whole report.
func fetchHistories(ctx context.Context, transactions []folio.Transaction, base string, tf series.Timeframe) map[string]*date.History[float64] {
	histories := make(map[string]*date.History[float64])
	symbols, currencies := folio.QuoteCurrencies(transactions)
	baseKey := folio.Normalize(base)

	// history always reaches back to the first transaction; the timeframe
	// only drives sampling density, so short views fetch the full span too
	fetchRange := series.All
	if tf == series.Day || tf == series.Week {
		fetchRange = tf
	}

	for _, symbol := range symbols {
		points, err := market.GetHistory(ctx, symbol, fetchRange)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: no history for %s: %v\n", symbol, err)
			continue
		}
		histories[symbol] = series.SmoothHistory(yahoo.History(points))
	}
	for _, currency := range currencies {
		if currency == baseKey {
			continue
		}
		pair := currency + baseKey + "=X"
		if _, ok := histories[pair]; ok {
			continue
		}
		h, err := market.GetFxHistory(ctx, currency, baseKey, fetchRange)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: no rate history for %s/%s: %v\n", currency, baseKey, err)
			continue
		}
		histories[pair] = series.SmoothHistory(h)
	}
	return histories
}
