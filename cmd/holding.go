package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ewald/folio"
	"github.com/ewald/folio/date"
	"github.com/ewald/folio/renderer"
)

// holdingCmd displays the valued holdings snapshot.
type holdingCmd struct{}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display current holdings valued at live prices" }
func (*holdingCmd) Usage() string {
	return `pft holding

  Folds the ledger into per-asset balances, values them against live quotes
  in the reporting currency, and displays them grouped by category.
`
}
func (*holdingCmd) SetFlags(*flag.FlagSet) {}

func (c *holdingCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, summary, status := currentHoldings(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.HoldingsMarkdown(holdings, summary, date.Today()))
	return subcommands.ExitSuccess
}

// summaryCmd displays only the headline figures.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display total value, daily move, and profit" }
func (*summaryCmd) Usage() string {
	return `pft summary

  Displays the portfolio totals without the per-asset breakdown.
`
}
func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, summary, status := currentHoldings(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	md := fmt.Sprintf("# Portfolio on %s\n\nTotal **%s** | Today %s (%s) | Overall %s (%s)\n",
		date.Today(),
		renderer.Money(summary.Value, summary.Currency),
		renderer.Money(summary.DailyPnL, summary.Currency),
		renderer.Percent(summary.DailyPercent),
		renderer.Money(summary.Profit, summary.Currency),
		renderer.Percent(summary.ProfitPercent))
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// currentHoldings loads the ledger, fetches live quotes, and computes the
// valued snapshot for the selected portfolio.
func currentHoldings(ctx context.Context) ([]folio.Holding, folio.Summary, subcommands.ExitStatus) {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return nil, folio.Summary{}, subcommands.ExitFailure
	}
	transactions := ledger.Slice(folio.ByPortfolio(*portfolioID))

	quotes, err := fetchQuotes(ctx, transactions, *baseCurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: quotes unavailable, values degrade to zero: %v\n", err)
		quotes = folio.QuoteMap{}
	}

	holdings := folio.CalculateHoldings(transactions, quotes, *baseCurrency)
	return holdings, folio.Summarize(holdings, *baseCurrency), subcommands.ExitSuccess
}

// logCmd lists the recorded transactions.
type logCmd struct{}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list recorded transactions, newest first" }
func (*logCmd) Usage() string {
	return `pft log

  Lists the transactions of the selected portfolio with their ids.
`
}
func (*logCmd) SetFlags(*flag.FlagSet) {}

func (c *logCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LogMarkdown(ledger, *portfolioID))
	return subcommands.ExitSuccess
}
