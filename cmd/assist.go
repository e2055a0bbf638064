package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/ewald/folio"
	"github.com/ewald/folio/agent"
	"github.com/ewald/folio/date"
	"github.com/ewald/folio/renderer"
	"github.com/ewald/folio/series"
)

// assistCmd starts the conversational assistant.
type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "ask questions about the portfolio in an interactive session"
}
func (*assistCmd) Usage() string {
	return `pft assist [initial question]

  Starts an interactive session with an assistant grounded in the current
  holdings and value history. Requires a Gemini API key in the environment.
`
}
func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	holdings, summary, status := currentHoldings(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	reports := []string{renderer.HoldingsMarkdown(holdings, summary, date.Today())}

	// history is context, not a hard requirement for a useful session
	if ledger, err := DecodeLedger(); err == nil && ledger.Len() > 0 {
		transactions := ledger.Slice(folio.ByPortfolio(*portfolioID))
		histories := fetchHistories(ctx, transactions, *baseCurrency, series.All)
		points := folio.CalculateHistory(transactions, histories, *baseCurrency, nil)
		raw := make([]series.Point, 0, len(points))
		for _, p := range points {
			raw = append(raw, series.Point{When: p.Date.Time(), Value: p.Value})
		}
		cleaned := series.Clean(raw, series.All, time.Now().UTC())
		reports = append(reports, renderer.HistoryMarkdown(cleaned, series.All, folio.Normalize(*baseCurrency)))
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing assistant client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin)
	if err := a.Start(ctx, client, reports...); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := a.Run(ctx, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Assistant failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
