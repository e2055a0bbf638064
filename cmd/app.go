// Package cmd implements the CLI application to track a portfolio.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/ewald/folio"
	"github.com/ewald/folio/yahoo"
)

// Commands lists every subcommand; a main package registers and executes them.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&depositCmd{},
	&withdrawCmd{},
	&deleteCmd{},
	&logCmd{},
	&holdingCmd{},
	&summaryCmd{},
	&historyCmd{},
	&importCmd{},
	&exportCmd{},
	&topicCmd{},
	&assistCmd{},
}

// As a short lived CLI application, global flags and a process-wide market
// client are fine.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file (JSONL format)")
var baseCurrency = flag.String("currency", "USD", "Reporting currency for values and profit")
var portfolioID = flag.String("portfolio", folio.PortfolioAll, "Portfolio partition to report on ('all' aggregates every partition)")
var plainOutput = flag.Bool("plain", false, "Print raw markdown instead of styled terminal output")

var market = yahoo.NewClient(yahoo.NewCache())

// DecodeLedger loads the ledger file. A missing file is an empty ledger, not
// an error, so every command works on a fresh setup.
func DecodeLedger() (*folio.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		return folio.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return folio.DecodeLedger(f)
}

// EncodeLedger rewrites the ledger file.
func EncodeLedger(ledger *folio.Ledger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return folio.EncodeLedger(f, ledger)
}

// AppendTransaction appends a single transaction to the ledger file.
func AppendTransaction(tx folio.Transaction) subcommands.ExitStatus {
	if err := tx.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid transaction: %v\n", err)
		return subcommands.ExitUsageError
	}
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := folio.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s %s %s (id %s)\n", tx.Type, tx.BaseAmount, tx.BaseCurrency, tx.ID)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when styling is off or the renderer cannot be built.
func printMarkdown(md string) {
	if !*plainOutput {
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100)); err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Print(out)
				return
			}
		}
	}
	fmt.Print(md)
}

// fetchQuotes fetches live quotes for every ledger symbol plus the FX pairs
// needed to convert each asset's quote currency into the reporting currency.
func fetchQuotes(ctx context.Context, transactions []folio.Transaction, base string) (folio.QuoteMap, error) {
	_, currencies := folio.QuoteCurrencies(transactions)

	var symbols []string
	seen := make(map[string]bool)
	for _, tx := range transactions {
		if tx.BaseCurrency != "" && !seen[tx.BaseCurrency] {
			seen[tx.BaseCurrency] = true
			symbols = append(symbols, tx.BaseCurrency)
		}
	}
	base = folio.Normalize(base)
	for _, currency := range currencies {
		pair := currency + base + "=X"
		if currency != base && !seen[pair] {
			seen[pair] = true
			symbols = append(symbols, pair)
		}
	}
	return market.GetQuotes(ctx, symbols)
}
