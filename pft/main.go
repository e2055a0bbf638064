// Command pft is a client-side portfolio tracker driven by a transaction
// ledger.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/ewald/folio/cmd"
)

func main() {
	// shell completion: handles COMP_LINE and exits when invoked by the shell
	completion().Complete("pft")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	timeframes := predict.Set{"1D", "1W", "1M", "1Y", "YTD", "ALL"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.jsonl"),
			"currency":    predict.Set{"USD", "EUR", "GBP"},
			"portfolio":   predict.Something,
			"plain":       predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"buy":        {Flags: map[string]complete.Predictor{"s": predict.Something, "amount": predict.Something, "quote": predict.Something, "quote-currency": predict.Something, "fee": predict.Something, "fee-currency": predict.Something, "d": predict.Something, "p": predict.Something}},
			"sell":       {Flags: map[string]complete.Predictor{"s": predict.Something, "amount": predict.Something, "quote": predict.Something, "quote-currency": predict.Something, "fee": predict.Something, "fee-currency": predict.Something, "d": predict.Something, "p": predict.Something}},
			"deposit":    {Flags: map[string]complete.Predictor{"s": predict.Something, "amount": predict.Something, "d": predict.Something, "p": predict.Something}},
			"withdraw":   {Flags: map[string]complete.Predictor{"s": predict.Something, "amount": predict.Something, "d": predict.Something, "p": predict.Something}},
			"delete":     {Flags: map[string]complete.Predictor{"id": predict.Something}},
			"log":        {},
			"holding":    {},
			"summary":    {},
			"history":    {Flags: map[string]complete.Predictor{"timeframe": timeframes}},
			"import":     {Flags: map[string]complete.Predictor{"file": predict.Files("*.csv")}},
			"export":     {},
			"help-topic": {Args: predict.Set{"overview", "transactions", "symbols", "holdings", "history", "impexp", "*"}},
			"assist":     {},
		},
	}
}
