package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ewald/folio"
	"github.com/ewald/folio/date"
)

// tradeFlags holds the flags shared by every transaction subcommand.
type tradeFlags struct {
	date          string
	symbol        string
	amount        string
	quoteAmount   string
	quoteCurrency string
	fee           string
	feeCurrency   string
	portfolio     string
}

func (c *tradeFlags) set(f *flag.FlagSet, withQuote bool) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date")
	f.StringVar(&c.symbol, "s", "", "Raw symbol of the base asset (e.g. BTC-USD, VOD.L, EUR=X)")
	f.StringVar(&c.amount, "amount", "", "Base asset amount, entered positive")
	f.StringVar(&c.portfolio, "p", "", "Portfolio partition id")
	if withQuote {
		f.StringVar(&c.quoteAmount, "quote", "", "Quote currency amount exchanged")
		f.StringVar(&c.quoteCurrency, "quote-currency", "", "Quote currency (inferred from the symbol when empty)")
		f.StringVar(&c.fee, "fee", "", "Fee amount")
		f.StringVar(&c.feeCurrency, "fee-currency", "", "Fee currency")
	}
}

// transaction builds the transaction from the parsed flags.
func (c *tradeFlags) transaction(typ folio.TxType) (folio.Transaction, error) {
	var zero folio.Transaction
	on, err := date.Parse(c.date)
	if err != nil {
		return zero, err
	}
	amount, err := parseAmount(c.amount, "amount")
	if err != nil {
		return zero, err
	}

	tx := folio.NewTransaction(on.Time().Add(timeOfDay()), typ, amount, c.symbol)
	tx.PortfolioID = c.portfolio
	if c.quoteAmount != "" {
		if tx.QuoteAmount, err = parseAmount(c.quoteAmount, "quote"); err != nil {
			return zero, err
		}
		tx.QuoteCurrency = c.quoteCurrency
	}
	if c.fee != "" {
		if tx.Fee, err = parseAmount(c.fee, "fee"); err != nil {
			return zero, err
		}
		tx.FeeCurrency = c.feeCurrency
	}
	return tx, nil
}

// timeOfDay keeps the clock on transactions entered today, so same-day
// entries preserve their order in exports.
func timeOfDay() time.Duration {
	now := time.Now().UTC()
	return time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute + time.Duration(now.Second())*time.Second
}

func parseAmount(s, name string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("missing -%s flag", name)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid -%s value %q: %w", name, s, err)
	}
	return d, nil
}

// record parses flags into a transaction of the given type and appends it.
func (c *tradeFlags) record(typ folio.TxType) subcommands.ExitStatus {
	tx, err := c.transaction(typ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return AppendTransaction(tx)
}

type buyCmd struct{ tradeFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of an asset" }
func (*buyCmd) Usage() string {
	return `pft buy -s <symbol> -amount <amount> [-quote <amount>] [-quote-currency <ccy>] [-fee <amount> -fee-currency <ccy>] [-d <date>] [-p <portfolio>]

  Records a buy: the base asset balance goes up, the quote currency balance
  goes down by the quote amount.
`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.set(f, true) }
func (c *buyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.record(folio.Buy)
}

type sellCmd struct{ tradeFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of an asset" }
func (*sellCmd) Usage() string {
	return `pft sell -s <symbol> -amount <amount> [-quote <amount>] [-quote-currency <ccy>] [-fee <amount> -fee-currency <ccy>] [-d <date>] [-p <portfolio>]

  Records a sale: the base asset balance goes down, the quote currency
  balance goes up by the quote amount.
`
}
func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.set(f, true) }
func (c *sellCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.record(folio.Sell)
}

type depositCmd struct{ tradeFlags }

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record an asset moving into the portfolio" }
func (*depositCmd) Usage() string {
	return `pft deposit -s <symbol> -amount <amount> [-d <date>] [-p <portfolio>]

  Records a deposit with no counter-leg, e.g. a salary payment or an
  incoming transfer.
`
}
func (c *depositCmd) SetFlags(f *flag.FlagSet) { c.set(f, false) }
func (c *depositCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.record(folio.Deposit)
}

type withdrawCmd struct{ tradeFlags }

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record an asset moving out of the portfolio" }
func (*withdrawCmd) Usage() string {
	return `pft withdraw -s <symbol> -amount <amount> [-d <date>] [-p <portfolio>]

  Records a withdrawal with no counter-leg, e.g. a transfer to an external
  wallet.
`
}
func (c *withdrawCmd) SetFlags(f *flag.FlagSet) { c.set(f, false) }
func (c *withdrawCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.record(folio.Withdraw)
}

type deleteCmd struct {
	id string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a transaction by id" }
func (*deleteCmd) Usage() string {
	return `pft delete -id <transaction-id>

  Removes one transaction from the ledger. Use 'pft log' to find ids.
`
}
func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to delete")
}
func (c *deleteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: missing -id flag")
		return subcommands.ExitUsageError
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if !ledger.Delete(c.id) {
		fmt.Fprintf(os.Stderr, "Error: no transaction with id %q\n", c.id)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted transaction %s\n", c.id)
	return subcommands.ExitSuccess
}
