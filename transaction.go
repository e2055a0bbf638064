package folio

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ewald/folio/date"
)

// TxType identifies the effect of a transaction on balances.
type TxType string

const (
	Buy      TxType = "BUY"
	Sell     TxType = "SELL"
	Deposit  TxType = "DEPOSIT"
	Withdraw TxType = "WITHDRAW"
)

// ParseTxType parses a transaction type string.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case Buy, Sell, Deposit, Withdraw:
		return TxType(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// PortfolioAll is the virtual portfolio aggregating every partition.
const PortfolioAll = "all"

// Transaction is one immutable ledger event. Amounts are entered positive;
// the direction is encoded by Type. A transaction never changes after
// creation except by an explicit replace-by-id.
type Transaction struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Type          TxType          `json:"type"`
	BaseAmount    decimal.Decimal `json:"baseAmount"`
	BaseCurrency  string          `json:"baseCurrency"`
	QuoteAmount   decimal.Decimal `json:"quoteAmount,omitempty"`
	QuoteCurrency string          `json:"quoteCurrency,omitempty"`
	Fee           decimal.Decimal `json:"fee,omitempty"`
	FeeCurrency   string          `json:"feeCurrency,omitempty"`
	PortfolioID   string          `json:"portfolioId,omitempty"`
}

// NewTransaction creates a transaction with a fresh id.
func NewTransaction(day time.Time, typ TxType, baseAmount decimal.Decimal, baseCurrency string) Transaction {
	return Transaction{
		ID:           uuid.NewString(),
		Date:         day,
		Type:         typ,
		BaseAmount:   baseAmount,
		BaseCurrency: baseCurrency,
	}
}

// Day collapses the transaction timestamp to its calendar day, the
// granularity the replay works at.
func (t Transaction) Day() date.Date { return date.FromTime(t.Date) }

// Asset returns the canonical asset key of the traded instrument.
func (t Transaction) Asset() string { return Normalize(t.BaseCurrency) }

// ResolvedQuote returns the transaction's explicit quote currency, else the
// one inferred from the raw symbol's suffix, defaulting to USD.
func (t Transaction) ResolvedQuote() string {
	if t.QuoteCurrency != "" {
		return Normalize(t.QuoteCurrency)
	}
	return QuoteSuffix(t.BaseCurrency)
}

// Validate rejects malformed transactions at ingestion so they never reach
// the replay: unknown type, missing symbol, negative amounts, zero date.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return errors.New("transaction id is missing")
	}
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return errors.New("transaction date is missing")
	}
	if t.BaseCurrency == "" {
		return errors.New("transaction base currency is missing")
	}
	if t.BaseAmount.IsNegative() {
		return fmt.Errorf("transaction base amount must not be negative, got %s", t.BaseAmount)
	}
	if t.QuoteAmount.IsNegative() {
		return fmt.Errorf("transaction quote amount must not be negative, got %s", t.QuoteAmount)
	}
	if t.Fee.IsNegative() {
		return fmt.Errorf("transaction fee must not be negative, got %s", t.Fee)
	}
	if (t.Type == Buy || t.Type == Sell) && t.BaseAmount.IsZero() {
		return fmt.Errorf("%s transaction base amount must be positive", t.Type)
	}
	return nil
}

// Equal reports whether two transactions carry the same data.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Date.Equal(o.Date) &&
		t.Type == o.Type &&
		t.BaseAmount.Equal(o.BaseAmount) &&
		t.BaseCurrency == o.BaseCurrency &&
		t.QuoteAmount.Equal(o.QuoteAmount) &&
		t.QuoteCurrency == o.QuoteCurrency &&
		t.Fee.Equal(o.Fee) &&
		t.FeeCurrency == o.FeeCurrency &&
		t.PortfolioID == o.PortfolioID
}
