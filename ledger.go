package folio

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/ewald/folio/date"
)

// Ledger holds the transaction list.
//
// Transactions are kept in chronological order; same-day transactions keep
// their insertion order (the sort is stable). Balance math is a pure sum, so
// same-day order never changes a final balance or a cash-flow total.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger { return &Ledger{} }

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Append validates and appends transactions, maintaining chronological order.
func (l *Ledger) Append(txs ...Transaction) error {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid %s transaction on %s: %w", tx.Type, tx.Date.Format(date.Format), err)
		}
	}
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
	return nil
}

// Replace substitutes the transaction carrying the same id. This is the only
// way a recorded transaction changes. It reports whether the id was found.
func (l *Ledger) Replace(tx Transaction) (bool, error) {
	if err := tx.Validate(); err != nil {
		return false, fmt.Errorf("invalid replacement transaction: %w", err)
	}
	for i, existing := range l.transactions {
		if existing.ID == tx.ID {
			l.transactions[i] = tx
			l.stableSort()
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the transaction with the given id and reports whether it
// was found.
func (l *Ledger) Delete(id string) bool {
	for i, tx := range l.transactions {
		if tx.ID == id {
			l.transactions = slices.Delete(l.transactions, i, i+1)
			return true
		}
	}
	return false
}

// Get returns the transaction with the given id.
func (l *Ledger) Get(id string) (Transaction, bool) {
	for _, tx := range l.transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// stableSort sorts by calendar day, keeping insertion order within a day.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Day().Before(l.transactions[j].Day())
	})
}

// Transactions returns an iterator over transactions in chronological order,
// keeping only those accepted by every filter.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range l.transactions {
			for _, filter := range filters {
				if !filter(tx) {
					continue next
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Slice returns a copy of the transactions accepted by every filter.
func (l *Ledger) Slice(filters ...func(Transaction) bool) []Transaction {
	out := make([]Transaction, 0, len(l.transactions))
	for _, tx := range l.Transactions(filters...) {
		out = append(out, tx)
	}
	return out
}

// ByPortfolio returns a predicate keeping one portfolio partition.
// PortfolioAll is virtual: it accepts every transaction.
func ByPortfolio(id string) func(Transaction) bool {
	return func(tx Transaction) bool {
		if id == "" || id == PortfolioAll {
			return true
		}
		return tx.PortfolioID == id
	}
}

// ByAsset returns a predicate keeping transactions of one asset key.
func ByAsset(asset string) func(Transaction) bool {
	key := Normalize(asset)
	return func(tx Transaction) bool { return tx.Asset() == key }
}

// OldestDay returns the calendar day of the earliest transaction, or a zero
// date when the ledger is empty.
func (l *Ledger) OldestDay() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[0].Day()
}

// NewestDay returns the calendar day of the latest transaction, or a zero
// date when the ledger is empty.
func (l *Ledger) NewestDay() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[len(l.transactions)-1].Day()
}

// Symbols returns the unique raw base symbols in first-seen order. This is
// the set of instruments quotes and histories are fetched for.
func (l *Ledger) Symbols() []string {
	seen := make(map[string]struct{})
	var symbols []string
	for _, tx := range l.transactions {
		if tx.BaseCurrency == "" {
			continue
		}
		if _, ok := seen[tx.BaseCurrency]; ok {
			continue
		}
		seen[tx.BaseCurrency] = struct{}{}
		symbols = append(symbols, tx.BaseCurrency)
	}
	return symbols
}

// Portfolios returns the unique portfolio ids in the ledger, sorted.
// The virtual PortfolioAll is not included.
func (l *Ledger) Portfolios() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, tx := range l.transactions {
		id := tx.PortfolioID
		if id == "" || id == PortfolioAll {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
