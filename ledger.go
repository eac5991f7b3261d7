package folio

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// InstrumentKey builds the composite instrument identifier from a ticker and
// the exchange suffix of its listing, e.g. ("SWDA", "MI") -> "SWDA.MI". A
// ticker with no exchange stands alone.
func InstrumentKey(ticker, exchange string) string {
	if exchange == "" {
		return ticker
	}
	return ticker + "." + exchange
}

// Transaction is a single buy or sell event. Negative shares denote a sale.
// Transactions are immutable once loaded into a ledger.
type Transaction struct {
	Date       Date
	Instrument string
	Shares     decimal.Decimal
	Price      decimal.Decimal
	Fees       decimal.Decimal
}

// NewTransaction creates a transaction from float inputs.
func NewTransaction(on Date, instrument string, shares, price, fees float64) Transaction {
	return Transaction{
		Date:       on,
		Instrument: instrument,
		Shares:     decimal.NewFromFloat(shares),
		Price:      decimal.NewFromFloat(price),
		Fees:       decimal.NewFromFloat(fees),
	}
}

// Amount is the capital moved by the transaction: shares × price, negative
// for sales. Fees are tracked separately.
func (t Transaction) Amount() decimal.Decimal { return t.Shares.Mul(t.Price) }

// Validate checks the transaction for basic correctness.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction has no date")
	}
	if t.Instrument == "" {
		return fmt.Errorf("transaction has no instrument")
	}
	if t.Shares.IsZero() {
		return fmt.Errorf("transaction for %s has zero shares", t.Instrument)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("transaction for %s has negative price %s", t.Instrument, t.Price)
	}
	if t.Fees.IsNegative() {
		return fmt.Errorf("transaction for %s has negative fees %s", t.Instrument, t.Fees)
	}
	return nil
}

// Ledger is the full record of transactions.
//
// In a Ledger transactions are always in chronological order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append appends transactions and maintains the chronological order.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// stableSort sorts the ledger by transaction date. The sort is stable, so
// transactions on the same day keep their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over transactions in chronological order,
// restricted to those accepted by every given filter.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := true
			for _, filter := range filters {
				if !filter(tx) {
					accept = false
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// ByInstrument returns a predicate that filters transactions by instrument key.
func ByInstrument(instrument string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Instrument == instrument }
}

// ByInstruments returns a predicate that keeps transactions whose instrument
// belongs to the given universe.
func ByInstruments(universe []string) func(Transaction) bool {
	return func(tx Transaction) bool { return slices.Contains(universe, tx.Instrument) }
}

// Instruments returns an iterator over the distinct instrument keys
// appearing in the ledger, sorted.
func (l *Ledger) Instruments() iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		for _, tx := range l.transactions {
			visited[tx.Instrument] = struct{}{}
		}
		keys := slices.Collect(maps.Keys(visited))
		slices.Sort(keys)
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}
}

// OldestTransactionDate returns the date of the earliest transaction, or the
// zero date for an empty ledger.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].Date
}

// NewestTransactionDate returns the date of the latest transaction, or the
// zero date for an empty ledger.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].Date
}
