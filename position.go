package folio

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Position is the collapsed view of one instrument's transactions: net
// shares held, total invested capital, fees paid, and the average cost
// basis. Positions are recomputed from scratch on every call; there is no
// incremental state.
type Position struct {
	Instrument string
	Shares     decimal.Decimal
	Invested   decimal.Decimal
	Fees       decimal.Decimal
}

// AverageCost is the cost basis per share: invested / shares. A flat
// position (zero net shares) has an average cost of exactly zero, not NaN;
// reporting callers rely on the numeric default.
func (p Position) AverageCost() decimal.Decimal {
	if p.Shares.IsZero() {
		return decimal.Zero
	}
	return p.Invested.Div(p.Shares)
}

// InPortfolio reports whether the position is currently held.
func (p Position) InPortfolio() bool { return !p.Shares.IsZero() }

// Positions collapses the ledger into one position per instrument, sorted
// by absolute net shares descending. With inPortfolioOnly set, fully exited
// positions are excluded from the result; they always remain in the ledger
// and stay available to the history-dependent computations.
func Positions(l *Ledger, inPortfolioOnly bool) []Position {
	index := make(map[string]int)
	var positions []Position
	for _, tx := range l.Transactions() {
		i, ok := index[tx.Instrument]
		if !ok {
			i = len(positions)
			index[tx.Instrument] = i
			positions = append(positions, Position{Instrument: tx.Instrument})
		}
		positions[i].Shares = positions[i].Shares.Add(tx.Shares)
		positions[i].Invested = positions[i].Invested.Add(tx.Amount())
		positions[i].Fees = positions[i].Fees.Add(tx.Fees)
	}

	if inPortfolioOnly {
		positions = slices.DeleteFunc(positions, func(p Position) bool {
			return !p.InPortfolio()
		})
	}

	slices.SortStableFunc(positions, func(a, b Position) int {
		return b.Shares.Abs().Cmp(a.Shares.Abs())
	})
	return positions
}
