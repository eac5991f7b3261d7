package folio

import (
	"fmt"
	"math"
	"slices"
)

// WealthPoint is one day of the reconstructed portfolio history.
type WealthPoint struct {
	Date     Date
	Value    float64 // mark-to-market value of all holdings
	Delta    float64 // value change versus the prior day
	Invested float64 // cumulative invested capital
	PnL      float64 // Value - Invested
}

// WealthHistory is the daily valuation of the portfolio from the first
// transaction to the as-of date, with no calendar gaps. Skipped lists the
// instruments that had to be left out because no price data was available
// at all; their contribution degrades to zero instead of failing the whole
// reconstruction.
type WealthHistory struct {
	Points  []WealthPoint
	Skipped []string
}

// Latest returns the last point of the history.
func (w *WealthHistory) Latest() WealthPoint {
	if len(w.Points) == 0 {
		return WealthPoint{}
	}
	return w.Points[len(w.Points)-1]
}

// ReconstructWealth rebuilds the daily portfolio value and cumulative
// invested capital from the transaction ledger and a price matrix.
//
// The calendar runs from the ledger's earliest transaction to asOf,
// non-trading days included. Shares accumulate at each transaction event
// and are summed forward in time, so every calendar day carries the exact
// position per instrument. Price histories shorter than the calendar (an
// instrument that changed identifying symbol loses its early history) are
// covered by propagating the first available price backwards; this is a
// deliberate approximation, not a data error. Non-trading days take the
// last known price forward.
func ReconstructWealth(l *Ledger, prices *Frame, asOf Date) (*WealthHistory, error) {
	if l.Len() == 0 {
		return nil, fmt.Errorf("cannot reconstruct wealth: ledger is empty")
	}
	begin := l.OldestTransactionDate()
	if asOf.Before(begin) {
		return nil, fmt.Errorf("as-of date %s precedes first transaction %s", asOf, begin)
	}
	calendar := Calendar(begin, asOf)
	instruments := slices.Collect(l.Instruments())

	// Exact share count held per instrument per day: accumulate transaction
	// events sparsely, then take the running sum forward.
	shares := make(map[string][]float64, len(instruments))
	for _, inst := range instruments {
		shares[inst] = make([]float64, len(calendar))
	}
	invested := make([]float64, len(calendar))
	for _, tx := range l.Transactions() {
		i := begin.Days(tx.Date)
		if i < 0 || i >= len(calendar) {
			continue
		}
		shares[tx.Instrument][i] += tx.Shares.InexactFloat64()
		invested[i] += tx.Amount().InexactFloat64()
	}
	for _, inst := range instruments {
		cum := shares[inst]
		for i := 1; i < len(cum); i++ {
			cum[i] += cum[i-1]
		}
	}
	for i := 1; i < len(invested); i++ {
		invested[i] += invested[i-1]
	}

	// Project prices onto the calendar, backward-filling the head.
	priced := prices.BackFill()
	var skipped []string
	value := make([]float64, len(calendar))
	for _, inst := range instruments {
		col := priced.Column(inst)
		if len(col) == 0 || !slices.ContainsFunc(col, func(v float64) bool { return !math.IsNaN(v) }) {
			skipped = append(skipped, inst)
			continue
		}
		// Before the first quote, the first available price is propagated
		// backwards over the calendar. From the first quote on, mark on
		// trading days and carry the marked value forward over non-trading
		// days, the same forward-fill the deployed system applied to the
		// allocation × price product.
		firstPrice := col[slices.IndexFunc(col, func(v float64) bool { return !math.IsNaN(v) })]
		marked := false
		var contribution float64
		for i, on := range calendar {
			if j, found := slices.BinarySearchFunc(priced.dates, on, Date.Compare); found && !math.IsNaN(col[j]) {
				contribution = shares[inst][i] * col[j]
				marked = true
			} else if !marked {
				contribution = shares[inst][i] * firstPrice
			}
			value[i] += contribution
		}
	}

	history := &WealthHistory{Points: make([]WealthPoint, len(calendar)), Skipped: skipped}
	for i, on := range calendar {
		p := WealthPoint{
			Date:     on,
			Value:    value[i],
			Invested: invested[i],
			PnL:      value[i] - invested[i],
		}
		if i > 0 {
			p.Delta = value[i] - value[i-1]
		}
		history.Points[i] = p
	}
	return history, nil
}
