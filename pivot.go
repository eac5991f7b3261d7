package folio

import (
	"fmt"
	"slices"
	"strings"
)

// PivotRow is one line of the allocation pivot: current position value and
// portfolio weight at the chosen hierarchy grouping. Fields beyond the
// grouping level stay empty.
type PivotRow struct {
	MacroAssetClass string
	AssetClass      string
	Instrument      string
	Name            string
	Value           Money
	Weight          Percent
}

// PortfolioPivot groups current position value by hierarchy level:
// macro asset class alone, macro + asset class, or the full
// macro + class + instrument + name breakdown. Weight is
// 100 × value / total portfolio value.
func PortfolioPivot(positions []Position, lastPrices map[string]float64, reg *Registry, lv Level, currency string) ([]PivotRow, error) {
	instruments := make([]string, 0, len(positions))
	for _, p := range positions {
		instruments = append(instruments, p.Instrument)
	}
	if err := checkUniverse(reg, instruments); err != nil {
		return nil, err
	}

	type key struct{ macro, class, instrument, name string }
	totals := make(map[key]float64)
	var order []key
	total := 0.0
	for _, p := range positions {
		rec, _ := reg.Record(p.Instrument)
		k := key{macro: rec.MacroAssetClass}
		switch lv {
		case AssetClassLevel:
			k.class = rec.AssetClass
		case InstrumentLevel:
			k.class, k.instrument, k.name = rec.AssetClass, rec.Instrument, rec.Name
		}
		value := p.Shares.InexactFloat64() * lastPrices[p.Instrument]
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		totals[k] += value
		total += value
	}
	if total == 0 {
		return nil, fmt.Errorf("portfolio has no value to pivot")
	}

	slices.SortFunc(order, func(a, b key) int {
		if c := strings.Compare(a.macro, b.macro); c != 0 {
			return c
		}
		if c := strings.Compare(a.class, b.class); c != 0 {
			return c
		}
		return strings.Compare(a.instrument, b.instrument)
	})

	rows := make([]PivotRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, PivotRow{
			MacroAssetClass: k.macro,
			AssetClass:      k.class,
			Instrument:      k.instrument,
			Name:            k.name,
			Value:           M(totals[k], currency),
			Weight:          Percent(100 * totals[k] / total),
		})
	}
	return rows, nil
}

// PnLRow is one line of the profit-and-loss breakdown.
type PnLRow struct {
	Class string
	PnL   Money
}

// PnLByClass computes unrealized profit-and-loss per instrument,
// (current price − average cost) × net shares, and sums it by asset class
// or macro asset class, sorted by class name.
func PnLByClass(positions []Position, lastPrices map[string]float64, reg *Registry, lv Level, currency string) ([]PnLRow, error) {
	if lv == InstrumentLevel {
		return nil, fmt.Errorf("pnl breakdown is grouped by class, not by instrument")
	}
	instruments := make([]string, 0, len(positions))
	for _, p := range positions {
		instruments = append(instruments, p.Instrument)
	}
	if err := checkUniverse(reg, instruments); err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	for _, p := range positions {
		rec, _ := reg.Record(p.Instrument)
		class := rec.class(lv)
		pnl := (lastPrices[p.Instrument] - p.AverageCost().InexactFloat64()) * p.Shares.InexactFloat64()
		totals[class] += pnl
	}

	classes := make([]string, 0, len(totals))
	for c := range totals {
		classes = append(classes, c)
	}
	slices.Sort(classes)

	rows := make([]PnLRow, 0, len(classes))
	for _, c := range classes {
		rows = append(rows, PnLRow{Class: c, PnL: M(totals[c], currency)})
	}
	return rows, nil
}
