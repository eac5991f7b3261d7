package folio

import (
	"math"
	"slices"
)

// checkUniverse verifies every instrument of the universe has a registry
// record before a class-level aggregation.
func checkUniverse(reg *Registry, universe []string) error {
	var missing []string
	for _, inst := range universe {
		if _, ok := reg.Record(inst); !ok {
			missing = append(missing, inst)
		}
	}
	if len(missing) > 0 {
		return &MissingMappingError{Instruments: missing}
	}
	return nil
}

// PeriodReturns derives fractional period-over-period returns from a price
// matrix at the requested frequency and aggregation level, restricted to
// the given universe.
//
// Returns are computed per instrument at daily granularity; coarser
// frequencies resample by compounding, period = prod(1+daily) - 1. Prices
// are padded forward over interior gaps before differencing, so a holiday
// on one exchange yields a zero return on the gap day and keeps the
// resumption return. At the asset-class and macro-asset-class levels, the
// return of a class is the plain sum of its members' per-period fractional
// returns. That summation is the convention of the deployed system,
// preserved on purpose even though it is not a capital-weighted blend;
// WeightedPeriodReturns exposes the corrected alternative without changing
// this default.
//
// The first observation carries no return and is dropped.
func PeriodReturns(prices *Frame, reg *Registry, period Period, lv Level, universe []string) (*Frame, error) {
	sub, err := prices.Select(universe)
	if err != nil {
		return nil, err
	}
	rets := sub.ForwardFill().PctChange().Resample(period)
	if lv == InstrumentLevel {
		return rets, nil
	}
	if err := checkUniverse(reg, universe); err != nil {
		return nil, err
	}
	order, groups := reg.groups(lv, universe)
	return rets.GroupSum(order, groups), nil
}

// WeightedPeriodReturns is the capital-weighted variant of PeriodReturns:
// the class return is the weight-blended average of its members' returns,
// with the given per-instrument weights (typically current position
// values) normalized within each class. It is opt-in and never the
// default aggregation.
func WeightedPeriodReturns(prices *Frame, reg *Registry, period Period, lv Level, universe []string, weights map[string]float64) (*Frame, error) {
	sub, err := prices.Select(universe)
	if err != nil {
		return nil, err
	}
	rets := sub.ForwardFill().PctChange().Resample(period)
	if lv == InstrumentLevel {
		return rets, nil
	}
	if err := checkUniverse(reg, universe); err != nil {
		return nil, err
	}
	order, groups := reg.groups(lv, universe)

	out := NewFrame(rets.Dates(), order)
	for _, class := range order {
		members := groups[class]
		total := 0.0
		for _, m := range members {
			total += weights[m]
		}
		res := out.data[class]
		for i := range rets.dates {
			var blended, weight float64
			for _, m := range members {
				v := rets.At(i, m)
				if math.IsNaN(v) {
					continue
				}
				w := weights[m]
				if total > 0 {
					w /= total
				} else {
					w = 1 / float64(len(members))
				}
				blended += w * v
				weight += w
			}
			if weight > 0 {
				res[i] = blended
			}
		}
	}
	return out, nil
}

// RollingReturns computes rolling compounded returns over a sliding window
// of trading observations: exp(sum of window log returns) - 1, aggregated
// to the requested level by the same per-class summation rule as
// PeriodReturns.
func RollingReturns(prices *Frame, reg *Registry, lv Level, universe []string, window int) (*Frame, error) {
	sub, err := prices.Select(universe)
	if err != nil {
		return nil, err
	}
	roll := sub.ForwardFill().LogChange().RollingSum(window)
	for _, col := range roll.cols {
		vals := roll.data[col]
		for i, v := range vals {
			if !math.IsNaN(v) {
				vals[i] = math.Exp(v) - 1
			}
		}
	}
	if lv == InstrumentLevel {
		return roll, nil
	}
	if err := checkUniverse(reg, universe); err != nil {
		return nil, err
	}
	order, groups := reg.groups(lv, universe)
	return roll.GroupSum(order, groups), nil
}

// Universe returns the instrument keys of the ledger as a slice, the
// default universe for return and risk computations.
func Universe(l *Ledger) []string {
	return slices.Collect(l.Instruments())
}
