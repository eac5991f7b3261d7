package folio

import "math"

// Drawdown computes the peak-to-trough drawdown of each return column:
// cumulative growth index cum = prod(1+r), running maximum of that index,
// drawdown = (cum - max) / max. Values are always <= 0. Missing returns
// count as zero, so a gap never breaks the cumulative index.
func Drawdown(returns *Frame) *Frame {
	filled := returns.FillNaN(0)
	out := NewFrame(filled.dates, filled.cols)
	for _, col := range filled.cols {
		vals := filled.data[col]
		res := out.data[col]
		cum, runningMax := 1.0, math.Inf(-1)
		for i, r := range vals {
			cum *= 1 + r
			if cum > runningMax {
				runningMax = cum
			}
			res[i] = (cum - runningMax) / runningMax
		}
	}
	return out
}

// MaxDrawdown reduces each column of Drawdown to its minimum: the worst
// peak-to-trough decline over the whole series.
func MaxDrawdown(returns *Frame) map[string]float64 {
	dd := Drawdown(returns)
	out := make(map[string]float64, len(dd.cols))
	for _, col := range dd.cols {
		min := 0.0
		for _, v := range dd.data[col] {
			if v < min {
				min = v
			}
		}
		out[col] = min
	}
	return out
}

// RollingMaxDrawdown produces a point-in-time "worst drawdown in the last
// window observations" series per column. The window is re-evaluated from
// scratch at each step, not maintained incrementally.
func RollingMaxDrawdown(returns *Frame, window int) *Frame {
	return returns.FillNaN(0).RollingApply(window, func(win []float64) float64 {
		cum, runningMax, min := 1.0, math.Inf(-1), 0.0
		for _, r := range win {
			cum *= 1 + r
			if cum > runningMax {
				runningMax = cum
			}
			if dd := (cum - runningMax) / runningMax; dd < min {
				min = dd
			}
		}
		return min
	})
}
