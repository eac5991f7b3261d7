package folio

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// TradingDays is the annualization constant for daily observations.
const TradingDays = 252

// RiskContribution is one entity's share of portfolio risk at a chosen
// aggregation level.
type RiskContribution struct {
	Entity   string
	Weight   float64 // portfolio weight, in [0,1]
	Marginal float64 // marginal volatility contribution
	Relative float64 // share of total risk; sums to 1 across entities
}

// covarianceOf builds the sample covariance matrix of a return frame, one
// column per entity, observations in rows.
func covarianceOf(returns *Frame) *mat.SymDense {
	rows, cols := returns.Rows(), len(returns.cols)
	x := mat.NewDense(rows, cols, nil)
	for j, col := range returns.cols {
		for i, v := range returns.data[col] {
			x.Set(i, j, v)
		}
	}
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, x, nil)
	return &cov
}

// PortfolioVariance is the annualized portfolio variance
// tradingDays × wᵀΣw over the sample covariance Σ of the return columns.
// Weights and columns are matched by position.
func PortfolioVariance(weights []float64, returns *Frame) (float64, error) {
	if len(weights) != len(returns.cols) {
		return 0, fmt.Errorf("got %d weights for %d return columns", len(weights), len(returns.cols))
	}
	cov := covarianceOf(returns)
	w := mat.NewVecDense(len(weights), slices.Clone(weights))
	return TradingDays * mat.Inner(w, cov, w), nil
}

// RelativeRiskContributions decomposes portfolio variance into per-entity
// relative contributions at the requested level.
//
// The price matrix must cover a common, fully overlapping date range for
// every instrument; it is intersected here and ErrInsufficientHistory is
// returned when no overlap exists. Entity return series are daily log
// returns, summed per class at the class levels. Entity weights are
// last price × shares, summed per class and normalized to 1.
//
// A single-entity universe or a zero-variance history makes the
// decomposition a 0/0: that is surfaced as ErrDegenerateRisk, never
// coerced to 0 or 1.
func RelativeRiskContributions(prices *Frame, shares map[string]float64, reg *Registry, lv Level) ([]RiskContribution, error) {
	prices, err := prices.CommonWindow()
	if err != nil {
		return nil, err
	}
	// Interior gaps (instruments on exchanges with different holidays)
	// take the last quote forward; the window guarantees a first quote
	// per column, so no NaN survives into the covariance.
	prices = prices.ForwardFill()
	universe := prices.Columns()
	logRets := prices.LogChange()
	_, lastRow := prices.Last()

	// Position value per instrument, the raw weight material.
	values := make(map[string]float64, len(universe))
	for _, inst := range universe {
		values[inst] = lastRow[inst] * shares[inst]
	}

	var entities []string
	var rets *Frame
	weightOf := make(map[string]float64)

	if lv == InstrumentLevel {
		entities = universe
		rets = logRets
		for _, inst := range universe {
			weightOf[inst] = values[inst]
		}
	} else {
		if err := checkUniverse(reg, universe); err != nil {
			return nil, err
		}
		order, groups := reg.groups(lv, universe)
		entities = order
		rets = logRets.GroupSum(order, groups)
		for _, class := range order {
			for _, member := range groups[class] {
				weightOf[class] += values[member]
			}
		}
	}

	if len(entities) < 2 {
		return nil, ErrDegenerateRisk
	}

	total := 0.0
	for _, e := range entities {
		total += weightOf[e]
	}
	if total == 0 {
		return nil, ErrDegenerateRisk
	}
	weights := make([]float64, len(entities))
	for i, e := range entities {
		weights[i] = weightOf[e] / total
	}

	variance, err := PortfolioVariance(weights, rets)
	if err != nil {
		return nil, err
	}
	if variance <= 0 || math.IsNaN(variance) {
		return nil, ErrDegenerateRisk
	}
	volatility := math.Sqrt(variance)

	cov := covarianceOf(rets)
	w := mat.NewVecDense(len(weights), slices.Clone(weights))
	var marginal mat.VecDense
	marginal.MulVec(cov, w)

	contributions := make([]RiskContribution, len(entities))
	sum := 0.0
	for i, e := range entities {
		m := marginal.AtVec(i) / volatility
		contributions[i] = RiskContribution{Entity: e, Weight: weights[i], Marginal: m}
		sum += m * weights[i]
	}
	if sum == 0 {
		return nil, ErrDegenerateRisk
	}
	for i := range contributions {
		contributions[i].Relative = contributions[i].Marginal * contributions[i].Weight / sum
	}

	slices.SortStableFunc(contributions, func(a, b RiskContribution) int {
		switch {
		case a.Relative > b.Relative:
			return -1
		case a.Relative < b.Relative:
			return 1
		default:
			return 0
		}
	})
	return contributions, nil
}
