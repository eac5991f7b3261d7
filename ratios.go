package folio

import (
	"math"

	"github.com/montanaflynn/stats"
)

// DefaultRiskFreeRate is the fallback annual risk-free rate, in percent
// units, used whenever no rate source is configured or the source fails.
const DefaultRiskFreeRate = 3.0

// RateSource supplies the risk-free rate used by the risk-adjusted ratios.
type RateSource interface {
	// LastRate returns the latest annual risk-free rate in percent units.
	LastRate() (float64, error)
}

// ConstantRate is a RateSource pinned to a fixed value.
type ConstantRate float64

func (r ConstantRate) LastRate() (float64, error) { return float64(r), nil }

// RiskFreeOrDefault resolves a rate source, degrading to
// DefaultRiskFreeRate when the source is absent or failing. A missing rate
// source is never a hard failure.
func RiskFreeOrDefault(source RateSource) float64 {
	if source == nil {
		return DefaultRiskFreeRate
	}
	rate, err := source.LastRate()
	if err != nil {
		return DefaultRiskFreeRate
	}
	return rate
}

// SharpeRatio annualizes the mean and deviation of a return series and
// relates the excess over the risk-free rate to volatility.
func SharpeRatio(returns []float64, tradingDays float64, riskFree float64) float64 {
	mean, err := stats.Mean(returns)
	if err != nil {
		return math.NaN()
	}
	std, err := stats.StandardDeviationSample(returns)
	if err != nil || std == 0 {
		return math.NaN()
	}
	return (mean*tradingDays - riskFree) / (std * math.Sqrt(tradingDays))
}

// SortinoRatio is the Sharpe variant that penalizes only downside
// deviation: the denominator uses the deviation of negative returns alone.
func SortinoRatio(returns []float64, tradingDays float64, riskFree float64) float64 {
	mean, err := stats.Mean(returns)
	if err != nil {
		return math.NaN()
	}
	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	std, err := stats.StandardDeviationSample(downside)
	if err != nil || std == 0 {
		return math.NaN()
	}
	return (mean*tradingDays - riskFree) / (std * math.Sqrt(tradingDays))
}
