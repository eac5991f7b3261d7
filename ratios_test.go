package folio

import (
	"fmt"
	"math"
	"testing"
)

func TestSharpeRatio(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.03}
	// mean 0.0066667, sample std 0.0251661
	got := SharpeRatio(returns, TradingDays, 0)
	roughly(t, got, 4.2053, 1e-3)

	got = SharpeRatio(returns, TradingDays, 3)
	roughly(t, got, -3.3041, 1e-3)
}

func TestSharpeRatio_DegenerateInputs(t *testing.T) {
	if !math.IsNaN(SharpeRatio(nil, TradingDays, 0)) {
		t.Error("empty series should give NaN")
	}
	if !math.IsNaN(SharpeRatio([]float64{0.01, 0.01, 0.01}, TradingDays, 0)) {
		t.Error("zero deviation should give NaN, not infinity")
	}
}

func TestSortinoRatio(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.03, -0.01}
	// downside deviation over {-0.02, -0.01} is 0.0070711
	got := SortinoRatio(returns, TradingDays, 0)
	roughly(t, got, 5.6124, 1e-3)

	if !math.IsNaN(SortinoRatio([]float64{0.01, 0.02}, TradingDays, 0)) {
		t.Error("no downside observations should give NaN")
	}
}

type failingRate struct{}

func (failingRate) LastRate() (float64, error) { return 0, fmt.Errorf("gateway timeout") }

func TestRiskFreeOrDefault(t *testing.T) {
	if got := RiskFreeOrDefault(nil); got != DefaultRiskFreeRate {
		t.Errorf("nil source = %v", got)
	}
	if got := RiskFreeOrDefault(failingRate{}); got != DefaultRiskFreeRate {
		t.Errorf("failing source = %v", got)
	}
	if got := RiskFreeOrDefault(ConstantRate(2.5)); got != 2.5 {
		t.Errorf("constant source = %v", got)
	}
}
