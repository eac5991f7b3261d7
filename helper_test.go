package folio

import (
	"math"
	"testing"
)

// test fixtures shared across the package tests: a three-instrument
// portfolio with two equity funds and one bond fund.

func testRegistry() *Registry {
	reg := NewRegistry()
	reg.Add(SecurityRecord{Instrument: "AAA.MI", Name: "Alpha Equity", AssetClass: "Equity ETF", MacroAssetClass: "Equity"})
	reg.Add(SecurityRecord{Instrument: "BBB.MI", Name: "Beta Equity", AssetClass: "Equity ETF", MacroAssetClass: "Equity"})
	reg.Add(SecurityRecord{Instrument: "CCC.DE", Name: "Gamma Bond", AssetClass: "Gov Bond", MacroAssetClass: "Bond"})
	return reg
}

func testLedger() *Ledger {
	l := NewLedger()
	l.Append(
		NewTransaction(MustParseDate("2025-01-06"), "AAA.MI", 10, 10.0, 1.0),
		NewTransaction(MustParseDate("2025-01-07"), "BBB.MI", 5, 20.0, 1.0),
		NewTransaction(MustParseDate("2025-01-08"), "CCC.DE", 8, 10.0, 0.5),
	)
	return l
}

// seriesOf builds a daily series starting at 'start' with one value per
// consecutive calendar day.
func seriesOf(t *testing.T, start string, values ...float64) *Series {
	t.Helper()
	s := &Series{}
	on := MustParseDate(start)
	for i, v := range values {
		s.Append(on.Add(i), v)
	}
	return s
}

func almost(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func roughly(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("got %v, want %v (tolerance %v)", got, want, tolerance)
	}
}
