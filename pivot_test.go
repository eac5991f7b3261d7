package folio

import (
	"errors"
	"testing"
)

func testPositions(t *testing.T) []Position {
	t.Helper()
	return Positions(testLedger(), true)
}

func testLastPrices() map[string]float64 {
	return map[string]float64{"AAA.MI": 12, "BBB.MI": 20, "CCC.DE": 10}
}

func TestPortfolioPivot_MacroLevel(t *testing.T) {
	rows, err := PortfolioPivot(testPositions(t), testLastPrices(), testRegistry(), MacroAssetClassLevel, "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// sorted by macro class name: Bond before Equity
	if rows[0].MacroAssetClass != "Bond" || rows[1].MacroAssetClass != "Equity" {
		t.Fatalf("row order: %v", rows)
	}
	// AAA 10×12 + BBB 5×20 = 220 equity, CCC 8×10 = 80 bond
	almost(t, rows[0].Value.AsFloat(), 80)
	almost(t, rows[1].Value.AsFloat(), 220)
	if !rows[0].Weight.Equal(Percent(100 * 80.0 / 300.0)) {
		t.Errorf("bond weight = %s", rows[0].Weight)
	}

	total := 0.0
	for _, r := range rows {
		total += float64(r.Weight)
	}
	roughly(t, total, 100, 1e-9)
}

func TestPortfolioPivot_InstrumentLevel(t *testing.T) {
	rows, err := PortfolioPivot(testPositions(t), testLastPrices(), testRegistry(), InstrumentLevel, "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for _, r := range rows {
		if r.Instrument == "" || r.Name == "" {
			t.Errorf("instrument-level row misses identity: %+v", r)
		}
	}
}

func TestPortfolioPivot_MissingMapping(t *testing.T) {
	l := NewLedger()
	l.Append(NewTransaction(MustParseDate("2025-01-06"), "UNKNOWN", 1, 10, 0))
	_, err := PortfolioPivot(Positions(l, true), map[string]float64{"UNKNOWN": 10}, testRegistry(), MacroAssetClassLevel, "EUR")
	var missing *MissingMappingError
	if !errors.As(err, &missing) {
		t.Fatalf("want MissingMappingError, got %v", err)
	}
}

func TestPortfolioPivot_ZeroValue(t *testing.T) {
	if _, err := PortfolioPivot(testPositions(t), map[string]float64{}, testRegistry(), MacroAssetClassLevel, "EUR"); err == nil {
		t.Error("a valueless portfolio should not pivot")
	}
}

func TestPnLByClass(t *testing.T) {
	rows, err := PnLByClass(testPositions(t), testLastPrices(), testRegistry(), MacroAssetClassLevel, "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// AAA: (12-10)×10 = 20, BBB: (20-20)×5 = 0, CCC: (10-10)×8 = 0
	byClass := map[string]float64{}
	for _, r := range rows {
		byClass[r.Class] = r.PnL.AsFloat()
	}
	almost(t, byClass["Equity"], 20)
	almost(t, byClass["Bond"], 0)
}

func TestPnLByClass_RejectsInstrumentLevel(t *testing.T) {
	if _, err := PnLByClass(testPositions(t), testLastPrices(), testRegistry(), InstrumentLevel, "EUR"); err == nil {
		t.Error("instrument level is not a class grouping")
	}
}
