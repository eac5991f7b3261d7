package folio

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistry_ClassesAndMembers(t *testing.T) {
	reg := testRegistry()
	universe := []string{"AAA.MI", "BBB.MI", "CCC.DE"}

	classes := reg.Classes(MacroAssetClassLevel, universe)
	if !slices.Equal(classes, []string{"Equity", "Bond"}) {
		t.Errorf("Classes = %v", classes)
	}

	members := reg.Members(MacroAssetClassLevel, "Equity", universe)
	if !slices.Equal(members, []string{"AAA.MI", "BBB.MI"}) {
		t.Errorf("Members = %v", members)
	}

	// the universe restricts both
	classes = reg.Classes(MacroAssetClassLevel, []string{"CCC.DE"})
	if !slices.Equal(classes, []string{"Bond"}) {
		t.Errorf("restricted Classes = %v", classes)
	}
}

func TestRegistry_AddReplaces(t *testing.T) {
	reg := testRegistry()
	reg.Add(SecurityRecord{Instrument: "AAA.MI", Name: "Renamed", AssetClass: "Equity ETF", MacroAssetClass: "Equity"})
	if reg.Len() != 3 {
		t.Fatalf("replacing grew the registry to %d", reg.Len())
	}
	rec, _ := reg.Record("AAA.MI")
	if rec.Name != "Renamed" {
		t.Errorf("record not replaced: %+v", rec)
	}
}

func TestRegistry_CheckCoverage(t *testing.T) {
	reg := testRegistry()
	if err := reg.CheckCoverage(testLedger()); err != nil {
		t.Errorf("full coverage reported an error: %v", err)
	}

	l := testLedger()
	l.Append(NewTransaction(MustParseDate("2025-01-09"), "NEW.PA", 1, 10, 0))
	err := reg.CheckCoverage(l)
	var missing *MissingMappingError
	if !errors.As(err, &missing) {
		t.Fatalf("want MissingMappingError, got %v", err)
	}
	if !slices.Equal(missing.Instruments, []string{"NEW.PA"}) {
		t.Errorf("missing = %v", missing.Instruments)
	}
}
