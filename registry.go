package folio

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Level selects the aggregation level of the three-level asset hierarchy.
type Level int

const (
	InstrumentLevel Level = iota
	AssetClassLevel
	MacroAssetClassLevel
)

func (lv Level) String() string {
	switch lv {
	case InstrumentLevel:
		return "instrument"
	case AssetClassLevel:
		return "asset-class"
	case MacroAssetClassLevel:
		return "macro-asset-class"
	default:
		return "unknown"
	}
}

// ParseLevel parses an aggregation level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "instrument", "ticker":
		return InstrumentLevel, nil
	case "asset-class", "asset_class", "class":
		return AssetClassLevel, nil
	case "macro-asset-class", "macro_asset_class", "macro":
		return MacroAssetClassLevel, nil
	default:
		return 0, fmt.Errorf("unknown aggregation level: %q", s)
	}
}

// SecurityRecord describes one instrument of the registry: its display name
// and its place in the asset hierarchy. SectorRef optionally points at an
// external sector-weighting page; the engine carries it without using it.
type SecurityRecord struct {
	Instrument      string
	Name            string
	AssetClass      string
	MacroAssetClass string
	SectorRef       string
}

// class returns the record's value at the given hierarchy level.
func (r SecurityRecord) class(lv Level) string {
	switch lv {
	case InstrumentLevel:
		return r.Instrument
	case AssetClassLevel:
		return r.AssetClass
	case MacroAssetClassLevel:
		return r.MacroAssetClass
	default:
		return ""
	}
}

// Registry indexes security records by instrument key. One record must exist
// for every instrument appearing in the ledger.
type Registry struct {
	records map[string]SecurityRecord
	order   []string // insertion order, the registry's natural row order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]SecurityRecord)}
}

// Add inserts or replaces a record.
func (g *Registry) Add(rec SecurityRecord) {
	if _, exists := g.records[rec.Instrument]; !exists {
		g.order = append(g.order, rec.Instrument)
	}
	g.records[rec.Instrument] = rec
}

// Record returns the record for an instrument key.
func (g *Registry) Record(instrument string) (SecurityRecord, bool) {
	rec, ok := g.records[instrument]
	return rec, ok
}

// Len returns the number of records.
func (g *Registry) Len() int { return len(g.records) }

// Records iterates over records in their registry order.
func (g *Registry) Records() iter.Seq[SecurityRecord] {
	return func(yield func(SecurityRecord) bool) {
		for _, key := range g.order {
			if !yield(g.records[key]) {
				return
			}
		}
	}
}

// Classes returns the distinct class values at the given level, restricted
// to instruments in 'universe', in order of first appearance.
func (g *Registry) Classes(lv Level, universe []string) []string {
	var classes []string
	for _, key := range g.order {
		if !slices.Contains(universe, key) {
			continue
		}
		c := g.records[key].class(lv)
		if !slices.Contains(classes, c) {
			classes = append(classes, c)
		}
	}
	return classes
}

// Members returns the instruments of 'universe' belonging to the given class
// value at the given level.
func (g *Registry) Members(lv Level, class string, universe []string) []string {
	var members []string
	for _, key := range g.order {
		if !slices.Contains(universe, key) {
			continue
		}
		if g.records[key].class(lv) == class {
			members = append(members, key)
		}
	}
	return members
}

// groups builds the class -> members mapping used by level aggregation.
func (g *Registry) groups(lv Level, universe []string) (order []string, groups map[string][]string) {
	order = g.Classes(lv, universe)
	groups = make(map[string][]string, len(order))
	for _, c := range order {
		groups[c] = g.Members(lv, c, universe)
	}
	return order, groups
}

// CheckCoverage verifies that every instrument in the ledger has a registry
// record. Missing instruments are reported, never silently dropped: they
// would otherwise disappear from class-level aggregations while still
// holding value.
func (g *Registry) CheckCoverage(l *Ledger) error {
	var missing []string
	for instrument := range l.Instruments() {
		if _, ok := g.records[instrument]; !ok {
			missing = append(missing, instrument)
		}
	}
	if len(missing) > 0 {
		return &MissingMappingError{Instruments: missing}
	}
	return nil
}
