package folio

import (
	"errors"
	"testing"
)

// countingProvider wraps a MemoryProvider and counts calls.
type countingProvider struct {
	MemoryProvider
	calls int
}

func (c *countingProvider) FullHistory(instrument string) (*Series, error) {
	c.calls++
	return c.MemoryProvider.FullHistory(instrument)
}

func TestMemoryProvider(t *testing.T) {
	p := MemoryProvider{"AAA.MI": seriesOf(t, "2025-01-06", 10, 11, 12)}

	c, err := p.LastClose("AAA.MI")
	if err != nil {
		t.Fatal(err)
	}
	if c.Date != MustParseDate("2025-01-08") || c.Price != 12 {
		t.Errorf("LastClose = %+v", c)
	}

	_, err = p.LastClose("MISSING")
	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) || unavailable.Instrument != "MISSING" {
		t.Errorf("want DataUnavailableError for MISSING, got %v", err)
	}
}

func TestFallback_TriesProvidersInOrder(t *testing.T) {
	first := MemoryProvider{}
	second := MemoryProvider{"AAA.MI": seriesOf(t, "2025-01-06", 10)}
	chain := Fallback{first, second}

	s, err := chain.FullHistory("AAA.MI")
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Errorf("history has %d points", s.Len())
	}

	// a hit on the first provider never reaches the second
	counting := &countingProvider{MemoryProvider: MemoryProvider{"AAA.MI": seriesOf(t, "2025-01-06", 99)}}
	chain = Fallback{counting, second}
	s, _ = chain.FullHistory("AAA.MI")
	if _, v := s.Latest(); v != 99 {
		t.Errorf("fallback skipped the first provider, got %v", v)
	}
}

func TestFallback_ExhaustedChain(t *testing.T) {
	chain := Fallback{MemoryProvider{}, MemoryProvider{}}
	_, err := chain.FullHistory("AAA.MI")
	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("want DataUnavailableError, got %v", err)
	}
	if unavailable.Instrument != "AAA.MI" {
		t.Errorf("error names %q", unavailable.Instrument)
	}
}

func TestFullHistories_SkipsFailures(t *testing.T) {
	p := MemoryProvider{
		"AAA.MI": seriesOf(t, "2025-01-06", 10, 11),
		"BBB.MI": seriesOf(t, "2025-01-06", 20, 21),
	}
	frame, failed := FullHistories(p, []string{"AAA.MI", "MISSING", "BBB.MI"})

	if len(failed) != 1 {
		t.Fatalf("got %d failures, want 1", len(failed))
	}
	var unavailable *DataUnavailableError
	if !errors.As(failed[0], &unavailable) || unavailable.Instrument != "MISSING" {
		t.Errorf("failure = %v", failed[0])
	}
	// the failing instrument is dropped from the frame, the others have data
	if cols := frame.Columns(); len(cols) != 2 {
		t.Errorf("frame columns = %v", cols)
	}
	almost(t, frame.At(0, "AAA.MI"), 10)
	almost(t, frame.At(0, "BBB.MI"), 20)
}

func TestLastCloses(t *testing.T) {
	p := MemoryProvider{"AAA.MI": seriesOf(t, "2025-01-06", 10, 11)}
	closes, failed := LastCloses(p, []string{"AAA.MI", "MISSING"})
	if len(failed) != 1 {
		t.Fatalf("got %d failures, want 1", len(failed))
	}
	if closes["AAA.MI"].Price != 11 {
		t.Errorf("closes = %v", closes)
	}
}

func TestCommonHistory(t *testing.T) {
	p := MemoryProvider{
		"AAA.MI": seriesOf(t, "2025-01-06", 10, 11, 12, 13),
		"BBB.MI": seriesOf(t, "2025-01-08", 20, 21, 22),
	}
	frame, err := CommonHistory(p, []string{"AAA.MI", "BBB.MI"})
	if err != nil {
		t.Fatal(err)
	}
	if frame.Date(0) != MustParseDate("2025-01-08") {
		t.Errorf("window starts at %s", frame.Date(0))
	}
	if last := frame.Date(frame.Rows() - 1); last != MustParseDate("2025-01-09") {
		t.Errorf("window ends at %s", last)
	}

	// a missing instrument fails the whole request: no window is defined
	if _, err := CommonHistory(p, []string{"AAA.MI", "MISSING"}); err == nil {
		t.Error("CommonHistory should fail when an instrument cannot be fetched")
	}
}
