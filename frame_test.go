package folio

import (
	"errors"
	"math"
	"testing"
)

func testFrame(t *testing.T) *Frame {
	t.Helper()
	return NewFrameFromSeries([]string{"A", "B"}, map[string]*Series{
		"A": seriesOf(t, "2025-01-06", 100, 110, 121),
		"B": seriesOf(t, "2025-01-06", 100, 90, 81),
	})
}

func TestFrame_PctChange(t *testing.T) {
	rets := testFrame(t).PctChange()

	if rets.Rows() != 2 {
		t.Fatalf("PctChange kept %d rows, want 2 (first observation dropped)", rets.Rows())
	}
	if rets.Date(0) != MustParseDate("2025-01-07") {
		t.Errorf("first return is on %s, want 2025-01-07", rets.Date(0))
	}
	almost(t, rets.At(0, "A"), 0.10)
	almost(t, rets.At(1, "A"), 0.10)
	almost(t, rets.At(0, "B"), -0.10)
	almost(t, rets.At(1, "B"), -0.10)
}

func TestFrame_PctChangeWithGaps(t *testing.T) {
	// a NaN cell yields NaN on both sides of the gap
	f := NewFrameFromSeries([]string{"A", "B"}, map[string]*Series{
		"A": seriesOf(t, "2025-01-06", 100, 110, 121),
		"B": (&Series{}).Append(MustParseDate("2025-01-06"), 50).Append(MustParseDate("2025-01-08"), 55),
	})
	rets := f.PctChange()
	if !math.IsNaN(rets.At(0, "B")) || !math.IsNaN(rets.At(1, "B")) {
		t.Errorf("returns across a gap should be NaN, got %v and %v", rets.At(0, "B"), rets.At(1, "B"))
	}
	almost(t, rets.At(0, "A"), 0.10)
}

func TestFrame_LogChange(t *testing.T) {
	rets := testFrame(t).LogChange()
	almost(t, rets.At(0, "A"), math.Log(1.10))
	almost(t, rets.At(1, "B"), math.Log(0.90))
}

func TestFrame_Resample(t *testing.T) {
	// daily returns spanning a month boundary
	f := NewFrameFromSeries([]string{"A"}, map[string]*Series{
		"A": seriesOf(t, "2025-01-30", 100, 110, 121, 133.1),
	})
	monthly := f.PctChange().Resample(Monthly)

	if monthly.Rows() != 2 {
		t.Fatalf("Resample produced %d rows, want 2", monthly.Rows())
	}
	// January: one 10% return, labeled with the month end
	if monthly.Date(0) != MustParseDate("2025-01-31") {
		t.Errorf("january label is %s", monthly.Date(0))
	}
	almost(t, monthly.At(0, "A"), 0.10)
	// February: two compounded 10% returns, label capped at the last date
	if monthly.Date(1) != MustParseDate("2025-02-02") {
		t.Errorf("trailing partial period label is %s, want the last date", monthly.Date(1))
	}
	almost(t, monthly.At(1, "A"), 1.10*1.10-1)
}

func TestFrame_ResampleDailyIsIdentity(t *testing.T) {
	rets := testFrame(t).PctChange()
	same := rets.Resample(Daily)
	if same.Rows() != rets.Rows() {
		t.Fatalf("daily resample changed the row count")
	}
	for i := 0; i < rets.Rows(); i++ {
		almost(t, same.At(i, "A"), rets.At(i, "A"))
	}
}

func TestFrame_GroupSum(t *testing.T) {
	rets := testFrame(t).PctChange()
	classes := rets.GroupSum([]string{"Equity"}, map[string][]string{"Equity": {"A", "B"}})

	// the class return is the plain sum of member returns
	almost(t, classes.At(0, "Equity"), 0.0)
	almost(t, classes.At(1, "Equity"), 0.0)
}

func TestFrame_GroupSumSkipsNaN(t *testing.T) {
	f := NewFrame([]Date{MustParseDate("2025-01-06")}, []string{"A", "B"})
	f.Set(MustParseDate("2025-01-06"), "A", 0.05)
	// B stays NaN

	g := f.GroupSum([]string{"G"}, map[string][]string{"G": {"A", "B"}})
	almost(t, g.At(0, "G"), 0.05)

	// a row where every member is NaN sums to zero
	allNaN := NewFrame([]Date{MustParseDate("2025-01-06")}, []string{"A"})
	g = allNaN.GroupSum([]string{"G"}, map[string][]string{"G": {"A"}})
	almost(t, g.At(0, "G"), 0)
}

func TestFrame_CommonWindow(t *testing.T) {
	// A covers 01-06..01-10, B covers 01-08..01-12
	f := NewFrameFromSeries([]string{"A", "B"}, map[string]*Series{
		"A": seriesOf(t, "2025-01-06", 1, 2, 3, 4, 5),
		"B": seriesOf(t, "2025-01-08", 10, 11, 12, 13, 14),
	})
	win, err := f.CommonWindow()
	if err != nil {
		t.Fatal(err)
	}
	if win.Date(0) != MustParseDate("2025-01-08") {
		t.Errorf("window starts at %s, want 2025-01-08", win.Date(0))
	}
	if last := win.Date(win.Rows() - 1); last != MustParseDate("2025-01-10") {
		t.Errorf("window ends at %s, want 2025-01-10", last)
	}
}

func TestFrame_CommonWindowDisjoint(t *testing.T) {
	f := NewFrameFromSeries([]string{"A", "B"}, map[string]*Series{
		"A": seriesOf(t, "2025-01-06", 1, 2),
		"B": seriesOf(t, "2025-02-06", 10, 11),
	})
	if _, err := f.CommonWindow(); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("disjoint histories should give ErrInsufficientHistory, got %v", err)
	}

	empty := NewFrame([]Date{MustParseDate("2025-01-06")}, []string{"A"})
	if _, err := empty.CommonWindow(); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("all-NaN column should give ErrInsufficientHistory, got %v", err)
	}
}

func TestFrame_Fills(t *testing.T) {
	f := NewFrame(Calendar(MustParseDate("2025-01-06"), MustParseDate("2025-01-09")), []string{"A"})
	f.Set(MustParseDate("2025-01-07"), "A", 5)

	ff := f.ForwardFill()
	if !math.IsNaN(ff.At(0, "A")) {
		t.Error("ForwardFill should leave leading NaN untouched")
	}
	almost(t, ff.At(2, "A"), 5)
	almost(t, ff.At(3, "A"), 5)

	bf := f.BackFill()
	almost(t, bf.At(0, "A"), 5)
	if !math.IsNaN(bf.At(3, "A")) {
		t.Error("BackFill should leave trailing NaN untouched")
	}
}

func TestFrame_RollingSum(t *testing.T) {
	f := NewFrameFromSeries([]string{"A"}, map[string]*Series{
		"A": seriesOf(t, "2025-01-06", 1, 2, 3, 4),
	})
	roll := f.RollingSum(2)
	if !math.IsNaN(roll.At(0, "A")) {
		t.Error("cell before the first full window should be NaN")
	}
	almost(t, roll.At(1, "A"), 3)
	almost(t, roll.At(2, "A"), 5)
	almost(t, roll.At(3, "A"), 7)
}

func TestFrame_FillNaN(t *testing.T) {
	f := NewFrame([]Date{MustParseDate("2025-01-06")}, []string{"A"})
	filled := f.FillNaN(0)
	almost(t, filled.At(0, "A"), 0)
	// the source is untouched
	if !math.IsNaN(f.At(0, "A")) {
		t.Error("FillNaN mutated its receiver")
	}
}

func TestFrame_Select(t *testing.T) {
	f := testFrame(t)
	sub, err := f.Select([]string{"B"})
	if err != nil {
		t.Fatal(err)
	}
	if cols := sub.Columns(); len(cols) != 1 || cols[0] != "B" {
		t.Errorf("Select kept columns %v", cols)
	}
	if _, err := f.Select([]string{"Z"}); err == nil {
		t.Error("Select should reject an unknown column")
	}
}
