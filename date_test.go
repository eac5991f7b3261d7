package folio

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in   string
		want Date
	}{
		{"2025-07-01", NewDate(2025, time.July, 1)},
		{"2025-7-1", NewDate(2025, time.July, 1)},
		{" 2025-01-31 ", NewDate(2025, time.January, 31)},
	}
	for _, tc := range testCases {
		got, err := ParseDate(tc.in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := ParseDate("not-a-date"); err == nil {
		t.Error("ParseDate should reject garbage")
	}
}

func TestParseDate_Relative(t *testing.T) {
	today := Today()

	got, err := ParseDate("-30d")
	if err != nil {
		t.Fatal(err)
	}
	if got != today.Add(-30) {
		t.Errorf("-30d = %s, want %s", got, today.Add(-30))
	}

	got, err = ParseDate("+2w")
	if err != nil {
		t.Fatal(err)
	}
	if got != today.Add(14) {
		t.Errorf("+2w = %s, want %s", got, today.Add(14))
	}

	got, err = ParseDate("0d")
	if err != nil {
		t.Fatal(err)
	}
	if got != today {
		t.Errorf("0d = %s, want today %s", got, today)
	}
}

func TestStartEndOf(t *testing.T) {
	d := MustParseDate("2025-08-14") // a Thursday
	testCases := []struct {
		period     Period
		start, end string
	}{
		{Daily, "2025-08-14", "2025-08-14"},
		{Weekly, "2025-08-11", "2025-08-17"},
		{Monthly, "2025-08-01", "2025-08-31"},
		{Quarterly, "2025-07-01", "2025-09-30"},
		{Yearly, "2025-01-01", "2025-12-31"},
	}
	for _, tc := range testCases {
		if got := d.StartOf(tc.period); got != MustParseDate(tc.start) {
			t.Errorf("StartOf(%s) = %s, want %s", tc.period, got, tc.start)
		}
		if got := d.EndOf(tc.period); got != MustParseDate(tc.end) {
			t.Errorf("EndOf(%s) = %s, want %s", tc.period, got, tc.end)
		}
	}
}

func TestCalendar(t *testing.T) {
	days := Calendar(MustParseDate("2025-01-06"), MustParseDate("2025-01-09"))
	if len(days) != 4 {
		t.Fatalf("Calendar has %d days, want 4", len(days))
	}
	if days[0] != MustParseDate("2025-01-06") || days[3] != MustParseDate("2025-01-09") {
		t.Errorf("Calendar bounds are %s..%s", days[0], days[3])
	}

	// the calendar includes non-trading days
	weekend := Calendar(MustParseDate("2025-01-10"), MustParseDate("2025-01-13"))
	if len(weekend) != 4 {
		t.Fatalf("Calendar over a weekend has %d days, want 4", len(weekend))
	}
	if weekend[1].Weekday() != time.Saturday || weekend[2].Weekday() != time.Sunday {
		t.Errorf("Calendar dropped the weekend: %v", weekend)
	}
}

func TestDays(t *testing.T) {
	from := MustParseDate("2025-01-06")
	if got := from.Days(MustParseDate("2025-01-09")); got != 3 {
		t.Errorf("Days = %d, want 3", got)
	}
	if got := from.Days(MustParseDate("2025-01-05")); got != -1 {
		t.Errorf("Days backwards = %d, want -1", got)
	}
}

func TestParsePeriod(t *testing.T) {
	for _, in := range []string{"monthly", "Month", " MONTHLY "} {
		p, err := ParsePeriod(in)
		if err != nil || p != Monthly {
			t.Errorf("ParsePeriod(%q) = %v, %v", in, p, err)
		}
	}
	if _, err := ParsePeriod("fortnightly"); err == nil {
		t.Error("ParsePeriod should reject unknown period")
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want Level
	}{
		{"instrument", InstrumentLevel},
		{"ticker", InstrumentLevel},
		{"class", AssetClassLevel},
		{"asset_class", AssetClassLevel},
		{"macro", MacroAssetClassLevel},
	}
	for _, tc := range testCases {
		got, err := ParseLevel(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tc.in, got, err)
		}
	}
	if _, err := ParseLevel("sector"); err == nil {
		t.Error("ParseLevel should reject unknown level")
	}
}
