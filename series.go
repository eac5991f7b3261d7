package folio

import (
	"iter"
	"slices"
)

// Series stores a chronological sequence of float64 values, each associated
// with a specific date. Dates are unique and the sequence is always sorted.
type Series struct {
	days   []Date
	values []float64
}

// Len returns the number of points in the series.
func (s *Series) Len() int { return len(s.days) }

// Append adds a point to the series. An existing value at that date is
// overwritten, giving priority to the last data. Points are inserted at
// their chronological position, so appending already-ordered history (the
// common bulk-load case) costs no re-sort.
func (s *Series) Append(on Date, v float64) *Series {
	i, found := slices.BinarySearchFunc(s.days, on, Date.Compare)
	if found {
		s.values[i] = v
		return s
	}
	s.days = slices.Insert(s.days, i, on)
	s.values = slices.Insert(s.values, i, v)
	return s
}

// Get returns the value at 'day' and true, or zero and false.
func (s *Series) Get(day Date) (float64, bool) {
	if i, found := slices.BinarySearchFunc(s.days, day, Date.Compare); found {
		return s.values[i], true
	}
	return 0, false
}

// ValueAsOf returns the value on a given day, or the most recent value
// before it. It returns false if there is no point on or before that day.
func (s *Series) ValueAsOf(day Date) (float64, bool) {
	i, found := slices.BinarySearchFunc(s.days, day, Date.Compare)
	if found {
		return s.values[i], true
	}
	if i == 0 {
		return 0, false
	}
	return s.values[i-1], true
}

// First returns the earliest date and value in the series.
func (s *Series) First() (Date, float64) {
	if len(s.days) == 0 {
		return Date{}, 0
	}
	return s.days[0], s.values[0]
}

// Latest returns the latest date and value in the series.
func (s *Series) Latest() (Date, float64) {
	last := len(s.days) - 1
	if last < 0 {
		return Date{}, 0
	}
	return s.days[last], s.values[last]
}

// Values returns an iterator over all date/value pairs in chronological order.
func (s *Series) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range s.days {
			if !yield(on, s.values[i]) {
				return
			}
		}
	}
}
