package folio

import (
	"fmt"
	"math"
	"slices"
)

// Frame is a date-indexed matrix of float64 values with named columns, the
// shape shared by price matrices and return tables. Rows are calendar or
// trading days in chronological order; missing cells hold NaN. Columns are
// an explicit ordered set keyed by name (one per instrument or per asset
// class), never a dynamic schema.
type Frame struct {
	dates []Date
	cols  []string
	data  map[string][]float64
}

// NewFrame creates a frame with the given rows and columns, all cells NaN.
func NewFrame(dates []Date, cols []string) *Frame {
	f := &Frame{
		dates: slices.Clone(dates),
		cols:  slices.Clone(cols),
		data:  make(map[string][]float64, len(cols)),
	}
	for _, c := range f.cols {
		vals := make([]float64, len(f.dates))
		for i := range vals {
			vals[i] = math.NaN()
		}
		f.data[c] = vals
	}
	return f
}

// NewFrameFromSeries aligns one series per column over the union of their
// dates. Column order follows 'cols'; a nil series yields an all-NaN column.
func NewFrameFromSeries(cols []string, series map[string]*Series) *Frame {
	var days []Date
	for _, c := range cols {
		s := series[c]
		if s == nil {
			continue
		}
		for on := range s.Values() {
			if !slices.Contains(days, on) {
				days = append(days, on)
			}
		}
	}
	slices.SortFunc(days, Date.Compare)

	f := NewFrame(days, cols)
	for _, c := range cols {
		s := series[c]
		if s == nil {
			continue
		}
		for on, v := range s.Values() {
			f.Set(on, c, v)
		}
	}
	return f
}

// Rows returns the number of rows in the frame.
func (f *Frame) Rows() int { return len(f.dates) }

// Dates returns the frame's row dates in chronological order.
func (f *Frame) Dates() []Date { return slices.Clone(f.dates) }

// Columns returns the frame's column names in order.
func (f *Frame) Columns() []string { return slices.Clone(f.cols) }

// Date returns the date of row i.
func (f *Frame) Date(i int) Date { return f.dates[i] }

// At returns the value at row i for the named column.
func (f *Frame) At(i int, col string) float64 {
	vals, ok := f.data[col]
	if !ok {
		return math.NaN()
	}
	return vals[i]
}

// Set writes a value for (date, column). Unknown dates or columns are ignored.
func (f *Frame) Set(on Date, col string, v float64) {
	vals, ok := f.data[col]
	if !ok {
		return
	}
	if i, found := slices.BinarySearchFunc(f.dates, on, Date.Compare); found {
		vals[i] = v
	}
}

// Column returns a copy of the named column's values.
func (f *Frame) Column(col string) []float64 {
	return slices.Clone(f.data[col])
}

// Last returns the last row as a column-keyed map, with its date.
func (f *Frame) Last() (Date, map[string]float64) {
	if len(f.dates) == 0 {
		return Date{}, nil
	}
	i := len(f.dates) - 1
	row := make(map[string]float64, len(f.cols))
	for _, c := range f.cols {
		row[c] = f.data[c][i]
	}
	return f.dates[i], row
}

// Select returns a frame restricted to the given columns, in the given order.
func (f *Frame) Select(cols []string) (*Frame, error) {
	sub := &Frame{dates: slices.Clone(f.dates), cols: slices.Clone(cols), data: make(map[string][]float64, len(cols))}
	for _, c := range cols {
		vals, ok := f.data[c]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", c)
		}
		sub.data[c] = slices.Clone(vals)
	}
	return sub, nil
}

// Slice returns the rows from 'from' (inclusive) onwards.
func (f *Frame) Slice(from Date) *Frame {
	i, _ := slices.BinarySearchFunc(f.dates, from, Date.Compare)
	sub := &Frame{dates: slices.Clone(f.dates[i:]), cols: slices.Clone(f.cols), data: make(map[string][]float64, len(f.cols))}
	for _, c := range f.cols {
		sub.data[c] = slices.Clone(f.data[c][i:])
	}
	return sub
}

func (f *Frame) clone() *Frame {
	c := &Frame{dates: slices.Clone(f.dates), cols: slices.Clone(f.cols), data: make(map[string][]float64, len(f.cols))}
	for _, col := range f.cols {
		c.data[col] = slices.Clone(f.data[col])
	}
	return c
}

// ForwardFill returns a copy where every NaN cell takes the last preceding
// valid value of its column. Leading NaNs are left untouched.
func (f *Frame) ForwardFill() *Frame {
	c := f.clone()
	for _, col := range c.cols {
		vals := c.data[col]
		last := math.NaN()
		for i, v := range vals {
			if math.IsNaN(v) {
				vals[i] = last
			} else {
				last = v
			}
		}
	}
	return c
}

// BackFill returns a copy where every leading NaN takes the first following
// valid value of its column. This is the documented approximation for
// instruments whose price history starts after the ledger does (for example
// a fund that changed its identifying symbol): the first available price is
// propagated backwards as a constant.
func (f *Frame) BackFill() *Frame {
	c := f.clone()
	for _, col := range c.cols {
		vals := c.data[col]
		next := math.NaN()
		for i := len(vals) - 1; i >= 0; i-- {
			if math.IsNaN(vals[i]) {
				vals[i] = next
			} else {
				next = vals[i]
			}
		}
	}
	return c
}

// CommonWindow restricts the frame to the range where every column has data:
// from the latest first-valid date to the earliest last-valid date. It
// returns ErrInsufficientHistory when the intersection is empty.
func (f *Frame) CommonWindow() (*Frame, error) {
	first, last := 0, len(f.dates)-1
	for _, col := range f.cols {
		vals := f.data[col]
		i := 0
		for i < len(vals) && math.IsNaN(vals[i]) {
			i++
		}
		if i == len(vals) {
			return nil, fmt.Errorf("column %q has no data: %w", col, ErrInsufficientHistory)
		}
		if i > first {
			first = i
		}
		j := len(vals) - 1
		for j >= 0 && math.IsNaN(vals[j]) {
			j--
		}
		if j < last {
			last = j
		}
	}
	if last < first {
		return nil, ErrInsufficientHistory
	}
	sub := &Frame{dates: slices.Clone(f.dates[first : last+1]), cols: slices.Clone(f.cols), data: make(map[string][]float64, len(f.cols))}
	for _, c := range f.cols {
		sub.data[c] = slices.Clone(f.data[c][first : last+1])
	}
	return sub, nil
}

// PctChange returns the simple fractional period-over-period change
// v[t]/v[t-1] - 1 per column. The first row is dropped: no return is
// defined for the first observation.
func (f *Frame) PctChange() *Frame {
	return f.change(func(prev, cur float64) float64 { return cur/prev - 1 })
}

// LogChange returns the log return ln(v[t]/v[t-1]) per column, first row dropped.
func (f *Frame) LogChange() *Frame {
	return f.change(func(prev, cur float64) float64 { return math.Log(cur / prev) })
}

func (f *Frame) change(fn func(prev, cur float64) float64) *Frame {
	if len(f.dates) == 0 {
		return f.clone()
	}
	out := &Frame{dates: slices.Clone(f.dates[1:]), cols: slices.Clone(f.cols), data: make(map[string][]float64, len(f.cols))}
	for _, col := range f.cols {
		vals := f.data[col]
		ch := make([]float64, len(vals)-1)
		for i := 1; i < len(vals); i++ {
			prev, cur := vals[i-1], vals[i]
			if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
				ch[i-1] = math.NaN()
			} else {
				ch[i-1] = fn(prev, cur)
			}
		}
		out.data[col] = ch
	}
	return out
}

// Resample aggregates a return frame to a coarser period by compounding:
// period return = prod(1+r) - 1 over the rows falling in each period. Rows
// are labeled with the period end date, capped at the frame's last date for
// the trailing partial period. NaN cells are skipped.
func (f *Frame) Resample(period Period) *Frame {
	if period == Daily || len(f.dates) == 0 {
		return f.clone()
	}
	lastDate := f.dates[len(f.dates)-1]

	var labels []Date
	groups := make(map[Date][]int)
	for i, on := range f.dates {
		label := on.EndOf(period)
		if label.After(lastDate) {
			label = lastDate
		}
		if _, seen := groups[label]; !seen {
			labels = append(labels, label)
		}
		groups[label] = append(groups[label], i)
	}

	out := NewFrame(labels, f.cols)
	for _, col := range f.cols {
		vals := f.data[col]
		for _, label := range labels {
			prod, any := 1.0, false
			for _, i := range groups[label] {
				if v := vals[i]; !math.IsNaN(v) {
					prod *= 1 + v
					any = true
				}
			}
			if any {
				out.Set(label, col, prod-1)
			}
		}
	}
	return out
}

// RollingSum returns the sliding-window sum per column. A cell is NaN until
// the window is full or when any value inside the window is NaN.
func (f *Frame) RollingSum(window int) *Frame {
	return f.RollingApply(window, func(win []float64) float64 {
		sum := 0.0
		for _, v := range win {
			sum += v
		}
		return sum
	})
}

// RollingApply evaluates fn over each full sliding window per column. Cells
// before the first full window, or whose window contains NaN, are NaN. The
// window is re-evaluated from scratch at every step.
func (f *Frame) RollingApply(window int, fn func([]float64) float64) *Frame {
	out := NewFrame(f.dates, f.cols)
	if window <= 0 {
		return out
	}
	for _, col := range f.cols {
		vals := f.data[col]
		res := out.data[col]
		for i := window - 1; i < len(vals); i++ {
			win := vals[i-window+1 : i+1]
			if slices.ContainsFunc(win, math.IsNaN) {
				continue
			}
			res[i] = fn(win)
		}
	}
	return out
}

// GroupSum collapses columns into one column per group, each row holding the
// sum of the group's member columns. NaN members are skipped; a row where
// every member is NaN sums to zero. This is the class-aggregation convention
// inherited from the deployed system: per-period fractional returns are
// summed, not capital-weighted (see WeightedPeriodReturns for the
// capital-weighted variant).
func (f *Frame) GroupSum(order []string, groups map[string][]string) *Frame {
	out := NewFrame(f.dates, order)
	for _, g := range order {
		res := out.data[g]
		for i := range f.dates {
			sum := 0.0
			for _, member := range groups[g] {
				if vals, ok := f.data[member]; ok && !math.IsNaN(vals[i]) {
					sum += vals[i]
				}
			}
			res[i] = sum
		}
	}
	return out
}

// FillNaN returns a copy with every NaN cell replaced by v.
func (f *Frame) FillNaN(v float64) *Frame {
	c := f.clone()
	for _, col := range c.cols {
		vals := c.data[col]
		for i := range vals {
			if math.IsNaN(vals[i]) {
				vals[i] = v
			}
		}
	}
	return c
}
