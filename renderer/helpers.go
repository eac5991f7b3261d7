package renderer

import (
	"fmt"
	"math"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
)

// percent formats a fractional value (0.05 -> "+5.00%"). NaN cells render
// as a dash so a sparse table stays readable.
func percent(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", v*100)
}

// frameTable turns the last 'tail' rows of a frame into a markdown table,
// one row per date, one column per entity, values formatted as percents.
// A non-positive tail keeps every row.
func frameTable(f *folio.Frame, tail int) md.TableSet {
	dates := f.Dates()
	first := 0
	if tail > 0 && len(dates) > tail {
		first = len(dates) - tail
	}
	cols := f.Columns()

	header := append([]string{"Date"}, cols...)
	var rows [][]string
	for i := first; i < len(dates); i++ {
		row := []string{f.Date(i).String()}
		for _, c := range cols {
			row = append(row, percent(f.At(i, c)))
		}
		rows = append(rows, row)
	}
	return md.TableSet{Header: header, Rows: rows}
}
