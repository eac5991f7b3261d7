package renderer

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
)

// DrawdownMarkdown renders the worst peak-to-trough decline per entity and
// the tail of the daily drawdown series.
func DrawdownMarkdown(lv folio.Level, drawdowns *folio.Frame, tail int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Drawdowns (by %s)", lv))

	doc.H2("Maximum Drawdown")
	worst := make(map[string]float64, len(drawdowns.Columns()))
	for _, col := range drawdowns.Columns() {
		min := 0.0
		for _, v := range drawdowns.Column(col) {
			if v < min {
				min = v
			}
		}
		worst[col] = min
	}
	entities := drawdowns.Columns()
	slices.SortFunc(entities, func(a, b string) int {
		switch {
		case worst[a] < worst[b]:
			return -1
		case worst[a] > worst[b]:
			return 1
		default:
			return 0
		}
	})
	rows := make([][]string, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, []string{e, percent(worst[e])})
	}
	doc.Table(md.TableSet{Header: []string{"Entity", "Max Drawdown"}, Rows: rows})

	doc.H2("Recent Drawdown")
	doc.Table(frameTable(drawdowns, tail))

	return doc.String()
}
