package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
)

// ReturnsMarkdown renders a period-return frame, keeping the last 'tail'
// periods.
func ReturnsMarkdown(period folio.Period, lv folio.Level, returns *folio.Frame, tail int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Returns (%s, by %s)", period, lv))
	doc.Table(frameTable(returns, tail))

	return doc.String()
}

// RatiosMarkdown renders the risk-adjusted performance ratios.
func RatiosMarkdown(sharpe, sortino, riskFree float64) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Risk-Adjusted Performance")
	doc.Table(md.TableSet{
		Header: []string{"Ratio", "Value"},
		Rows: [][]string{
			{"Sharpe", fmt.Sprintf("%.2f", sharpe)},
			{"Sortino", fmt.Sprintf("%.2f", sortino)},
			{"Risk-free rate", fmt.Sprintf("%.2f%%", riskFree)},
		},
	})

	return doc.String()
}
