package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
)

// WealthMarkdown renders the reconstructed wealth history: the latest
// valuation, then the last 'tail' daily points.
func WealthMarkdown(history *folio.WealthHistory, currency string, tail int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	latest := history.Latest()
	doc.H1(fmt.Sprintf("Portfolio Wealth on %s", latest.Date))
	doc.PlainText(fmt.Sprintf("Value: %s, Invested: %s, PnL: %s",
		folio.M(latest.Value, currency),
		folio.M(latest.Invested, currency),
		folio.M(latest.PnL, currency).SignedString()))

	if len(history.Skipped) > 0 {
		doc.PlainText(fmt.Sprintf("No price data for %s: their contribution is not included.",
			strings.Join(history.Skipped, ", ")))
	}

	doc.H2("Daily History")
	points := history.Points
	if tail > 0 && len(points) > tail {
		points = points[len(points)-tail:]
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Date.String(),
			folio.M(p.Value, currency).String(),
			folio.M(p.Delta, currency).SignedString(),
			folio.M(p.Invested, currency).String(),
			folio.M(p.PnL, currency).SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Value", "Delta", "Invested", "PnL"},
		Rows:   rows,
	})

	return doc.String()
}
