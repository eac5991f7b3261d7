package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
)

// RiskMarkdown renders the risk decomposition, worst contributors first.
func RiskMarkdown(lv folio.Level, contributions []folio.RiskContribution) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Risk Contributions (by %s)", lv))

	rows := make([][]string, 0, len(contributions))
	for _, c := range contributions {
		rows = append(rows, []string{
			c.Entity,
			fmt.Sprintf("%.2f%%", c.Weight*100),
			fmt.Sprintf("%.4f", c.Marginal),
			fmt.Sprintf("%.2f%%", c.Relative*100),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Entity", "Weight", "Marginal", "Share of Risk"},
		Rows:   rows,
	})

	return doc.String()
}
