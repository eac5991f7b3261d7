package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the allocation pivot and the profit-and-loss
// breakdown as one report.
func SummaryMarkdown(asOf folio.Date, pivot []folio.PivotRow, pnl []folio.PnLRow) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", asOf))

	doc.H2("Allocation")
	doc.Table(pivotTable(pivot))

	if len(pnl) > 0 {
		doc.H2("Profit and Loss")
		rows := make([][]string, 0, len(pnl))
		for _, r := range pnl {
			rows = append(rows, []string{r.Class, r.PnL.SignedString()})
		}
		doc.Table(md.TableSet{Header: []string{"Class", "PnL"}, Rows: rows})
	}

	return doc.String()
}

func pivotTable(pivot []folio.PivotRow) md.TableSet {
	// The deepest populated field decides the table shape.
	withInstrument := false
	withClass := false
	for _, r := range pivot {
		withInstrument = withInstrument || r.Instrument != ""
		withClass = withClass || r.AssetClass != ""
	}

	var header []string
	switch {
	case withInstrument:
		header = []string{"Macro Asset Class", "Asset Class", "Instrument", "Name", "Value", "Weight"}
	case withClass:
		header = []string{"Macro Asset Class", "Asset Class", "Value", "Weight"}
	default:
		header = []string{"Macro Asset Class", "Value", "Weight"}
	}

	var rows [][]string
	for _, r := range pivot {
		switch {
		case withInstrument:
			rows = append(rows, []string{r.MacroAssetClass, r.AssetClass, r.Instrument, r.Name, r.Value.String(), r.Weight.String()})
		case withClass:
			rows = append(rows, []string{r.MacroAssetClass, r.AssetClass, r.Value.String(), r.Weight.String()})
		default:
			rows = append(rows, []string{r.MacroAssetClass, r.Value.String(), r.Weight.String()})
		}
	}
	return md.TableSet{Header: header, Rows: rows}
}
