package cmd

import (
	"context"
	"flag"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	workbook string
	level    string
	all      bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio allocation and profit-and-loss" }
func (*summaryCmd) Usage() string {
	return `folio summary [-f <workbook>] [-by <level>] [-all]

  Displays the current allocation pivot, grouped at the chosen level of the
  asset hierarchy, and the unrealized profit-and-loss per class.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.workbook, "f", "", "Workbook to load. Defaults to $"+workbookEnv+".")
	f.StringVar(&c.level, "by", "macro", "Aggregation level: instrument, class or macro.")
	f.BoolVar(&c.all, "all", false, "Include fully exited positions.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lv, err := folio.ParseLevel(c.level)
	if err != nil {
		return fail(err)
	}
	session, err := newSession(c.workbook, "")
	if err != nil {
		return fail(err)
	}

	pivot, err := session.Pivot(lv)
	if err != nil {
		return fail(err)
	}
	var pnl []folio.PnLRow
	if lv != folio.InstrumentLevel {
		pnl, err = session.PnL(lv)
		if err != nil {
			return fail(err)
		}
	}

	printMarkdown(renderer.SummaryMarkdown(session.AsOf, pivot, pnl))
	return subcommands.ExitSuccess
}
