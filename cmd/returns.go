package cmd

import (
	"context"
	"flag"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// returnsCmd holds the flags for the 'returns' subcommand.
type returnsCmd struct {
	workbook string
	period   string
	level    string
	tail     int
	ratios   bool
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "display period returns at a chosen frequency and level" }
func (*returnsCmd) Usage() string {
	return `folio returns [-f <workbook>] [-p <period>] [-by <level>] [-n <rows>] [-ratios]

  Displays period-over-period returns of the portfolio instruments or
  classes. Coarser periods compound the daily returns. With -ratios the
  annualized Sharpe and Sortino ratios are appended.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.workbook, "f", "", "Workbook to load. Defaults to $"+workbookEnv+".")
	f.StringVar(&c.period, "p", "monthly", "Frequency: daily, weekly, monthly, quarterly or yearly.")
	f.StringVar(&c.level, "by", "macro", "Aggregation level: instrument, class or macro.")
	f.IntVar(&c.tail, "n", 12, "Number of trailing periods to display.")
	f.BoolVar(&c.ratios, "ratios", false, "Also display Sharpe and Sortino ratios.")
}

func (c *returnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := folio.ParsePeriod(c.period)
	if err != nil {
		return fail(err)
	}
	lv, err := folio.ParseLevel(c.level)
	if err != nil {
		return fail(err)
	}
	session, err := newSession(c.workbook, "")
	if err != nil {
		return fail(err)
	}

	returns, err := session.Returns(period, lv)
	if err != nil {
		return fail(err)
	}
	out := renderer.ReturnsMarkdown(period, lv, returns, c.tail)

	if c.ratios {
		sharpe, err := session.Sharpe()
		if err != nil {
			return fail(err)
		}
		sortino, err := session.Sortino()
		if err != nil {
			return fail(err)
		}
		out += renderer.RatiosMarkdown(sharpe, sortino, folio.RiskFreeOrDefault(session.Rates))
	}

	printMarkdown(out)
	return subcommands.ExitSuccess
}
