package cmd

import (
	"context"
	"flag"

	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// wealthCmd holds the flags for the 'wealth' subcommand.
type wealthCmd struct {
	workbook string
	asOf     string
	tail     int
}

func (*wealthCmd) Name() string     { return "wealth" }
func (*wealthCmd) Synopsis() string { return "display the reconstructed daily portfolio value" }
func (*wealthCmd) Usage() string {
	return `folio wealth [-f <workbook>] [-d <date>] [-n <rows>]

  Rebuilds the daily portfolio value from the first transaction to the
  as-of date, with invested capital and profit-and-loss per day.
`
}

func (c *wealthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.workbook, "f", "", "Workbook to load. Defaults to $"+workbookEnv+".")
	f.StringVar(&c.asOf, "d", "", "As-of date, ISO or relative like -30d. Defaults to today.")
	f.IntVar(&c.tail, "n", 15, "Number of trailing days to display.")
}

func (c *wealthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := newSession(c.workbook, c.asOf)
	if err != nil {
		return fail(err)
	}

	history, err := session.Wealth()
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.WealthMarkdown(history, session.ReportingCurrency, c.tail))
	return subcommands.ExitSuccess
}
