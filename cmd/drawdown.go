package cmd

import (
	"context"
	"flag"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// drawdownCmd holds the flags for the 'drawdown' subcommand.
type drawdownCmd struct {
	workbook string
	level    string
	tail     int
}

func (*drawdownCmd) Name() string     { return "drawdown" }
func (*drawdownCmd) Synopsis() string { return "display peak-to-trough drawdowns" }
func (*drawdownCmd) Usage() string {
	return `folio drawdown [-f <workbook>] [-by <level>] [-n <rows>]

  Displays the worst peak-to-trough decline per entity and the recent
  daily drawdown series.
`
}

func (c *drawdownCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.workbook, "f", "", "Workbook to load. Defaults to $"+workbookEnv+".")
	f.StringVar(&c.level, "by", "macro", "Aggregation level: instrument, class or macro.")
	f.IntVar(&c.tail, "n", 10, "Number of trailing days to display.")
}

func (c *drawdownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lv, err := folio.ParseLevel(c.level)
	if err != nil {
		return fail(err)
	}
	session, err := newSession(c.workbook, "")
	if err != nil {
		return fail(err)
	}

	drawdowns, err := session.Drawdowns(lv)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.DrawdownMarkdown(lv, drawdowns, c.tail))
	return subcommands.ExitSuccess
}
