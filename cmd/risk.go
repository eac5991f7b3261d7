package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// riskCmd holds the flags for the 'risk' subcommand.
type riskCmd struct {
	workbook string
	level    string
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "display the portfolio risk decomposition" }
func (*riskCmd) Usage() string {
	return `folio risk [-f <workbook>] [-by <level>]

  Decomposes annualized portfolio variance into relative contributions per
  instrument or per class, worst contributor first. The computation uses
  the common history window shared by every instrument.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.workbook, "f", "", "Workbook to load. Defaults to $"+workbookEnv+".")
	f.StringVar(&c.level, "by", "macro", "Aggregation level: instrument, class or macro.")
}

func (c *riskCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lv, err := folio.ParseLevel(c.level)
	if err != nil {
		return fail(err)
	}
	session, err := newSession(c.workbook, "")
	if err != nil {
		return fail(err)
	}

	contributions, err := session.RiskContributions(lv)
	if errors.Is(err, folio.ErrDegenerateRisk) {
		fmt.Fprintln(os.Stderr, "Risk decomposition is undefined: the portfolio needs at least two entities with non-zero variance.")
		return subcommands.ExitFailure
	}
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.RiskMarkdown(lv, contributions))
	return subcommands.ExitSuccess
}
