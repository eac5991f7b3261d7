// Package cmd implements the CLI application to analyze a portfolio
// workbook.
package cmd

import (
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

// Commands lists the subcommands a main package registers.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&returnsCmd{},
	&riskCmd{},
	&drawdownCmd{},
	&wealthCmd{},
}

// newSession loads the workbook and assembles the session every subcommand
// works on. Consistency warnings from the load report go to stderr; null
// cells in required columns abort, matching the loader's contract.
func newSession(workbook, asOf string) (*folio.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if workbook == "" {
		workbook = cfg.Workbook
	}
	if workbook == "" {
		return nil, fmt.Errorf("no workbook given: use -f or set %s", workbookEnv)
	}

	f, err := os.Open(workbook)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	ledger, registry, report, err := folio.ImportWorkbook(f)
	if err != nil {
		return nil, err
	}
	if report.NullCells > 0 {
		return nil, fmt.Errorf("workbook has %d null cells in required columns", report.NullCells)
	}
	if len(report.Unmapped) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: traded instruments missing from the master table: %v\n", report.Unmapped)
	}
	if len(report.Untraded) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: master table instruments never traded: %v\n", report.Untraded)
	}
	fmt.Fprintln(os.Stderr, report)

	session, err := folio.NewSession(ledger, registry, cfg.provider(), cfg.Currency)
	if err != nil {
		return nil, err
	}
	session.Rates = folio.ConstantRate(cfg.RiskFreeRate)
	if asOf != "" {
		on, err := folio.ParseDate(asOf)
		if err != nil {
			return nil, err
		}
		session.AsOf = on
	}
	return session, nil
}

// fail prints the error and maps it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
