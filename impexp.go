package folio

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// This file handles the interchange workbook format: a single spreadsheet
// with a "Transactions History" sheet (one row per buy or sell) and a
// "Securities Master Table" sheet (one row per instrument, its name and its
// place in the asset hierarchy). Index rows, whose ticker starts with "^",
// are benchmark references and are filtered out on load.

const (
	transactionsSheet = "Transactions History"
	securitiesSheet   = "Securities Master Table"
)

// LoadReport summarizes what a workbook import produced. Null counts and
// ticker mismatches are surfaced here so the caller can decide between
// warning and aborting.
type LoadReport struct {
	Transactions int
	Instruments  int
	FirstDate    Date
	LastDate     Date
	// NullCells counts empty cells found in required columns of either sheet.
	NullCells int
	// Unmapped lists traded instruments absent from the master table;
	// Untraded lists master-table instruments never traded. Either is a
	// consistency warning, not an error.
	Unmapped []string
	Untraded []string
}

func (r LoadReport) String() string {
	return fmt.Sprintf("loaded %d transactions over %d instruments, from %s to %s",
		r.Transactions, r.Instruments, r.FirstDate, r.LastDate)
}

// ImportWorkbook reads a ledger and a registry from the interchange
// workbook. Both sheets must be present; rows with missing required cells
// are counted in the report and skipped.
func ImportWorkbook(r io.Reader) (*Ledger, *Registry, *LoadReport, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer wb.Close()

	report := &LoadReport{}
	ledger, err := importTransactions(wb, report)
	if err != nil {
		return nil, nil, nil, err
	}
	registry, err := importSecurities(wb, report)
	if err != nil {
		return nil, nil, nil, err
	}

	report.Transactions = ledger.Len()
	traded := Universe(ledger)
	report.Instruments = len(traded)
	report.FirstDate = ledger.OldestTransactionDate()
	report.LastDate = ledger.NewestTransactionDate()
	for _, inst := range traded {
		if _, ok := registry.Record(inst); !ok {
			report.Unmapped = append(report.Unmapped, inst)
		}
	}
	for rec := range registry.Records() {
		if !slices.Contains(traded, rec.Instrument) {
			report.Untraded = append(report.Untraded, rec.Instrument)
		}
	}
	return ledger, registry, report, nil
}

// header maps column titles to their index, ignoring the currency suffix
// that decorates the money columns ("Price (EUR)", "Price (€)" and plain
// "Price" all map to "Price").
func header(row []string) map[string]int {
	cols := make(map[string]int, len(row))
	for i, title := range row {
		title = strings.TrimSpace(title)
		if j := strings.Index(title, " ("); j > 0 {
			title = title[:j]
		}
		if title != "" {
			cols[title] = i
		}
	}
	return cols
}

func cell(row []string, cols map[string]int, name string) (string, bool) {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	return v, v != ""
}

func importTransactions(wb *excelize.File, report *LoadReport) (*Ledger, error) {
	rows, err := wb.GetRows(transactionsSheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", transactionsSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", transactionsSheet)
	}
	cols := header(rows[0])
	for _, required := range []string{"Ticker", "Transaction Date", "Shares", "Price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("sheet %q has no %q column", transactionsSheet, required)
		}
	}

	ledger := NewLedger()
	for n, row := range rows[1:] {
		ticker, ok := cell(row, cols, "Ticker")
		if !ok {
			report.NullCells++
			continue
		}
		if strings.HasPrefix(ticker, "^") {
			continue
		}
		exchange, _ := cell(row, cols, "Exchange")

		day, ok := cell(row, cols, "Transaction Date")
		if !ok {
			report.NullCells++
			continue
		}
		on, err := ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", transactionsSheet, n+2, err)
		}
		shares, err := floatCell(row, cols, "Shares", report)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", transactionsSheet, n+2, err)
		}
		price, err := floatCell(row, cols, "Price", report)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", transactionsSheet, n+2, err)
		}
		fees, err := floatCell(row, cols, "Fees", report)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", transactionsSheet, n+2, err)
		}

		tx := NewTransaction(on, InstrumentKey(ticker, exchange), shares, price, fees)
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", transactionsSheet, n+2, err)
		}
		ledger.Append(tx)
	}
	return ledger, nil
}

// floatCell parses a numeric cell, treating an empty cell as zero and
// counting it as a null.
func floatCell(row []string, cols map[string]int, name string, report *LoadReport) (float64, error) {
	v, ok := cell(row, cols, name)
	if !ok {
		report.NullCells++
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %s %q: %w", name, v, err)
	}
	return f, nil
}

func importSecurities(wb *excelize.File, report *LoadReport) (*Registry, error) {
	rows, err := wb.GetRows(securitiesSheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", securitiesSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", securitiesSheet)
	}
	cols := header(rows[0])
	for _, required := range []string{"Ticker", "Asset Class", "Macro Asset Class"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("sheet %q has no %q column", securitiesSheet, required)
		}
	}

	registry := NewRegistry()
	for _, row := range rows[1:] {
		ticker, ok := cell(row, cols, "Ticker")
		if !ok {
			report.NullCells++
			continue
		}
		if strings.HasPrefix(ticker, "^") {
			continue
		}
		exchange, _ := cell(row, cols, "Exchange")
		name, _ := cell(row, cols, "Security Name")
		class, ok := cell(row, cols, "Asset Class")
		if !ok {
			report.NullCells++
		}
		macro, ok := cell(row, cols, "Macro Asset Class")
		if !ok {
			report.NullCells++
		}
		sector, _ := cell(row, cols, "Sector_url")

		registry.Add(SecurityRecord{
			Instrument:      InstrumentKey(ticker, exchange),
			Name:            name,
			AssetClass:      class,
			MacroAssetClass: macro,
			SectorRef:       sector,
		})
	}
	return registry, nil
}

// ExportWorkbook writes a ledger and registry back to the interchange
// workbook format.
func ExportWorkbook(w io.Writer, ledger *Ledger, registry *Registry) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if _, err := wb.NewSheet(transactionsSheet); err != nil {
		return err
	}
	if err := wb.SetSheetRow(transactionsSheet, "A1", &[]any{
		"Transaction Date", "Exchange", "Ticker", "Shares", "Price (€)", "Fees (€)",
	}); err != nil {
		return err
	}
	n := 2
	for _, tx := range ledger.Transactions() {
		ticker, exchange := splitKey(tx.Instrument)
		row := []any{tx.Date.String(), exchange, ticker,
			tx.Shares.InexactFloat64(), tx.Price.InexactFloat64(), tx.Fees.InexactFloat64()}
		if err := wb.SetSheetRow(transactionsSheet, fmt.Sprintf("A%d", n), &row); err != nil {
			return err
		}
		n++
	}

	if _, err := wb.NewSheet(securitiesSheet); err != nil {
		return err
	}
	if err := wb.SetSheetRow(securitiesSheet, "A1", &[]any{
		"Exchange", "Ticker", "Security Name", "Asset Class", "Macro Asset Class", "Sector_url",
	}); err != nil {
		return err
	}
	n = 2
	for rec := range registry.Records() {
		ticker, exchange := splitKey(rec.Instrument)
		row := []any{exchange, ticker, rec.Name, rec.AssetClass, rec.MacroAssetClass, rec.SectorRef}
		if err := wb.SetSheetRow(securitiesSheet, fmt.Sprintf("A%d", n), &row); err != nil {
			return err
		}
		n++
	}

	wb.DeleteSheet("Sheet1")
	_, err := wb.WriteTo(w)
	return err
}

// splitKey splits an instrument key back into ticker and exchange.
func splitKey(instrument string) (ticker, exchange string) {
	if i := strings.LastIndex(instrument, "."); i >= 0 {
		return instrument[:i], instrument[i+1:]
	}
	return instrument, ""
}
