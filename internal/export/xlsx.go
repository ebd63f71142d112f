package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary      = "Summary"
	sheetBudgets      = "Budgets"
	sheetTransactions = "Transactions"
)

// WriteXLSX renders st as a workbook with one sheet per section. Amounts are
// written as numbers so the sheet can sum them.
func WriteXLSX(w io.Writer, st *Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}

	summary := [][]any{
		{"Month", st.Month.String()},
		{"Income", st.Totals.Income.InexactFloat64()},
		{"Expense", st.Totals.Expense.InexactFloat64()},
		{"Net", st.Totals.Net.InexactFloat64()},
	}

	budgets := [][]any{{"Category", "Cap", "Spent", "Remaining", "Utilization"}}
	for _, b := range st.Budgets {
		budgets = append(budgets, []any{
			b.Category,
			b.Cap.InexactFloat64(),
			b.Spent.InexactFloat64(),
			b.Remaining().InexactFloat64(),
			b.Ratio().InexactFloat64(),
		})
	}

	txs := [][]any{{"Date", "Kind", "Category", "Amount", "Note"}}
	for _, tx := range st.Transactions {
		txs = append(txs, []any{
			tx.CreatedAt.UTC().Format(time.DateOnly),
			string(tx.Kind),
			tx.Category,
			tx.Amount.InexactFloat64(),
			tx.Note,
		})
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{sheetSummary, summary},
		{sheetBudgets, budgets},
		{sheetTransactions, txs},
	}

	for _, sh := range sheets {
		if sh.name != sheetSummary {
			if _, err := f.NewSheet(sh.name); err != nil {
				return fmt.Errorf("creating sheet %s: %w", sh.name, err)
			}
		}

		if err := writeRows(f, sh.name, sh.rows); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetTransactions, "E", "E", 40); err != nil {
		return fmt.Errorf("sizing note column: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}

	return nil
}
