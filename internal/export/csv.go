package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// WriteCSV renders st as three blank-line separated sections: summary,
// budgets, transactions.
func WriteCSV(w io.Writer, st *Statement) error {
	cw := csv.NewWriter(w)

	for _, row := range statementRows(st) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// statementRows flattens st into rows shared by every tabular format. An
// empty row separates sections.
func statementRows(st *Statement) [][]string {
	rows := [][]string{
		{"month", st.Month.String()},
		{"income", st.Totals.Income.StringFixed(2)},
		{"expense", st.Totals.Expense.StringFixed(2)},
		{"net", st.Totals.Net.StringFixed(2)},
		{},
		{"category", "cap", "spent", "remaining", "utilization"},
	}

	for _, b := range st.Budgets {
		rows = append(rows, []string{
			b.Category,
			b.Cap.StringFixed(2),
			b.Spent.StringFixed(2),
			b.Remaining().StringFixed(2),
			b.Ratio().StringFixed(4),
		})
	}

	rows = append(rows, []string{}, []string{"date", "kind", "category", "amount", "note"})

	for _, tx := range st.Transactions {
		rows = append(rows, []string{
			tx.CreatedAt.UTC().Format(time.DateOnly),
			string(tx.Kind),
			tx.Category,
			tx.Amount.StringFixed(2),
			tx.Note,
		})
	}

	return rows
}
