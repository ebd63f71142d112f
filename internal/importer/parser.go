// Package importer turns uploaded CSV files into transaction candidates.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	enc "github.com/MrJamesThe3rd/pfms/internal/encoding"
	"github.com/MrJamesThe3rd/pfms/internal/transaction"
)

// Parser reads ledger CSV exports. The header row may be preceded by
// free-form preamble lines; it is found by matching column names against
// the known profiles. Fields may be separated by ';' or ','.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// record is one CSV row plus the file line it started on.
type record struct {
	line  int
	cells []string
}

type colIndex map[string]int

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	records, err := readRecords(data, detectDelimiter(data))
	if err != nil {
		return nil, err
	}

	prof, cols, headerIdx := detectProfile(records)
	if prof == nil {
		return nil, apperr.Invalid("file", "no header row with an 'amount' column was found")
	}

	return parseRows(prof, cols, records[headerIdx+1:])
}

// detectDelimiter picks ';' or ',' from the first line naming an amount
// column, falling back to the first non-empty line.
func detectDelimiter(data []byte) rune {
	var first []byte

	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if first == nil {
			first = line
		}

		if bytes.Contains(bytes.ToLower(line), []byte(colAmount)) {
			return pickDelimiter(line)
		}
	}

	return pickDelimiter(first)
}

func pickDelimiter(line []byte) rune {
	if bytes.Count(line, []byte{';'}) >= bytes.Count(line, []byte{','}) && bytes.ContainsRune(line, ';') {
		return ';'
	}

	return ','
}

func readRecords(data []byte, delim rune) ([]record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []record

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, apperr.Invalid("file", fmt.Sprintf("malformed csv: %v", err))
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}

	return records, nil
}

func detectProfile(records []record) (*profile, colIndex, int) {
	for idx, rec := range records {
		cols := make(colIndex)

		for i, cell := range rec.cells {
			name, ok := aliases[strings.ToLower(strings.TrimSpace(cell))]
			if !ok {
				continue
			}

			if _, seen := cols[name]; !seen {
				cols[name] = i
			}
		}

		for i := range profiles {
			if profiles[i].matches(cols) {
				return &profiles[i], cols, idx
			}
		}
	}

	return nil, nil, 0
}

func parseRows(p *profile, cols colIndex, records []record) ([]transaction.CreateParams, error) {
	var out []transaction.CreateParams

	for _, rec := range records {
		raw := cellValue(rec.cells, cols, colAmount)
		if raw == "" {
			// Blank separators and footer lines carry no amount.
			continue
		}

		amount, err := parseAmount(raw)
		if err != nil {
			return nil, apperr.Invalid("amount", fmt.Sprintf("line %d: cannot parse %q", rec.line, raw))
		}

		params := transaction.CreateParams{
			Amount:   amount,
			Category: cellValue(rec.cells, cols, colCategory),
			Note:     cellValue(rec.cells, cols, colNote),
		}

		if p.signed {
			if amount.IsZero() {
				continue
			}

			params.Kind = transaction.KindIncome
			if amount.IsNegative() {
				params.Kind = transaction.KindExpense
				params.Amount = amount.Neg()
			}
		} else {
			params.Kind = transaction.Kind(strings.ToLower(cellValue(rec.cells, cols, colKind)))
		}

		out = append(out, params)
	}

	return out, nil
}

// cellValue returns the trimmed cell for the named column, or "" when the
// column is absent or the row is short.
func cellValue(cells []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(cells) {
		return ""
	}

	return strings.TrimSpace(cells[idx])
}
