package cgd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
	enc "github.com/MrJamesThe3rd/pocketplan/internal/encoding"
)

var ErrUnknownFormat = errors.New("no matching CGD format found: expected columns for conta, extrato, or cartão")

// Parser reads CGD CSV exports into actual budget entries. The export flavour
// (conta, extrato, cartão) is picked from the header row.
type Parser struct {
	loc *time.Location
}

// NewParser builds a Parser that reads row dates as midnight in loc.
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}

	return &Parser{loc: loc}
}

func (p *Parser) Parse(r io.Reader) ([]budget.Entry, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1, p.loc)
}

type colIndex map[string]int

// detectProfile returns the first profile whose columns all appear in one row,
// with that row's column positions and index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows reads the data rows following the header at headerRowNum (0-based).
// Rows without a date or a non-zero amount are skipped as footers or separators.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int, loc *time.Location) ([]budget.Entry, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	entries := make([]budget.Entry, 0, len(rows))

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		date, ok := parseDate(row, dateIdx, loc)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, kind, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		entries = append(entries, budget.Entry{
			Description: desc,
			Amount:      formatAmount(amount),
			Kind:        kind,
			Date:        date,
		})
	}

	return entries, nil
}

func parseDate(row []string, idx int, loc *time.Location) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func parseAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, budget.Kind, bool) {
	switch p.AmountMode {
	case amountSingle:
		return parseSingleAmount(row, cols[p.AmountCol])
	case amountSplit:
		return parseSplitAmount(row, cols[p.DebitCol], cols[p.CreditCol])
	}

	return decimal.Zero, "", false
}

// parseSingleAmount reads one signed column: negative is an expense.
func parseSingleAmount(row []string, idx int) (decimal.Decimal, budget.Kind, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, "", false
	}

	amount, err := parseEuropeanAmount(s)
	if err != nil || amount.IsZero() {
		return decimal.Zero, "", false
	}

	if amount.IsNegative() {
		return amount, budget.KindExpense, true
	}

	return amount, budget.KindIncome, true
}

// parseSplitAmount reads separate debit and credit columns; debit wins when both are set.
func parseSplitAmount(row []string, debitIdx, creditIdx int) (decimal.Decimal, budget.Kind, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		amount, err := parseEuropeanAmount(s)
		if err == nil && !amount.IsZero() {
			return amount, budget.KindExpense, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		amount, err := parseEuropeanAmount(s)
		if err == nil && !amount.IsZero() {
			return amount, budget.KindIncome, true
		}
	}

	return decimal.Zero, "", false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
