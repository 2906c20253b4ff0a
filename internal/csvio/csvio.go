// Package csvio reads and writes the delimited upload formats of the
// dashboard: the 12-year multi-fund format of general fund percentages and the
// 13-year single-fund format. Parsing validates every cell before returning,
// so callers never see partially parsed data.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/cashflow"
)

var hundred = decimal.NewFromInt(100)

// A year cannot move more than the whole commitment in either direction.
const maxPercentage = 1.0

// ParseError reports malformed input at a specific line of an upload.
// It matches apperrors.ErrInvalidImportFile with errors.Is.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d: column %s: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{apperrors.ErrInvalidImportFile, e.Err}
}

// YearPercentage is one cell of a year column: Offset is the 1-based column
// number (Year1 = 1), Year the calendar year it maps to and Percentage the
// value as a fraction (-12.5 in the file becomes -0.125).
type YearPercentage struct {
	Offset     int
	Year       int
	Percentage float64
}

// SplitNet splits a net percentage into its contribution (<= 0) and
// distribution (>= 0) parts by sign.
func SplitNet(net float64) (contributions, distributions float64) {
	if net < 0 {
		return net, 0
	}
	return 0, net
}

// ParsePercentage parses a percentage cell such as "-12.5" or "12.5%" into a
// fraction between -1 and 1. Empty cells report ok=false without an error.
func ParsePercentage(cell string) (value float64, ok bool, err error) {
	cell = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cell), "%"))
	if cell == "" {
		return 0, false, nil
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return 0, false, fmt.Errorf("invalid percentage %q", cell)
	}
	value = d.Div(hundred).InexactFloat64()
	if !finite(value) || math.Abs(value) > maxPercentage {
		return 0, false, fmt.Errorf("percentage %q must be between -100 and 100", cell)
	}
	return value, true, nil
}

// FormatPercentage formats a fraction as a percentage with four decimals.
// Non-finite values are written as zero.
func FormatPercentage(fraction float64) string {
	return decimal.NewFromFloat(cashflow.Finite(fraction)).Mul(hundred).StringFixed(4)
}

func parseAmount(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	d, err := decimal.NewFromString(strings.ReplaceAll(cell, "_", ""))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", cell)
	}
	amount := d.InexactFloat64()
	if !finite(amount) {
		return 0, fmt.Errorf("amount %q is out of range", cell)
	}
	return amount, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func parseYear(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	year, err := strconv.Atoi(cell)
	if err != nil || year < 1900 || year > 2200 {
		return 0, fmt.Errorf("invalid vintage %q", cell)
	}
	return year, nil
}

func yearColumns(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = "Year" + strconv.Itoa(i+1)
	}
	return cols
}

// headerMatches compares a header record with the expected column names,
// ignoring case, surrounding and inner spaces and a leading byte order mark.
func headerMatches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		cell := strings.TrimPrefix(got[i], "\ufeff")
		cell = strings.ReplaceAll(strings.TrimSpace(cell), " ", "")
		if !strings.EqualFold(cell, want[i]) {
			return false
		}
	}
	return true
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// line is a CSV record together with the line it starts on.
type line struct {
	number int
	fields []string
}

// readLines reads all non-blank records, keeping their line numbers.
func readLines(r io.Reader) ([]line, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var lines []line
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		if blank(record) {
			continue
		}
		number, _ := reader.FieldPos(0)
		lines = append(lines, line{number: number, fields: record})
	}
	return lines, nil
}
