package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/cashflow"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// SingleFundYears is the number of year columns in the single-fund format.
const SingleFundYears = 13

var singleFundHeader = []string{"FundName", "Vintage", "CommitmentAmount", "FundType"}

// SingleFundUpload is a parsed upload in the single-fund format.
type SingleFundUpload struct {
	Name             string
	Vintage          int
	CommitmentAmount float64
	FundType         string
	Percentages      []YearPercentage
}

// Fund returns the fund described by the upload without an ID.
func (u SingleFundUpload) Fund() model.Fund {
	return model.Fund{
		Name:             u.Name,
		Vintage:          u.Vintage,
		CommitmentAmount: u.CommitmentAmount,
		FundType:         u.FundType,
	}
}

// CashflowRecords converts the yearly percentages into year-end cashflow
// records for fundID. A negative percentage is a call, a positive one a
// distribution; NAV is unknown and left at 0.
func (u SingleFundUpload) CashflowRecords(fundID string) []model.CashflowRecord {
	records := make([]model.CashflowRecord, 0, len(u.Percentages))
	for _, p := range u.Percentages {
		amount := cashflow.Finite(u.CommitmentAmount * p.Percentage)
		record := model.CashflowRecord{
			FundID:  fundID,
			Year:    p.Year,
			Quarter: cashflow.ProjectionQuarter,
		}
		if amount < 0 {
			record.Calls = -amount
		} else {
			record.Distributions = amount
		}
		records = append(records, record)
	}
	return records
}

// ParseSingleFund parses an upload in the single-fund format:
//
//	FundName,Vintage,CommitmentAmount,FundType
//	<name>,<vintage>,<commitment>,<type>
//	Year1,...,Year13
//	<pct>,...,<pct>
//
// Year k maps to calendar year vintage + k - 1. Blank lines are ignored.
func ParseSingleFund(r io.Reader) (SingleFundUpload, error) {
	lines, err := readLines(r)
	if err != nil {
		return SingleFundUpload{}, err
	}

	years := yearColumns(SingleFundYears)
	switch {
	case len(lines) == 0:
		return SingleFundUpload{}, &ParseError{Line: 1, Err: errors.New("missing header")}
	case !headerMatches(lines[0].fields, singleFundHeader):
		return SingleFundUpload{}, &ParseError{
			Line: lines[0].number,
			Err:  fmt.Errorf("invalid header, expected %s", strings.Join(singleFundHeader, ",")),
		}
	case len(lines) < 2:
		return SingleFundUpload{}, &ParseError{Line: lines[0].number + 1, Err: errors.New("missing fund details")}
	case len(lines) < 3:
		return SingleFundUpload{}, &ParseError{Line: lines[1].number + 1, Err: errors.New("missing year header")}
	case !headerMatches(lines[2].fields, years):
		return SingleFundUpload{}, &ParseError{
			Line: lines[2].number,
			Err:  fmt.Errorf("invalid year header, expected Year1..Year%d", SingleFundYears),
		}
	case len(lines) < 4:
		return SingleFundUpload{}, &ParseError{Line: lines[2].number + 1, Err: errors.New("missing percentages")}
	case len(lines) > 4:
		return SingleFundUpload{}, &ParseError{Line: lines[4].number, Err: errors.New("unexpected content after percentages")}
	}

	upload, err := parseSingleFundDetails(lines[1])
	if err != nil {
		return SingleFundUpload{}, err
	}

	values := lines[3]
	if len(values.fields) != SingleFundYears {
		return SingleFundUpload{}, &ParseError{
			Line: values.number,
			Err:  fmt.Errorf("expected %d columns, got %d", SingleFundYears, len(values.fields)),
		}
	}
	for k := 1; k <= SingleFundYears; k++ {
		value, ok, err := ParsePercentage(values.fields[k-1])
		if err != nil {
			return SingleFundUpload{}, &ParseError{Line: values.number, Column: years[k-1], Err: err}
		}
		if !ok {
			continue
		}
		upload.Percentages = append(upload.Percentages, YearPercentage{
			Offset:     k,
			Year:       upload.Vintage + k - 1,
			Percentage: value,
		})
	}

	return upload, nil
}

func parseSingleFundDetails(l line) (SingleFundUpload, error) {
	if len(l.fields) != len(singleFundHeader) {
		return SingleFundUpload{}, &ParseError{
			Line: l.number,
			Err:  fmt.Errorf("expected %d columns, got %d", len(singleFundHeader), len(l.fields)),
		}
	}

	upload := SingleFundUpload{
		Name:     strings.TrimSpace(l.fields[0]),
		FundType: strings.TrimSpace(l.fields[3]),
	}
	if upload.Name == "" {
		return SingleFundUpload{}, &ParseError{Line: l.number, Column: singleFundHeader[0], Err: errors.New("fund name is required")}
	}

	vintage, err := parseYear(l.fields[1])
	if err != nil {
		return SingleFundUpload{}, &ParseError{Line: l.number, Column: singleFundHeader[1], Err: err}
	}
	upload.Vintage = vintage

	commitment, err := parseAmount(l.fields[2])
	if err != nil {
		return SingleFundUpload{}, &ParseError{Line: l.number, Column: singleFundHeader[2], Err: err}
	}
	if commitment <= 0 {
		return SingleFundUpload{}, &ParseError{Line: l.number, Column: singleFundHeader[2], Err: errors.New("commitment must be positive")}
	}
	upload.CommitmentAmount = commitment

	return upload, nil
}

// WriteSingleFund writes a fund and its records in the single-fund format.
// Records are aggregated per calendar year into a net percentage of
// commitment; years without records are written as empty cells.
func WriteSingleFund(w io.Writer, fund model.Fund, records []model.CashflowRecord) error {
	net := make(map[int]float64)
	for _, r := range records {
		if r.FundID != fund.ID {
			continue
		}
		net[r.Year] += cashflow.Finite(r.Distributions) - cashflow.Finite(r.Calls)
	}

	writer := csv.NewWriter(w)
	values := make([]string, 0, SingleFundYears)
	for k := 1; k <= SingleFundYears; k++ {
		amount, ok := net[fund.Vintage+k-1]
		if !ok {
			values = append(values, "")
			continue
		}
		values = append(values, FormatPercentage(cashflow.SafeDivide(amount, fund.CommitmentAmount)))
	}

	out := [][]string{
		singleFundHeader,
		{fund.Name, strconv.Itoa(fund.Vintage), decimal.NewFromFloat(fund.CommitmentAmount).StringFixed(2), fund.FundType},
		yearColumns(SingleFundYears),
		values,
	}
	if err := writer.WriteAll(out); err != nil {
		return fmt.Errorf("failed to write single fund csv: %w", err)
	}
	return nil
}
