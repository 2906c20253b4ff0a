package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// GeneralFundYears is the number of year columns in the multi-fund format.
const GeneralFundYears = 12

var generalFundDescriptor = []string{"FundName", "Vintage", "FundType", "Subtype", "Geography"}

// GeneralFundHeader returns the header row of the multi-fund format.
func GeneralFundHeader() []string {
	return append(append([]string{}, generalFundDescriptor...), yearColumns(GeneralFundYears)...)
}

// GeneralFundRow is one parsed data row of the multi-fund format.
// Percentages holds only the non-empty year cells, in column order.
type GeneralFundRow struct {
	Line        int
	Name        string
	Vintage     int
	FundType    string
	Subtype     string
	Geography   string
	Percentages []YearPercentage
}

// GeneralFund returns the descriptor of the row without an ID.
func (r GeneralFundRow) GeneralFund() model.GeneralFund {
	return model.GeneralFund{
		Name:      r.Name,
		Vintage:   r.Vintage,
		FundType:  r.FundType,
		Subtype:   r.Subtype,
		Geography: r.Geography,
	}
}

// NetCashflows converts the row's percentages into net cashflow rows for the
// given general fund. Contributions and distributions are split by sign.
func (r GeneralFundRow) NetCashflows(fundID string) []model.GeneralFundNetCashflow {
	rows := make([]model.GeneralFundNetCashflow, 0, len(r.Percentages))
	for _, p := range r.Percentages {
		contributions, distributions := SplitNet(p.Percentage)
		rows = append(rows, model.GeneralFundNetCashflow{
			FundID:                  fundID,
			Year:                    p.Year,
			NetCashflowPercentage:   p.Percentage,
			ContributionsPercentage: contributions,
			DistributionsPercentage: distributions,
		})
	}
	return rows
}

// ParseGeneralFunds parses an upload in the multi-fund format:
//
//	FundName,Vintage,FundType,Subtype,Geography,Year1,...,Year12
//
// Year k maps to calendar year vintage + k - 1 and every cell is a percentage
// (-12.5 means 12.5% of commitment called). Empty year cells are skipped.
//
// Any malformed line aborts the whole parse with a *ParseError naming it.
func ParseGeneralFunds(r io.Reader) ([]GeneralFundRow, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, &ParseError{Line: 1, Err: errors.New("missing header")}
	}

	header := GeneralFundHeader()
	if !headerMatches(lines[0].fields, header) {
		return nil, &ParseError{
			Line: lines[0].number,
			Err:  fmt.Errorf("invalid header, expected %s", strings.Join(header, ",")),
		}
	}

	rows := make([]GeneralFundRow, 0, len(lines)-1)
	for _, l := range lines[1:] {
		row, err := parseGeneralFundLine(l, header)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseGeneralFundLine(l line, header []string) (GeneralFundRow, error) {
	if len(l.fields) != len(header) {
		return GeneralFundRow{}, &ParseError{
			Line: l.number,
			Err:  fmt.Errorf("expected %d columns, got %d", len(header), len(l.fields)),
		}
	}

	row := GeneralFundRow{
		Line:      l.number,
		Name:      strings.TrimSpace(l.fields[0]),
		FundType:  strings.TrimSpace(l.fields[2]),
		Subtype:   strings.TrimSpace(l.fields[3]),
		Geography: strings.TrimSpace(l.fields[4]),
	}
	if row.Name == "" {
		return GeneralFundRow{}, &ParseError{Line: l.number, Column: header[0], Err: errors.New("fund name is required")}
	}

	vintage, err := parseYear(l.fields[1])
	if err != nil {
		return GeneralFundRow{}, &ParseError{Line: l.number, Column: header[1], Err: err}
	}
	row.Vintage = vintage

	offset := len(generalFundDescriptor)
	for k := 1; k <= GeneralFundYears; k++ {
		value, ok, err := ParsePercentage(l.fields[offset+k-1])
		if err != nil {
			return GeneralFundRow{}, &ParseError{Line: l.number, Column: header[offset+k-1], Err: err}
		}
		if !ok {
			continue
		}
		row.Percentages = append(row.Percentages, YearPercentage{
			Offset:     k,
			Year:       vintage + k - 1,
			Percentage: value,
		})
	}

	return row, nil
}

// WriteGeneralFunds writes funds and their net cashflows in the multi-fund
// format, percentages with four decimals. Years outside the fund's first
// twelve years are not representable and are left out; years without a row
// are written as empty cells.
func WriteGeneralFunds(w io.Writer, funds []model.GeneralFund, cashflows map[string][]model.GeneralFundNetCashflow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(GeneralFundHeader()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, fund := range funds {
		byYear := make(map[int]float64, len(cashflows[fund.ID]))
		for _, cf := range cashflows[fund.ID] {
			byYear[cf.Year] = cf.NetCashflowPercentage
		}

		record := []string{fund.Name, strconv.Itoa(fund.Vintage), fund.FundType, fund.Subtype, fund.Geography}
		for k := 1; k <= GeneralFundYears; k++ {
			net, ok := byYear[fund.Vintage+k-1]
			if !ok {
				record = append(record, "")
				continue
			}
			record = append(record, FormatPercentage(net))
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write fund %s: %w", fund.Name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
