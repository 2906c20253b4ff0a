package cashflow

import (
	"slices"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// NetCashflowIndex maps fund ID -> calendar year -> percentage cashflow.
type NetCashflowIndex map[string]map[int]model.GeneralFundNetCashflow

// IndexNetCashflows builds a NetCashflowIndex. When a (fund, year) pair occurs
// more than once the last row wins.
func IndexNetCashflows(rows []model.GeneralFundNetCashflow) NetCashflowIndex {
	index := make(NetCashflowIndex)
	for _, row := range rows {
		byYear, ok := index[row.FundID]
		if !ok {
			byYear = make(map[int]model.GeneralFundNetCashflow)
			index[row.FundID] = byYear
		}
		byYear[row.Year] = row
	}
	return index
}

// BuildWaterfall aggregates the percentage cashflows of all positions into a
// portfolio waterfall.
//
// The year axis is the sorted set of years with data for any position's fund;
// gaps between years are kept as gaps. For each year every position contributes
// commitment * contributionsPercentage and commitment * distributionsPercentage
// (0 when the fund has no row for that year). CumulativeNet carries the running
// sum of NetCashflow in year order.
//
// PeakOutflow is the year with the lowest net cashflow and PeakInflow the one
// with the highest; ties keep the earliest year. BreakEvenYear is the first
// year whose cumulative net is >= 0, and nil when there is no such year or the
// final cumulative is still negative.
//
// Without positions or data the result has an empty Yearly slice and nil
// peaks and break-even year.
func BuildWaterfall(positions []model.PortfolioPosition, index NetCashflowIndex) model.Waterfall {
	waterfall := model.Waterfall{Yearly: []model.WaterfallYear{}}

	for _, p := range positions {
		waterfall.TotalCommitment += Finite(p.CommitmentAmount)
	}

	years := yearAxis(positions, index)
	cumulative := 0.0

	for _, year := range years {
		var contributions, distributions float64
		for _, p := range positions {
			row, ok := index[p.FundID][year]
			if !ok {
				continue
			}
			commitment := Finite(p.CommitmentAmount)
			contributions += Finite(commitment * row.ContributionsPercentage)
			distributions += Finite(commitment * row.DistributionsPercentage)
		}

		net := contributions + distributions
		cumulative += net

		waterfall.Yearly = append(waterfall.Yearly, model.WaterfallYear{
			Year:          year,
			Contributions: contributions,
			Distributions: distributions,
			NetCashflow:   net,
			CumulativeNet: cumulative,
		})
	}

	if len(waterfall.Yearly) == 0 {
		return waterfall
	}

	waterfall.FinalCumulative = cumulative

	for i := range waterfall.Yearly {
		y := waterfall.Yearly[i]
		if waterfall.PeakOutflow == nil || y.NetCashflow < waterfall.PeakOutflow.NetCashflow {
			waterfall.PeakOutflow = &waterfall.Yearly[i]
		}
		if waterfall.PeakInflow == nil || y.NetCashflow > waterfall.PeakInflow.NetCashflow {
			waterfall.PeakInflow = &waterfall.Yearly[i]
		}
		if waterfall.BreakEvenYear == nil && y.CumulativeNet >= 0 {
			year := y.Year
			waterfall.BreakEvenYear = &year
		}
	}

	if cumulative < 0 {
		waterfall.BreakEvenYear = nil
	}

	// Detach the peaks from the Yearly backing array.
	peakOutflow := *waterfall.PeakOutflow
	peakInflow := *waterfall.PeakInflow
	waterfall.PeakOutflow = &peakOutflow
	waterfall.PeakInflow = &peakInflow

	return waterfall
}

// yearAxis returns the distinct years with data for any position's fund, ascending.
func yearAxis(positions []model.PortfolioPosition, index NetCashflowIndex) []int {
	seen := make(map[int]struct{})
	for _, p := range positions {
		for year := range index[p.FundID] {
			seen[year] = struct{}{}
		}
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	slices.Sort(years)
	return years
}
