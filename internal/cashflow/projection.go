package cashflow

import (
	"cmp"
	"slices"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// ProjectionQuarter is the quarter projected points are reported in (year end).
const ProjectionQuarter = 4

// ProjectCashflows projects the yearly cashflows of a fund from the lifecycle
// pattern of its fund type.
//
// For each year i of the fund's expected life (year = vintage + i):
//   - Calls = commitment * callPattern[i] / 100
//   - Distributions = commitment * distributionPattern[i] / 100 * multiplier
//   - NAV = commitment * navPattern[i] / 100 * multiplier
//
// Calls are contractual and therefore not scaled by the scenario. A fund type
// missing from expectations yields an empty slice. Pattern entries missing or
// not finite count as 0.
func ProjectCashflows(fund model.Fund, scenario model.PortfolioScenario, expectations map[string]model.FundTypeExpectation) []model.CashflowPoint {
	expectation, ok := expectations[fund.FundType]
	if !ok || expectation.AvgLifespan <= 0 {
		return []model.CashflowPoint{}
	}

	commitment := Finite(fund.CommitmentAmount)
	multiplier := Finite(scenario.Multiplier)

	points := make([]model.CashflowPoint, 0, expectation.AvgLifespan)
	for i := 0; i < expectation.AvgLifespan; i++ {
		points = append(points, model.CashflowPoint{
			Year:          fund.Vintage + i,
			Quarter:       ProjectionQuarter,
			Calls:         Finite(commitment * patternAt(expectation.CallPattern, i) / 100),
			Distributions: Finite(commitment * patternAt(expectation.DistributionPattern, i) / 100 * multiplier),
			NAV:           Finite(commitment * patternAt(expectation.NAVPattern, i) / 100 * multiplier),
			IsProjected:   true,
		})
	}

	return points
}

// MergeWithActuals combines actual records with a projection for display.
// A year with at least one actual record keeps only its actual records;
// every other projected year is appended. The result is ordered by (year, quarter).
func MergeWithActuals(actual []model.CashflowRecord, projected []model.CashflowPoint) []model.CashflowPoint {
	actualYears := make(map[int]struct{}, len(actual))
	merged := make([]model.CashflowPoint, 0, len(actual)+len(projected))

	for _, r := range actual {
		actualYears[r.Year] = struct{}{}
		merged = append(merged, model.CashflowPoint{
			Year:          r.Year,
			Quarter:       r.Quarter,
			Calls:         Finite(r.Calls),
			Distributions: Finite(r.Distributions),
			NAV:           Finite(r.NAV),
		})
	}

	for _, p := range projected {
		if _, ok := actualYears[p.Year]; ok {
			continue
		}
		merged = append(merged, p)
	}

	slices.SortStableFunc(merged, func(a, b model.CashflowPoint) int {
		return cmp.Or(
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(a.Quarter, b.Quarter),
		)
	})

	return merged
}
