package cashflow

import (
	"cmp"
	"slices"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// Fund types with a built-in lifecycle pattern.
const (
	FundTypeBuyout         = "Buyout"
	FundTypeVentureCapital = "Venture Capital"
	FundTypeGrowthEquity   = "Growth Equity"
	FundTypeRealEstate     = "Real Estate"
	FundTypeInfrastructure = "Infrastructure"
	FundTypePrivateCredit  = "Private Credit"
)

// Call, distribution, NAV and carry patterns each sum to 100 over the lifespan.
// Management fee patterns are annual fee rates in percent of commitment.
var defaultExpectations = []model.FundTypeExpectation{
	{
		FundType:               FundTypeBuyout,
		AvgLifespan:            12,
		CallPattern:            []float64{25, 25, 20, 15, 10, 5, 0, 0, 0, 0, 0, 0},
		DistributionPattern:    []float64{0, 0, 3, 7, 10, 15, 18, 17, 12, 8, 6, 4},
		NAVPattern:             []float64{4, 8, 11, 13, 14, 13, 11, 9, 7, 5, 3, 2},
		ManagementFeePattern:   []float64{2, 2, 2, 2, 2, 1.5, 1.5, 1.5, 1, 1, 1, 1},
		CarriedInterestPattern: []float64{0, 0, 0, 0, 5, 10, 15, 20, 20, 15, 10, 5},
		AvgMultiple:            1.8,
		AvgIRR:                 15,
	},
	{
		FundType:               FundTypeVentureCapital,
		AvgLifespan:            12,
		CallPattern:            []float64{20, 20, 20, 15, 10, 10, 5, 0, 0, 0, 0, 0},
		DistributionPattern:    []float64{0, 0, 0, 2, 5, 8, 12, 16, 18, 17, 12, 10},
		NAVPattern:             []float64{3, 7, 10, 12, 13, 13, 12, 10, 8, 6, 4, 2},
		ManagementFeePattern:   []float64{2.5, 2.5, 2.5, 2.5, 2.5, 2, 2, 2, 1.5, 1.5, 1.5, 1.5},
		CarriedInterestPattern: []float64{0, 0, 0, 0, 0, 5, 10, 15, 20, 20, 15, 15},
		AvgMultiple:            2.2,
		AvgIRR:                 18,
	},
	{
		FundType:               FundTypeGrowthEquity,
		AvgLifespan:            10,
		CallPattern:            []float64{30, 25, 20, 15, 10, 0, 0, 0, 0, 0},
		DistributionPattern:    []float64{0, 2, 6, 10, 14, 18, 18, 14, 10, 8},
		NAVPattern:             []float64{6, 11, 14, 15, 14, 12, 10, 8, 6, 4},
		ManagementFeePattern:   []float64{2, 2, 2, 2, 2, 1.5, 1.5, 1.5, 1, 1},
		CarriedInterestPattern: []float64{0, 0, 0, 5, 10, 15, 20, 20, 15, 15},
		AvgMultiple:            2.0,
		AvgIRR:                 16,
	},
	{
		FundType:               FundTypeRealEstate,
		AvgLifespan:            10,
		CallPattern:            []float64{35, 30, 20, 10, 5, 0, 0, 0, 0, 0},
		DistributionPattern:    []float64{2, 4, 6, 8, 10, 12, 14, 16, 16, 12},
		NAVPattern:             []float64{8, 13, 15, 15, 13, 11, 9, 7, 5, 4},
		ManagementFeePattern:   []float64{1.5, 1.5, 1.5, 1.5, 1.5, 1.25, 1.25, 1.25, 1, 1},
		CarriedInterestPattern: []float64{0, 0, 0, 0, 10, 15, 20, 20, 20, 15},
		AvgMultiple:            1.6,
		AvgIRR:                 12,
	},
	{
		FundType:               FundTypeInfrastructure,
		AvgLifespan:            15,
		CallPattern:            []float64{20, 20, 20, 15, 10, 10, 5, 0, 0, 0, 0, 0, 0, 0, 0},
		DistributionPattern:    []float64{0, 1, 2, 4, 5, 6, 7, 8, 9, 9, 10, 10, 10, 10, 9},
		NAVPattern:             []float64{2, 5, 7, 9, 10, 10, 10, 9, 8, 7, 6, 6, 5, 4, 2},
		ManagementFeePattern:   []float64{1.5, 1.5, 1.5, 1.5, 1.5, 1.25, 1.25, 1.25, 1.25, 1.25, 1, 1, 1, 1, 1},
		CarriedInterestPattern: []float64{0, 0, 0, 0, 0, 0, 5, 10, 10, 15, 15, 15, 15, 10, 5},
		AvgMultiple:            1.5,
		AvgIRR:                 10,
	},
	{
		FundType:               FundTypePrivateCredit,
		AvgLifespan:            8,
		CallPattern:            []float64{40, 30, 20, 10, 0, 0, 0, 0},
		DistributionPattern:    []float64{5, 10, 15, 15, 15, 15, 15, 10},
		NAVPattern:             []float64{18, 22, 20, 15, 11, 7, 5, 2},
		ManagementFeePattern:   []float64{1.5, 1.5, 1.5, 1.5, 1, 1, 1, 1},
		CarriedInterestPattern: []float64{0, 0, 10, 15, 20, 20, 20, 15},
		AvgMultiple:            1.3,
		AvgIRR:                 9,
	},
}

// DefaultExpectations returns the built-in fund type table keyed by fund type.
// The returned map and its slices are copies; callers may modify them freely.
func DefaultExpectations() map[string]model.FundTypeExpectation {
	out := make(map[string]model.FundTypeExpectation, len(defaultExpectations))
	for _, e := range defaultExpectations {
		e.CallPattern = slices.Clone(e.CallPattern)
		e.DistributionPattern = slices.Clone(e.DistributionPattern)
		e.NAVPattern = slices.Clone(e.NAVPattern)
		e.ManagementFeePattern = slices.Clone(e.ManagementFeePattern)
		e.CarriedInterestPattern = slices.Clone(e.CarriedInterestPattern)
		out[e.FundType] = e
	}
	return out
}

// SortedExpectations returns the expectations of a table ordered by fund type.
func SortedExpectations(expectations map[string]model.FundTypeExpectation) []model.FundTypeExpectation {
	out := make([]model.FundTypeExpectation, 0, len(expectations))
	for _, e := range expectations {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b model.FundTypeExpectation) int {
		return cmp.Compare(a.FundType, b.FundType)
	})
	return out
}
