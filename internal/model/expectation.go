package model

// FundTypeExpectation is static reference data describing the typical
// lifecycle of a fund type. Pattern arrays are indexed by year of fund life
// (0-based) and hold percentages of commitment.
type FundTypeExpectation struct {
	FundType               string    `json:"fundType"`
	AvgLifespan            int       `json:"avgLifespan"`
	CallPattern            []float64 `json:"callPattern"`
	DistributionPattern    []float64 `json:"distributionPattern"`
	NAVPattern             []float64 `json:"navPattern"`
	ManagementFeePattern   []float64 `json:"managementFeePattern"`
	CarriedInterestPattern []float64 `json:"carriedInterestPattern"`
	AvgMultiple            float64   `json:"avgMultiple"`
	AvgIRR                 float64   `json:"avgIrr"`
}

// PortfolioScenario scales projected distributions and NAV.
type PortfolioScenario struct {
	ID         string  `json:"id"`
	Multiplier float64 `json:"multiplier"`
}
