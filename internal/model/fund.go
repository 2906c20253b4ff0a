package model

// Fund represents a private fund with a known commitment from the database.
// The optional rates are stored as fractions (0.02 = 2%).
type Fund struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Vintage             int      `json:"vintage"`
	CommitmentAmount    float64  `json:"commitmentAmount"`
	FundType            string   `json:"fundType"`
	ManagementFeeRate   *float64 `json:"managementFeeRate,omitempty"`
	CarriedInterestRate *float64 `json:"carriedInterestRate,omitempty"`
	TaxRate             *float64 `json:"taxRate,omitempty"`
}

// FundMetrics holds the derived performance figures of a single fund.
// Computed on demand from its cashflow records, never persisted.
type FundMetrics struct {
	FundID             string  `json:"fundId"`
	TotalCalls         float64 `json:"totalCalls"`         // Sum of capital called
	TotalDistributions float64 `json:"totalDistributions"` // Sum of capital returned
	CurrentNAV         float64 `json:"currentNav"`         // NAV of the latest (year, quarter) record
	NetCashflow        float64 `json:"netCashflow"`        // Distributions minus calls
	Multiple           float64 `json:"multiple"`           // (distributions + NAV) / calls
	CalledPercentage   float64 `json:"calledPercentage"`   // Calls as percentage of commitment
}

// FundWithMetrics combines a fund with its metrics for list views.
type FundWithMetrics struct {
	Fund
	Metrics FundMetrics `json:"metrics"`
}
