package request

// CreateFundRequest represents the request body for creating a fund.
// Rates are fractions (0.02 = 2%).
type CreateFundRequest struct {
	Name                string   `json:"name"`
	Vintage             int      `json:"vintage"`
	CommitmentAmount    float64  `json:"commitmentAmount"`
	FundType            string   `json:"fundType"`
	ManagementFeeRate   *float64 `json:"managementFeeRate,omitempty"`
	CarriedInterestRate *float64 `json:"carriedInterestRate,omitempty"`
	TaxRate             *float64 `json:"taxRate,omitempty"`
}

type UpdateFundRequest struct {
	Name                *string  `json:"name,omitempty"`
	Vintage             *int     `json:"vintage,omitempty"`
	CommitmentAmount    *float64 `json:"commitmentAmount,omitempty"`
	FundType            *string  `json:"fundType,omitempty"`
	ManagementFeeRate   *float64 `json:"managementFeeRate,omitempty"`
	CarriedInterestRate *float64 `json:"carriedInterestRate,omitempty"`
	TaxRate             *float64 `json:"taxRate,omitempty"`
}
