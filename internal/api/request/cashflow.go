package request

// CreateCashflowRequest represents the request body for recording one quarter of a fund.
// Amount fields are pointers so an omitted field can be told apart from an explicit zero.
type CreateCashflowRequest struct {
	FundID          string   `json:"fundId"`
	Year            int      `json:"year"`
	Quarter         int      `json:"quarter"`
	Calls           *float64 `json:"calls,omitempty"`
	Distributions   *float64 `json:"distributions,omitempty"`
	NAV             *float64 `json:"nav,omitempty"`
	ManagementFees  *float64 `json:"managementFees,omitempty"`
	CarriedInterest *float64 `json:"carriedInterest,omitempty"`
	Taxes           *float64 `json:"taxes,omitempty"`
}

type UpdateCashflowRequest struct {
	Year            *int     `json:"year,omitempty"`
	Quarter         *int     `json:"quarter,omitempty"`
	Calls           *float64 `json:"calls,omitempty"`
	Distributions   *float64 `json:"distributions,omitempty"`
	NAV             *float64 `json:"nav,omitempty"`
	ManagementFees  *float64 `json:"managementFees,omitempty"`
	CarriedInterest *float64 `json:"carriedInterest,omitempty"`
	Taxes           *float64 `json:"taxes,omitempty"`
}
