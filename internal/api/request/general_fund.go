package request

type CreateGeneralFundRequest struct {
	Name      string `json:"name"`
	Vintage   int    `json:"vintage"`
	FundType  string `json:"fundType"`
	Subtype   string `json:"subtype"`
	Geography string `json:"geography"`
}

type UpdateGeneralFundRequest struct {
	Name      *string `json:"name,omitempty"`
	Vintage   *int    `json:"vintage,omitempty"`
	FundType  *string `json:"fundType,omitempty"`
	Subtype   *string `json:"subtype,omitempty"`
	Geography *string `json:"geography,omitempty"`
}

// NetCashflowEntry is one calendar year of a general fund.
// NetCashflowPercentage is a fraction: -0.25 is a 25% call.
type NetCashflowEntry struct {
	Year                  int      `json:"year"`
	NetCashflowPercentage float64  `json:"netCashflowPercentage"`
	NAVPercentage         *float64 `json:"navPercentage,omitempty"`
}

// SetNetCashflowsRequest replaces every net cashflow of a general fund.
type SetNetCashflowsRequest struct {
	Cashflows []NetCashflowEntry `json:"cashflows"`
}
