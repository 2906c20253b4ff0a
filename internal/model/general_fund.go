package model

// GeneralFund represents a fund tracked without a commitment amount.
// Its cashflows are stored as fractions of a (future) commitment.
type GeneralFund struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Vintage   int    `json:"vintage"`
	FundType  string `json:"fundType"`
	Subtype   string `json:"subtype"`
	Geography string `json:"geography"`
}

// GeneralFundNetCashflow is the percentage cashflow of a general fund for one calendar year.
// All percentages are fractions of commitment: contributions are <= 0, distributions >= 0.
type GeneralFundNetCashflow struct {
	ID                      string  `json:"id"`
	FundID                  string  `json:"fundId"`
	Year                    int     `json:"year"`
	NetCashflowPercentage   float64 `json:"netCashflowPercentage"`
	ContributionsPercentage float64 `json:"contributionsPercentage"`
	DistributionsPercentage float64 `json:"distributionsPercentage"`
	NAVPercentage           float64 `json:"navPercentage"`
}
