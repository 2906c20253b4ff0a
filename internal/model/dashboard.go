package model

// DashboardOverview summarizes the whole dashboard in one payload.
type DashboardOverview struct {
	FundCount          int               `json:"fundCount"`
	GeneralFundCount   int               `json:"generalFundCount"`
	PortfolioCount     int               `json:"portfolioCount"`
	TotalCommitment    float64           `json:"totalCommitment"`
	TotalCalls         float64           `json:"totalCalls"`
	TotalDistributions float64           `json:"totalDistributions"`
	TotalNAV           float64           `json:"totalNav"`
	Multiple           float64           `json:"multiple"`
	Funds              []FundWithMetrics `json:"funds"`
	Portfolios         []Portfolio       `json:"portfolios"`
}
