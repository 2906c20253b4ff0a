package model

// Portfolio represents a named portfolio from the database.
type Portfolio struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TotalSize   float64 `json:"totalSize"`
}

// PortfolioPosition binds a dollar commitment to a general fund within a portfolio.
// AllocationPercentage is derived from the portfolio's TotalSize when read.
type PortfolioPosition struct {
	ID                   string  `json:"id"`
	PortfolioID          string  `json:"portfolioId"`
	FundID               string  `json:"fundId"`
	FundName             string  `json:"fundName,omitempty"`
	CommitmentAmount     float64 `json:"commitmentAmount"`
	AllocationPercentage float64 `json:"allocationPercentage"`
}

// WaterfallYear is the aggregate cashflow of a portfolio for one calendar year.
type WaterfallYear struct {
	Year          int     `json:"year"`
	Contributions float64 `json:"contributions"`
	Distributions float64 `json:"distributions"`
	NetCashflow   float64 `json:"netCashflow"`
	CumulativeNet float64 `json:"cumulativeNet"`
}

// Waterfall is the year-by-year aggregate of a set of positions.
// PeakOutflow, PeakInflow and BreakEvenYear are nil when no year has data;
// BreakEvenYear is also nil when the portfolio never recovers its contributions.
type Waterfall struct {
	Yearly          []WaterfallYear `json:"yearly"`
	PeakOutflow     *WaterfallYear  `json:"peakOutflow"`
	PeakInflow      *WaterfallYear  `json:"peakInflow"`
	BreakEvenYear   *int            `json:"breakEvenYear"`
	TotalCommitment float64         `json:"totalCommitment"`
	FinalCumulative float64         `json:"finalCumulative"`
}

// PortfolioWaterfall is the response payload for a portfolio waterfall.
type PortfolioWaterfall struct {
	PortfolioID   string `json:"portfolioId"`
	PortfolioName string `json:"portfolioName"`
	Waterfall
}
