package request

// CreatePortfolioRequest represents the request body for creating a portfolio
type CreatePortfolioRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TotalSize   float64 `json:"totalSize"`
}

type UpdatePortfolioRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	TotalSize   *float64 `json:"totalSize,omitempty"`
}

// AddPositionRequest commits an amount to a general fund within a portfolio.
// Posting a fund that is already a position updates its commitment.
type AddPositionRequest struct {
	FundID           string  `json:"fundId"`
	CommitmentAmount float64 `json:"commitmentAmount"`
}
