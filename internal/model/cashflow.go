package model

// CashflowRecord represents one reported period of a fund from the database.
// A fund has at most one record per (year, quarter).
type CashflowRecord struct {
	ID              string   `json:"id"`
	FundID          string   `json:"fundId"`
	Year            int      `json:"year"`
	Quarter         int      `json:"quarter"`
	Calls           float64  `json:"calls"`
	Distributions   float64  `json:"distributions"`
	NAV             float64  `json:"nav"`
	ManagementFees  *float64 `json:"managementFees,omitempty"`
	CarriedInterest *float64 `json:"carriedInterest,omitempty"`
	Taxes           *float64 `json:"taxes,omitempty"`
}

// CashflowPoint is a single entry of a fund timeline. Projected points are
// produced by the projection engine, actual points come from CashflowRecords.
type CashflowPoint struct {
	Year          int     `json:"year"`
	Quarter       int     `json:"quarter"`
	Calls         float64 `json:"calls"`
	Distributions float64 `json:"distributions"`
	NAV           float64 `json:"nav"`
	IsProjected   bool    `json:"isProjected"`
}

// FundTimeline is the response payload for a fund's merged actual and projected cashflows.
type FundTimeline struct {
	FundID   string          `json:"fundId"`
	Scenario string          `json:"scenario"`
	Points   []CashflowPoint `json:"points"`
}
