package model

import "time"

// Import formats accepted by the upload endpoints.
const (
	ImportFormatGeneralFunds = "general-funds"
	ImportFormatSingleFund   = "single-fund"
)

// ImportBatch is the audit record of one upload.
type ImportBatch struct {
	ID           string    `json:"id"`
	Format       string    `json:"format"`
	FileName     string    `json:"fileName"`
	RowsTotal    int       `json:"rowsTotal"`
	RowsImported int       `json:"rowsImported"`
	RowsSkipped  int       `json:"rowsSkipped"`
	Warnings     []string  `json:"warnings"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ImportResult is returned by the upload endpoints. The batch continues past
// rows that cannot be matched, so a result can carry warnings and still succeed.
type ImportResult struct {
	Batch      ImportBatch `json:"batch"`
	FundIDs    []string    `json:"fundIds"`
	CreatedIDs []string    `json:"createdIds,omitempty"`
}
