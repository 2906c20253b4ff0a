package validation

import (
	"strings"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
)

func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if !finite(req.TotalSize) || req.TotalSize < 0 {
		errors["totalSize"] = "totalSize cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func ValidateUpdatePortfolio(req request.UpdatePortfolioRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.TotalSize != nil && (!finite(*req.TotalSize) || *req.TotalSize < 0) {
		errors["totalSize"] = "totalSize cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateAddPosition validates a position request.
// fundId must be a valid UUID and commitmentAmount positive.
func ValidateAddPosition(req request.AddPositionRequest) error {
	if err := ValidateUUID(req.FundID); err != nil {
		return err
	}

	if !positive(req.CommitmentAmount) {
		return &Error{Fields: map[string]string{
			"commitmentAmount": "commitmentAmount must be positive",
		}}
	}

	return nil
}
