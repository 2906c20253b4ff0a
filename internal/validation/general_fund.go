package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
)

func ValidateCreateGeneralFund(req request.CreateGeneralFundRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if !validYear(req.Vintage) {
		errors["vintage"] = fmt.Sprintf("vintage must be between %d and %d", MinYear, MaxYear)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func ValidateUpdateGeneralFund(req request.UpdateGeneralFundRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.Vintage != nil && !validYear(*req.Vintage) {
		errors["vintage"] = fmt.Sprintf("vintage must be between %d and %d", MinYear, MaxYear)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSetNetCashflows validates a full replacement of a general fund's
// net cashflows. Years must be unique and percentages finite fractions
// between -1 and 1 (a single year cannot move more than the whole commitment).
func ValidateSetNetCashflows(req request.SetNetCashflowsRequest) error {
	errors := make(map[string]string)
	seen := make(map[int]bool, len(req.Cashflows))

	for i, entry := range req.Cashflows {
		key := fmt.Sprintf("cashflows[%d]", i)

		switch {
		case !validYear(entry.Year):
			errors[key] = fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear)
		case seen[entry.Year]:
			errors[key] = fmt.Sprintf("duplicate year %d", entry.Year)
		case !finite(entry.NetCashflowPercentage) || entry.NetCashflowPercentage < -1 || entry.NetCashflowPercentage > 1:
			errors[key] = "netCashflowPercentage must be a fraction between -1 and 1"
		case entry.NAVPercentage != nil && (!finite(*entry.NAVPercentage) || *entry.NAVPercentage < 0):
			errors[key] = "navPercentage must be a non-negative fraction"
		}
		seen[entry.Year] = true
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
