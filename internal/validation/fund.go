package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
)

// ValidateCreateFund validates a fund creation request.
//
// Required fields:
//   - name: non-empty
//   - vintage: between MinYear and MaxYear
//   - commitmentAmount: must be positive
//   - fundType: non-empty (unknown types are allowed but project to nothing)
//
// Optional rates must be fractions between 0 and 1.
func ValidateCreateFund(req request.CreateFundRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if !validYear(req.Vintage) {
		errors["vintage"] = fmt.Sprintf("vintage must be between %d and %d", MinYear, MaxYear)
	}

	if !positive(req.CommitmentAmount) {
		errors["commitmentAmount"] = "commitmentAmount must be positive"
	}

	if strings.TrimSpace(req.FundType) == "" {
		errors["fundType"] = "fundType is required"
	}

	validateRates(errors, req.ManagementFeeRate, req.CarriedInterestRate, req.TaxRate)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateFund validates a fund update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateFund(req request.UpdateFundRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.Vintage != nil && !validYear(*req.Vintage) {
		errors["vintage"] = fmt.Sprintf("vintage must be between %d and %d", MinYear, MaxYear)
	}

	if req.CommitmentAmount != nil && !positive(*req.CommitmentAmount) {
		errors["commitmentAmount"] = "commitmentAmount must be positive"
	}

	if req.FundType != nil && strings.TrimSpace(*req.FundType) == "" {
		errors["fundType"] = "fundType cannot be empty"
	}

	validateRates(errors, req.ManagementFeeRate, req.CarriedInterestRate, req.TaxRate)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateRates(errors map[string]string, fee, carry, tax *float64) {
	rates := []struct {
		field string
		value *float64
	}{
		{"managementFeeRate", fee},
		{"carriedInterestRate", carry},
		{"taxRate", tax},
	}
	for _, rate := range rates {
		if rate.value == nil {
			continue
		}
		if v := *rate.value; math.IsNaN(v) || v < 0 || v > 1 {
			errors[rate.field] = rate.field + " must be a fraction between 0 and 1"
		}
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
