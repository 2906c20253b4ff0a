package validation

import (
	"fmt"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
)

// ValidateCreateCashflow validates a cashflow record creation request.
//
// Required fields:
//   - fundId: Must be a valid UUID
//   - year: between MinYear and MaxYear
//   - quarter: 1 to 4
//   - at least one of calls, distributions, nav, managementFees, carriedInterest, taxes
//
// Calls and distributions cannot be negative. Every provided amount must be finite.
func ValidateCreateCashflow(req request.CreateCashflowRequest) error {
	if err := ValidateUUID(req.FundID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if !validYear(req.Year) {
		errors["year"] = fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear)
	}

	if req.Quarter < 1 || req.Quarter > 4 {
		errors["quarter"] = "quarter must be between 1 and 4"
	}

	amounts := cashflowAmounts{
		calls:           req.Calls,
		distributions:   req.Distributions,
		nav:             req.NAV,
		managementFees:  req.ManagementFees,
		carriedInterest: req.CarriedInterest,
		taxes:           req.Taxes,
	}
	if amounts.empty() {
		errors["cashflow"] = "at least one cashflow field is required"
	}
	amounts.validate(errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateCashflow validates a cashflow update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateCashflow(req request.UpdateCashflowRequest) error {
	errors := make(map[string]string)

	if req.Year != nil && !validYear(*req.Year) {
		errors["year"] = fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear)
	}

	if req.Quarter != nil && (*req.Quarter < 1 || *req.Quarter > 4) {
		errors["quarter"] = "quarter must be between 1 and 4"
	}

	amounts := cashflowAmounts{
		calls:           req.Calls,
		distributions:   req.Distributions,
		nav:             req.NAV,
		managementFees:  req.ManagementFees,
		carriedInterest: req.CarriedInterest,
		taxes:           req.Taxes,
	}
	amounts.validate(errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

type cashflowAmounts struct {
	calls, distributions, nav              *float64
	managementFees, carriedInterest, taxes *float64
}

func (a cashflowAmounts) fields() map[string]*float64 {
	return map[string]*float64{
		"calls":           a.calls,
		"distributions":   a.distributions,
		"nav":             a.nav,
		"managementFees":  a.managementFees,
		"carriedInterest": a.carriedInterest,
		"taxes":           a.taxes,
	}
}

func (a cashflowAmounts) empty() bool {
	for _, v := range a.fields() {
		if v != nil {
			return false
		}
	}
	return true
}

func (a cashflowAmounts) validate(errors map[string]string) {
	for field, v := range a.fields() {
		if v != nil && !finite(*v) {
			errors[field] = field + " must be a finite number"
		}
	}
	if a.calls != nil && *a.calls < 0 {
		errors["calls"] = "calls cannot be negative"
	}
	if a.distributions != nil && *a.distributions < 0 {
		errors["distributions"] = "distributions cannot be negative"
	}
}
