package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/validation"
)

// maxBodyBytes limits JSON request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T

	if r.Body == nil {
		return req, apperrors.ErrInvalidRequest
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, apperrors.ErrInvalidRequest
		}
		return req, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return req, nil
}

// respondValidationError sends 400 with the failing fields as details.
func respondValidationError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrValidationFailed.Error(), verr.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, apperrors.ErrValidationFailed.Error(), err.Error())
}

// notFoundErrors are answered with 404.
var notFoundErrors = []error{
	apperrors.ErrFundNotFound,
	apperrors.ErrCashflowNotFound,
	apperrors.ErrGeneralFundNotFound,
	apperrors.ErrPortfolioNotFound,
	apperrors.ErrPositionNotFound,
}

// badRequestErrors are answered with 400.
var badRequestErrors = []error{
	apperrors.ErrInvalidUUID,
	apperrors.ErrInvalidRequest,
	apperrors.ErrInvalidImportFile,
	apperrors.ErrScenarioNotFound,
}

// respondServiceError maps a service error to a status code. Known sentinels
// are reported as themselves; anything else is a 500 reported as failure.
func respondServiceError(w http.ResponseWriter, err error, failure error) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			response.RespondError(w, http.StatusNotFound, target.Error(), err.Error())
			return
		}
	}

	if errors.Is(err, apperrors.ErrDuplicateEntry) {
		response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
		return
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			response.RespondError(w, http.StatusBadRequest, target.Error(), err.Error())
			return
		}
	}

	response.RespondError(w, http.StatusInternalServerError, failure.Error(), err.Error())
}
