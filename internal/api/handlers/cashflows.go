package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/service"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/validation"
)

// CashflowHandler handles HTTP requests for quarterly cashflow records.
type CashflowHandler struct {
	cashflowService *service.CashflowService
}

// NewCashflowHandler creates a new CashflowHandler.
func NewCashflowHandler(cashflowService *service.CashflowService) *CashflowHandler {
	return &CashflowHandler{
		cashflowService: cashflowService,
	}
}

// FundCashflows handles GET requests for the records of a fund.
//
// Endpoint: GET /api/cashflow/fund/{uuid}
// Response: 200 OK with array of CashflowRecord ordered by year and quarter
// Error: 404 Not Found if fund not found
// Error: 500 Internal Server Error if retrieval fails
func (h *CashflowHandler) FundCashflows(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	records, err := h.cashflowService.GetFundCashflows(r.Context(), fundID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveCashflows)
		return
	}

	response.RespondJSON(w, http.StatusOK, records)
}

// CreateCashflow handles POST requests to record one quarter of a fund.
//
// Endpoint: POST /api/cashflow
// Request Body: CreateCashflowRequest (fundId, year, quarter, at least one amount)
// Response: 201 Created with CashflowRecord
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if fund not found
// Error: 409 Conflict if the quarter already has a record
// Error: 500 Internal Server Error if creation fails
func (h *CashflowHandler) CreateCashflow(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCashflowRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	if err := validation.ValidateCreateCashflow(req); err != nil {
		respondValidationError(w, err)
		return
	}

	record, err := h.cashflowService.CreateCashflow(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSaveCashflow)
		return
	}

	response.RespondJSON(w, http.StatusCreated, record)
}

// UpdateCashflow handles PUT requests to update a record.
//
// Endpoint: PUT /api/cashflow/{uuid}
// Request Body: UpdateCashflowRequest (all fields optional)
// Response: 200 OK with updated CashflowRecord
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if record not found
// Error: 409 Conflict if the new period already has a record
// Error: 500 Internal Server Error if update fails
func (h *CashflowHandler) UpdateCashflow(w http.ResponseWriter, r *http.Request) {
	cashflowID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateCashflowRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	if err := validation.ValidateUpdateCashflow(req); err != nil {
		respondValidationError(w, err)
		return
	}

	record, err := h.cashflowService.UpdateCashflow(r.Context(), cashflowID, req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSaveCashflow)
		return
	}

	response.RespondJSON(w, http.StatusOK, record)
}

// DeleteCashflow handles DELETE requests to remove a record.
//
// Endpoint: DELETE /api/cashflow/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if record not found
// Error: 500 Internal Server Error if deletion fails
func (h *CashflowHandler) DeleteCashflow(w http.ResponseWriter, r *http.Request) {
	cashflowID := chi.URLParam(r, "uuid")

	if err := h.cashflowService.DeleteCashflow(r.Context(), cashflowID); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDeleteCashflow)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
