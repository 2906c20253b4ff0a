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

// GeneralFundHandler handles HTTP requests for general funds and their
// percentage cashflows.
type GeneralFundHandler struct {
	generalFundService *service.GeneralFundService
}

// NewGeneralFundHandler creates a new GeneralFundHandler.
func NewGeneralFundHandler(generalFundService *service.GeneralFundService) *GeneralFundHandler {
	return &GeneralFundHandler{
		generalFundService: generalFundService,
	}
}

// GeneralFunds handles GET requests to list all general funds.
//
// Endpoint: GET /api/general-fund
// Response: 200 OK with array of GeneralFund
// Error: 500 Internal Server Error if retrieval fails
func (h *GeneralFundHandler) GeneralFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.generalFundService.GetAllGeneralFunds(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveGeneralFunds.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, funds)
}

// GetGeneralFund handles GET requests to retrieve a single general fund.
//
// Endpoint: GET /api/general-fund/{uuid}
// Response: 200 OK with GeneralFund
// Error: 404 Not Found if general fund not found
func (h *GeneralFundHandler) GetGeneralFund(w http.ResponseWriter, r *http.Request) {
	fund, err := h.generalFundService.GetGeneralFund(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveGeneralFunds)
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}

// CreateGeneralFund handles POST requests to create a general fund.
//
// Endpoint: POST /api/general-fund
// Request Body: CreateGeneralFundRequest (name, vintage, fundType, subtype, geography)
// Response: 201 Created with GeneralFund
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *GeneralFundHandler) CreateGeneralFund(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateGeneralFundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	if err := validation.ValidateCreateGeneralFund(req); err != nil {
		respondValidationError(w, err)
		return
	}

	fund, err := h.generalFundService.CreateGeneralFund(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveGeneralFund.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, fund)
}

// UpdateGeneralFund handles PUT requests to update a general fund.
//
// Endpoint: PUT /api/general-fund/{uuid}
// Request Body: UpdateGeneralFundRequest (all fields optional)
// Response: 200 OK with updated GeneralFund
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if general fund not found
func (h *GeneralFundHandler) UpdateGeneralFund(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateGeneralFundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	if err := validation.ValidateUpdateGeneralFund(req); err != nil {
		respondValidationError(w, err)
		return
	}

	fund, err := h.generalFundService.UpdateGeneralFund(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSaveGeneralFund)
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}

// DeleteGeneralFund handles DELETE requests. Net cashflows and the portfolio
// positions referencing the fund are removed with it.
//
// Endpoint: DELETE /api/general-fund/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if general fund not found
func (h *GeneralFundHandler) DeleteGeneralFund(w http.ResponseWriter, r *http.Request) {
	if err := h.generalFundService.DeleteGeneralFund(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDeleteGeneralFund)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// NetCashflows handles GET requests for the yearly percentages of a general fund.
//
// Endpoint: GET /api/general-fund/{uuid}/cashflows
// Response: 200 OK with array of GeneralFundNetCashflow ordered by year
// Error: 404 Not Found if general fund not found
func (h *GeneralFundHandler) NetCashflows(w http.ResponseWriter, r *http.Request) {
	rows, err := h.generalFundService.GetNetCashflows(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveCashflows)
		return
	}

	response.RespondJSON(w, http.StatusOK, rows)
}

// SetNetCashflows handles PUT requests replacing every yearly percentage of a general fund.
//
// Endpoint: PUT /api/general-fund/{uuid}/cashflows
// Request Body: SetNetCashflowsRequest (cashflows: [{year, netCashflowPercentage, navPercentage}])
// Response: 200 OK with the stored array of GeneralFundNetCashflow
// Error: 400 Bad Request if validation fails (duplicate years, out of range percentages)
// Error: 404 Not Found if general fund not found
func (h *GeneralFundHandler) SetNetCashflows(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetNetCashflowsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	if err := validation.ValidateSetNetCashflows(req); err != nil {
		respondValidationError(w, err)
		return
	}

	rows, err := h.generalFundService.SetNetCashflows(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSaveCashflow)
		return
	}

	response.RespondJSON(w, http.StatusOK, rows)
}
