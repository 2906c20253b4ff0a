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

// FundHandler handles HTTP requests for fund endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the fundService.
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{
		fundService: fundService,
	}
}

// Funds handles GET requests to list all funds.
//
// Endpoint: GET /api/fund
// Response: 200 OK with array of Fund
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) Funds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.fundService.GetAllFunds(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFunds.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, funds)
}

// GetFund handles GET requests to retrieve a single fund.
//
// Endpoint: GET /api/fund/{uuid}
// Response: 200 OK with Fund
// Error: 400 Bad Request if fund ID is invalid (validated by middleware)
// Error: 404 Not Found if fund not found
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) GetFund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	fund, err := h.fundService.GetFund(r.Context(), fundID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveFund)
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}

// CreateFund handles POST requests to create a fund.
//
// Endpoint: POST /api/fund
// Request Body: CreateFundRequest (name, vintage, commitmentAmount, fundType, optional rates)
// Response: 201 Created with Fund
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *FundHandler) CreateFund(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	if err := validation.ValidateCreateFund(req); err != nil {
		respondValidationError(w, err)
		return
	}

	fund, err := h.fundService.CreateFund(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateFund.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, fund)
}

// UpdateFund handles PUT requests to update a fund.
//
// Endpoint: PUT /api/fund/{uuid}
// Request Body: UpdateFundRequest (all fields optional)
// Response: 200 OK with updated Fund
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if fund not found
// Error: 500 Internal Server Error if update fails
func (h *FundHandler) UpdateFund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateFundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	if err := validation.ValidateUpdateFund(req); err != nil {
		respondValidationError(w, err)
		return
	}

	fund, err := h.fundService.UpdateFund(r.Context(), fundID, req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateFund)
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}

// DeleteFund handles DELETE requests to remove a fund and its cashflow records.
//
// Endpoint: DELETE /api/fund/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if fund not found
// Error: 500 Internal Server Error if deletion fails
func (h *FundHandler) DeleteFund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	if err := h.fundService.DeleteFund(r.Context(), fundID); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDeleteFund)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// FundMetrics handles GET requests for the metrics of a single fund.
//
// Endpoint: GET /api/fund/{uuid}/metrics
// Response: 200 OK with FundMetrics
// Error: 404 Not Found if fund not found
// Error: 500 Internal Server Error if computation fails
func (h *FundHandler) FundMetrics(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	metrics, err := h.fundService.GetFundMetrics(r.Context(), fundID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeMetrics)
		return
	}

	response.RespondJSON(w, http.StatusOK, metrics)
}

// AllFundMetrics handles GET requests for the metrics of every fund.
//
// Endpoint: GET /api/fund/metrics
// Response: 200 OK with array of FundWithMetrics
// Error: 500 Internal Server Error if computation fails
func (h *FundHandler) AllFundMetrics(w http.ResponseWriter, r *http.Request) {
	funds, err := h.fundService.GetAllFundMetrics(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeMetrics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, funds)
}

// Projection handles GET requests for the projected cashflows of a fund.
//
// Endpoint: GET /api/fund/{uuid}/projection?scenario=conservative|neutral|optimistic
// Response: 200 OK with array of CashflowPoint
// Error: 400 Bad Request if the scenario is unknown
// Error: 404 Not Found if fund not found
// Error: 500 Internal Server Error if projection fails
func (h *FundHandler) Projection(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")
	scenario := request.ParseScenario(r.URL.Query().Get("scenario"))

	points, err := h.fundService.GetProjection(r.Context(), fundID, scenario)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToProjectCashflow)
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}

// Timeline handles GET requests for a fund's actual cashflows merged with its projection.
//
// Endpoint: GET /api/fund/{uuid}/timeline?scenario=conservative|neutral|optimistic
// Response: 200 OK with FundTimeline
// Error: 400 Bad Request if the scenario is unknown
// Error: 404 Not Found if fund not found
// Error: 500 Internal Server Error if projection fails
func (h *FundHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")
	scenario := request.ParseScenario(r.URL.Query().Get("scenario"))

	timeline, err := h.fundService.GetTimeline(r.Context(), fundID, scenario)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToProjectCashflow)
		return
	}

	response.RespondJSON(w, http.StatusOK, timeline)
}

// Export handles GET requests downloading a fund and its yearly net cashflows
// as a single-fund CSV file.
//
// Endpoint: GET /api/fund/{uuid}/export
// Response: 200 OK with text/csv attachment
// Error: 404 Not Found if fund not found
// Error: 500 Internal Server Error if the export fails
func (h *FundHandler) Export(w http.ResponseWriter, r *http.Request) {
	fund, data, err := h.fundService.ExportFund(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToExportFund)
		return
	}

	response.RespondAttachment(w, "text/csv; charset=utf-8", exportFileName(fund.Name), data)
}

// FundTypes handles GET requests for the built-in fund type expectations.
//
// Endpoint: GET /api/fund/types
// Response: 200 OK with array of FundTypeExpectation
func (h *FundHandler) FundTypes(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.fundService.GetFundTypes())
}

// Scenarios handles GET requests for the projection scenarios.
//
// Endpoint: GET /api/fund/scenarios
// Response: 200 OK with array of PortfolioScenario
func (h *FundHandler) Scenarios(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.fundService.GetScenarios())
}
