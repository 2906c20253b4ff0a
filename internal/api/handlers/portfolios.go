package handlers

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/service"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolios handles GET requests to list all portfolios.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of Portfolio
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.portfolioService.GetAllPortfolios(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET requests to retrieve a single portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with Portfolio
// Error: 404 Not Found if portfolio not found
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolios)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// CreatePortfolio handles POST requests to create a portfolio.
//
// Endpoint: POST /api/portfolio
// Request Body: CreatePortfolioRequest (name, description, totalSize)
// Response: 201 Created with Portfolio
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		respondValidationError(w, err)
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSavePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio handles PUT requests to update a portfolio.
//
// Endpoint: PUT /api/portfolio/{uuid}
// Request Body: UpdatePortfolioRequest (all fields optional)
// Response: 200 OK with updated Portfolio
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if portfolio not found
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		respondValidationError(w, err)
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSavePortfolio)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio handles DELETE requests to remove a portfolio and its positions.
//
// Endpoint: DELETE /api/portfolio/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if portfolio not found
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeletePortfolio(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDeletePortfolio)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Positions handles GET requests for the positions of a portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}/positions
// Response: 200 OK with array of PortfolioPosition including allocationPercentage
// Error: 404 Not Found if portfolio not found
func (h *PortfolioHandler) Positions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.portfolioService.GetPositions(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePositions)
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// AddPosition handles POST requests committing an amount to a general fund.
// Posting a fund that is already a position replaces its commitment.
//
// Endpoint: POST /api/portfolio/{uuid}/positions
// Request Body: AddPositionRequest (fundId, commitmentAmount)
// Response: 201 Created with PortfolioPosition
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if portfolio or general fund not found
func (h *PortfolioHandler) AddPosition(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AddPositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest.Error(), err.Error())
		return
	}

	if err := validation.ValidateAddPosition(req); err != nil {
		respondValidationError(w, err)
		return
	}

	position, err := h.portfolioService.AddPosition(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSavePosition)
		return
	}

	response.RespondJSON(w, http.StatusCreated, position)
}

// DeletePosition handles DELETE requests removing a position.
//
// Endpoint: DELETE /api/portfolio/position/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if position not found
func (h *PortfolioHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeletePosition(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDeletePosition)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Waterfall handles GET requests for the yearly cashflow waterfall of a portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}/waterfall
// Response: 200 OK with PortfolioWaterfall
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if aggregation fails
func (h *PortfolioHandler) Waterfall(w http.ResponseWriter, r *http.Request) {
	waterfall, err := h.portfolioService.GetWaterfall(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildWaterfall)
		return
	}

	response.RespondJSON(w, http.StatusOK, waterfall)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Export handles GET requests downloading the portfolio's general funds as
// a general-funds CSV file.
//
// Endpoint: GET /api/portfolio/{uuid}/export
// Response: 200 OK with text/csv attachment
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if the export fails
func (h *PortfolioHandler) Export(w http.ResponseWriter, r *http.Request) {
	portfolio, data, err := h.portfolioService.ExportPortfolio(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToExportPortfolio)
		return
	}

	response.RespondAttachment(w, "text/csv; charset=utf-8", exportFileName(portfolio.Name), data)
}

// exportFileName turns a display name into a safe CSV file name.
func exportFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "_") + ".csv"
}
