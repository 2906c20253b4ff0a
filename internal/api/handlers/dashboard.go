package handlers

import (
	"net/http"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/service"
)

// DashboardHandler serves the overview the frontend opens with.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Overview handles GET requests for the dashboard overview.
//
// Endpoint: GET /api/dashboard
// Response: 200 OK with DashboardOverview (counts, totals, per-fund metrics, portfolios)
// Error: 500 Internal Server Error if loading fails
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.GetOverview(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToLoadDashboard.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, overview)
}
