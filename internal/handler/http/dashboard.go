package http

import (
	"net/http"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Counts(w http.ResponseWriter, r *http.Request)
	GenderSummary(w http.ResponseWriter, r *http.Request)
	DepartmentSummary(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *dashboardHandlerImpl) Counts(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Counts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *dashboardHandlerImpl) GenderSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GenderSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *dashboardHandlerImpl) DepartmentSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.DepartmentSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
