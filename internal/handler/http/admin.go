package http

import (
	"net/http"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/admin"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/hr"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AdminHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	ListHR(w http.ResponseWriter, r *http.Request)
	CreateHR(w http.ResponseWriter, r *http.Request)
	DeleteHR(w http.ResponseWriter, r *http.Request)
}

type adminHandlerImpl struct {
	adminService admin.AdminService
	hrService    hr.HRService
}

func NewAdminHandler(adminService admin.AdminService, hrService hr.HRService) AdminHandler {
	return &adminHandlerImpl{
		adminService: adminService,
		hrService:    hrService,
	}
}

// Register serves both the public bootstrap and admin-created admins.
func (h *adminHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req admin.RegisterAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.adminService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Admin registered successfully", result)
}

func (h *adminHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.adminService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

func (h *adminHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Admin deleted successfully", nil)
}

func (h *adminHandlerImpl) ListHR(w http.ResponseWriter, r *http.Request) {
	result, err := h.hrService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

func (h *adminHandlerImpl) CreateHR(w http.ResponseWriter, r *http.Request) {
	var req hr.RegisterHRRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.hrService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "HR registered successfully", result)
}

func (h *adminHandlerImpl) DeleteHR(w http.ResponseWriter, r *http.Request) {
	if err := h.hrService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "HR deleted successfully", nil)
}
