package http

import (
	"context"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	// Self service
	Register(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)

	// HR directory
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	ImportTemplate(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	importService   employee.ImportService
	fileService     file.FileService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, importService employee.ImportService, fileService file.FileService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		importService:   importService,
		fileService:     fileService,
	}
}

// Register implements EmployeeHandler
func (h *employeeHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req employee.RegisterEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee registered successfully", result)
}

func (h *employeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Get(r.Context(), caller(r).ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *employeeHandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, caller(r).ID, h.employeeService.UpdateSelf)
}

func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, chi.URLParam(r, "id"), h.employeeService.Update)
}

func (h *employeeHandlerImpl) update(
	w http.ResponseWriter,
	r *http.Request,
	id string,
	apply func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error),
) {
	var req employee.UpdateEmployeeRequest
	photo, header, ok := decodeProfileForm(w, r, &req)
	if !ok {
		return
	}
	if photo != nil {
		defer photo.Close()
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if photo != nil {
		url, err := h.fileService.UploadProfilePhoto(r.Context(), photo, header.Filename)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		req.PhotoPath = &url
	}

	result, err := apply(r.Context(), id, req)
	if err != nil {
		if req.PhotoPath != nil {
			_ = h.fileService.DeleteByURL(r.Context(), *req.PhotoPath)
		}
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

// List implements EmployeeHandler
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.ListFilter{
		Department: r.URL.Query().Get("department"),
		Search:     r.URL.Query().Get("search"),
	}

	result, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// Import reads an .xlsx workbook from the "file" field.
func (h *employeeHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	upload, header, ok := formFile(w, r, "file")
	if !ok {
		return
	}
	defer upload.Close()

	if !strings.EqualFold(path.Ext(header.Filename), ".xlsx") {
		response.BadRequest(w, "Only .xlsx files are accepted", nil)
		return
	}

	result, err := h.importService.Import(r.Context(), upload)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Employees imported", "imported", result.Imported, "generated_passwords", len(result.GeneratedPasswords))
	response.Created(w, "Employees imported successfully", result)
}

func (h *employeeHandlerImpl) ImportTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="employee-import-template.xlsx"`)
	if err := h.importService.WriteTemplate(w); err != nil {
		slog.Error("failed to write import template", "error", err)
	}
}
