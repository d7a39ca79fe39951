package http

import (
	"net/http"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/hr"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/file"
)

type HRHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
}

type hrHandlerImpl struct {
	hrService   hr.HRService
	fileService file.FileService
}

func NewHRHandler(hrService hr.HRService, fileService file.FileService) HRHandler {
	return &hrHandlerImpl{
		hrService:   hrService,
		fileService: fileService,
	}
}

func (h *hrHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
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

func (h *hrHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	result, err := h.hrService.Get(r.Context(), caller(r).ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// UpdateMe accepts JSON or multipart with an optional photo.
func (h *hrHandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req hr.UpdateHRRequest
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

	result, err := h.hrService.Update(r.Context(), caller(r).ID, req)
	if err != nil {
		if req.PhotoPath != nil {
			_ = h.fileService.DeleteByURL(r.Context(), *req.PhotoPath)
		}
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile updated successfully", result)
}
