package http

import (
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/salary"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	UploadArchive(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

// UploadArchive distributes a ZIP sent in the "file" field.
func (h *salaryHandlerImpl) UploadArchive(w http.ResponseWriter, r *http.Request) {
	upload, header, ok := formFile(w, r, "file")
	if !ok {
		return
	}
	defer upload.Close()

	if header.Size == 0 {
		response.HandleError(w, salary.ErrEmptyUpload)
		return
	}

	result, err := h.salaryService.DistributeArchive(r.Context(), upload, header.Size)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Salary slips distributed", "matched", result.Matched, "unmatched", len(result.UnmatchedFiles))
	response.SuccessWithMessage(w, "Salary slips processed", result)
}

func (h *salaryHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	upload, header, ok := formFile(w, r, "file")
	if !ok {
		return
	}
	defer upload.Close()

	if header.Size == 0 {
		response.HandleError(w, salary.ErrEmptyUpload)
		return
	}

	result, err := h.salaryService.Upload(r.Context(), chi.URLParam(r, "id"), header.Filename, upload)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Salary slip uploaded successfully", result)
}

func (h *salaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.Get(r.Context(), caller(r).ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Download streams the caller's slip as an attachment.
func (h *salaryHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	slip, err := h.salaryService.Open(r.Context(), caller(r).ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer slip.Body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": slip.Filename}))
	if _, err := io.Copy(w, slip.Body); err != nil {
		slog.Error("failed to stream salary slip", "error", err)
	}
}
