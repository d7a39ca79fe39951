package http

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/response"
)

const (
	maxFormMemory = 10 << 20
	maxUploadSize = 50 << 20
)

// decodeJSON writes a 400 and reports false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// caller returns the authenticated identity. Routes using it sit behind
// middleware.Authenticate, so a missing identity is a wiring bug.
func caller(r *http.Request) middleware.Identity {
	id, _ := middleware.IdentityFromContext(r.Context())
	return id
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// decodeProfileForm reads a profile edit sent either as JSON or as multipart
// with a JSON "data" field and an optional "photo" file. The caller closes
// the returned file when it is non-nil.
func decodeProfileForm(w http.ResponseWriter, r *http.Request, dst interface{}) (multipart.File, *multipart.FileHeader, bool) {
	if !isMultipart(r) {
		return nil, nil, decodeJSON(w, r, dst)
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, nil, false
	}
	if data := r.FormValue("data"); data != "" {
		if err := json.Unmarshal([]byte(data), dst); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return nil, nil, false
		}
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, true
		}
		response.BadRequest(w, "Failed to read photo", nil)
		return nil, nil, false
	}
	return file, header, true
}

// formFile returns the named upload, writing a 400 when it is absent.
func formFile(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, nil, false
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		response.BadRequest(w, "Field '"+field+"' is required", nil)
		return nil, nil, false
	}
	return file, header, true
}
