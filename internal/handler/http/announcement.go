package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/announcement"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const streamKeepalive = 30 * time.Second

type AnnouncementHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	// Stream pushes new announcements over Server-Sent Events.
	Stream(w http.ResponseWriter, r *http.Request)
}

type announcementHandlerImpl struct {
	announcementService announcement.AnnouncementService
	now                 func() time.Time
}

func NewAnnouncementHandler(announcementService announcement.AnnouncementService) AnnouncementHandler {
	return &announcementHandlerImpl{
		announcementService: announcementService,
		now:                 time.Now,
	}
}

// List reads ?start=&end= (YYYY-MM-DD), defaulting to the current month.
func (h *announcementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q, err := announcement.ParseListQuery(r.URL.Query().Get("start"), r.URL.Query().Get("end"), h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.announcementService.List(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

func (h *announcementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req announcement.CreateAnnouncementRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.announcementService.Create(r.Context(), caller(r).ID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Announcement created successfully", result)
}

func (h *announcementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.announcementService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Announcement deleted successfully", nil)
}

// Stream handles the SSE connection
func (h *announcementHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.announcementService.Subscribe()
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if _, err := event.WriteTo(w); err != nil {
				slog.Warn("announcement stream write failed", "error", err)
				return
			}
			flusher.Flush()
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
