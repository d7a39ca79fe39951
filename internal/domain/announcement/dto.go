package announcement

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/validator"
)

type CreateAnnouncementRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	Time        *string `json:"time,omitempty"`
	Color       string  `json:"color,omitempty"`
}

func (r *CreateAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs.Add("title", "title is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if r.Time != nil && *r.Time != "" && !validator.IsValidClock(*r.Time) {
		errs.Add("time", "time must be in HH:MM format")
	}
	if r.Color == "" {
		r.Color = DefaultColor
	} else if !validator.IsValidHexColor(r.Color) {
		errs.Add("color", "color must be a hex color such as #3b82f6")
	}

	return errs.Err()
}

// ListQuery is an inclusive date range.
type ListQuery struct {
	Start time.Time
	End   time.Time
}

// ParseListQuery reads start/end; a missing bound falls back to the month containing now.
func ParseListQuery(start, end string, now time.Time) (ListQuery, error) {
	var errs validator.ValidationErrors

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	q := ListQuery{Start: first, End: first.AddDate(0, 1, -1)}

	if start != "" {
		t, ok := validator.IsValidDate(start)
		if !ok {
			errs.Add("start", "start must be in YYYY-MM-DD format")
		}
		q.Start = t
	}
	if end != "" {
		t, ok := validator.IsValidDate(end)
		if !ok {
			errs.Add("end", "end must be in YYYY-MM-DD format")
		}
		q.End = t
	}
	if len(errs) == 0 && q.End.Before(q.Start) {
		errs.Add("end", "end must not be before start")
	}

	return q, errs.Err()
}

type AnnouncementResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	Date          string    `json:"date"`
	Time          *string   `json:"time"`
	Color         string    `json:"color"`
	CreatedBy     string    `json:"createdBy"`
	CreatedByName string    `json:"createdByName"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewAnnouncementResponse(a Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		Date:          a.Date.Format(validator.DateLayout),
		Time:          a.Time,
		Color:         a.Color,
		CreatedBy:     a.CreatedBy,
		CreatedByName: a.CreatedByName,
		CreatedAt:     a.CreatedAt,
	}
}
