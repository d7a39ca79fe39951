package hr

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/validator"
)

var genders = []string{"male", "female"}

type RegisterHRRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    string  `json:"email"`
	Fullname string  `json:"fullname"`
	Gender   *string `json:"gender,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

func (r *RegisterHRRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	if !validator.IsValidUsername(r.Username) {
		errs.Add("username", "username must be 3-50 characters of letters, numbers, dots, underscores or hyphens")
	}
	if !validator.IsValidPassword(r.Password) {
		errs.Add("password", "password must be at least 6 characters")
	}
	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if validator.IsEmpty(r.Fullname) {
		errs.Add("fullname", "fullname is required")
	}
	if r.Gender != nil && !validator.IsInSlice(*r.Gender, genders) {
		errs.Add("gender", "gender must be male or female")
	}

	return errs.Err()
}

// UpdateHRRequest carries a partial profile edit. PhotoPath is set by the
// handler after a successful upload.
type UpdateHRRequest struct {
	Email     *string `json:"email,omitempty"`
	Fullname  *string `json:"fullname,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	PhotoPath *string `json:"-"`
}

func (r *UpdateHRRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if r.Fullname != nil && validator.IsEmpty(*r.Fullname) {
		errs.Add("fullname", "fullname must not be empty")
	}
	if r.Gender != nil && !validator.IsInSlice(*r.Gender, genders) {
		errs.Add("gender", "gender must be male or female")
	}

	return errs.Err()
}

// Apply copies the set fields onto h.
func (r UpdateHRRequest) Apply(h *HR) {
	if r.Email != nil {
		h.Email = *r.Email
	}
	if r.Fullname != nil {
		h.Fullname = *r.Fullname
	}
	if r.Gender != nil {
		h.Gender = r.Gender
	}
	if r.Phone != nil {
		h.Phone = r.Phone
	}
	if r.Address != nil {
		h.Address = r.Address
	}
	if r.PhotoPath != nil {
		h.PhotoPath = r.PhotoPath
	}
}

type HRResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Fullname  string    `json:"fullname"`
	Photo     *string   `json:"photo,omitempty"`
	Gender    *string   `json:"gender,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewHRResponse(h HR) HRResponse {
	return HRResponse{
		ID:        h.ID,
		Username:  h.Username,
		Email:     h.Email,
		Fullname:  h.Fullname,
		Photo:     h.PhotoPath,
		Gender:    h.Gender,
		Phone:     h.Phone,
		Address:   h.Address,
		CreatedAt: h.CreatedAt,
	}
}
