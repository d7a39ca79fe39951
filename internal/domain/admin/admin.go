package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/validator"
)

var ErrAdminNotFound = errors.New("admin not found")

type Admin struct {
	ID           string
	Username     string
	Email        *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RegisterAdminRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email,omitempty"`
}

func (r *RegisterAdminRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	if !validator.IsValidUsername(r.Username) {
		errs.Add("username", "username must be 3-50 characters of letters, numbers, dots, underscores or hyphens")
	}
	if !validator.IsValidPassword(r.Password) {
		errs.Add("password", "password must be at least 6 characters")
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	return errs.Err()
}

type AdminResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAdminResponse(a Admin) AdminResponse {
	return AdminResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

type AdminRepository interface {
	Create(ctx context.Context, a Admin) (Admin, error)
	GetByID(ctx context.Context, id string) (Admin, error)
	List(ctx context.Context) ([]Admin, error)
	Delete(ctx context.Context, id string) error
}

type AdminService interface {
	Register(ctx context.Context, req RegisterAdminRequest) (AdminResponse, error)
	Get(ctx context.Context, id string) (AdminResponse, error)
	List(ctx context.Context) ([]AdminResponse, error)
	Delete(ctx context.Context, id string) error
}
