package admin

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/admin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AdminServiceImpl struct {
	admin.AdminRepository
}

func NewAdminService(repo admin.AdminRepository) admin.AdminService {
	return &AdminServiceImpl{AdminRepository: repo}
}

// Register implements admin.AdminService.
func (s *AdminServiceImpl) Register(ctx context.Context, req admin.RegisterAdminRequest) (admin.AdminResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return admin.AdminResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return admin.AdminResponse{}, err
	}

	created, err := s.AdminRepository.Create(ctx, admin.Admin{
		ID:           id.String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return admin.AdminResponse{}, err
	}
	return admin.NewAdminResponse(created), nil
}

// Get implements admin.AdminService.
func (s *AdminServiceImpl) Get(ctx context.Context, id string) (admin.AdminResponse, error) {
	a, err := s.AdminRepository.GetByID(ctx, id)
	if err != nil {
		return admin.AdminResponse{}, err
	}
	return admin.NewAdminResponse(a), nil
}

// List implements admin.AdminService.
func (s *AdminServiceImpl) List(ctx context.Context) ([]admin.AdminResponse, error) {
	admins, err := s.AdminRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]admin.AdminResponse, len(admins))
	for i, a := range admins {
		out[i] = admin.NewAdminResponse(a)
	}
	return out, nil
}

// Delete implements admin.AdminService.
func (s *AdminServiceImpl) Delete(ctx context.Context, id string) error {
	return s.AdminRepository.Delete(ctx, id)
}
