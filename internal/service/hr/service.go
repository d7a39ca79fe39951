package hr

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/hr"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type HRServiceImpl struct {
	hr.HRRepository
}

func NewHRService(repo hr.HRRepository) hr.HRService {
	return &HRServiceImpl{HRRepository: repo}
}

// Register implements hr.HRService.
func (s *HRServiceImpl) Register(ctx context.Context, req hr.RegisterHRRequest) (hr.HRResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return hr.HRResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return hr.HRResponse{}, err
	}

	created, err := s.HRRepository.Create(ctx, hr.HR{
		ID:           id.String(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
		Fullname:     req.Fullname,
		Gender:       req.Gender,
		Phone:        req.Phone,
		Address:      req.Address,
	})
	if err != nil {
		return hr.HRResponse{}, err
	}
	return hr.NewHRResponse(created), nil
}

// Get implements hr.HRService.
func (s *HRServiceImpl) Get(ctx context.Context, id string) (hr.HRResponse, error) {
	h, err := s.HRRepository.GetByID(ctx, id)
	if err != nil {
		return hr.HRResponse{}, err
	}
	return hr.NewHRResponse(h), nil
}

// List implements hr.HRService.
func (s *HRServiceImpl) List(ctx context.Context) ([]hr.HRResponse, error) {
	hrs, err := s.HRRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]hr.HRResponse, len(hrs))
	for i, h := range hrs {
		out[i] = hr.NewHRResponse(h)
	}
	return out, nil
}

// Update implements hr.HRService.
func (s *HRServiceImpl) Update(ctx context.Context, id string, req hr.UpdateHRRequest) (hr.HRResponse, error) {
	h, err := s.HRRepository.GetByID(ctx, id)
	if err != nil {
		return hr.HRResponse{}, err
	}

	req.Apply(&h)
	if err := s.HRRepository.Update(ctx, h); err != nil {
		return hr.HRResponse{}, err
	}
	return hr.NewHRResponse(h), nil
}

// Delete implements hr.HRService.
func (s *HRServiceImpl) Delete(ctx context.Context, id string) error {
	return s.HRRepository.Delete(ctx, id)
}
