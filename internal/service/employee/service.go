package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/file"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, fileService file.FileService) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		fileService:  fileService,
	}
}

// Register implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Register(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.EmployeeResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	e := req.ToEntity(string(hash))
	e.ID = id.String()

	created, err := s.employeeRepo.Create(ctx, e)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]employee.EmployeeResponse, len(employees))
	for i, e := range employees {
		out[i] = employee.NewEmployeeResponse(e)
	}
	return out, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	oldPhoto := e.PhotoPath
	req.Apply(&e)
	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.PhotoPath != nil && oldPhoto != nil && *oldPhoto != *req.PhotoPath {
		s.removeFile(ctx, *oldPhoto)
	}
	return employee.NewEmployeeResponse(e), nil
}

// UpdateSelf implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateSelf(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	req.TotalAnnualLeave = nil
	req.UsedAnnualLeave = nil
	return s.Update(ctx, id, req)
}

// Delete implements employee.EmployeeService. Attendance and leave rows are kept.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	for _, url := range []*string{e.PhotoPath, e.SalarySlipPath} {
		if url != nil {
			s.removeFile(ctx, *url)
		}
	}
	return nil
}

func (s *EmployeeServiceImpl) removeFile(ctx context.Context, url string) {
	if err := s.fileService.DeleteByURL(ctx, url); err != nil {
		slog.Warn("failed to remove stored file", "url", url, "error", err)
	}
}
