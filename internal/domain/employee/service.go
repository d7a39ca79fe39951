package employee

import (
	"context"
	"io"
)

type EmployeeService interface {
	Register(ctx context.Context, req RegisterEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error)
	// Update is the HR edit; UpdateSelf drops leave balance fields.
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateSelf(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type ImportService interface {
	Import(ctx context.Context, spreadsheet io.Reader) (ImportResult, error)
	WriteTemplate(w io.Writer) error
}
