package salary

import (
	"context"
	"errors"
	"io"
)

var (
	ErrSalarySlipNotFound = errors.New("salary slip not found")
	ErrInvalidArchive     = errors.New("uploaded file is not a valid zip archive")
	ErrEmptyUpload        = errors.New("no file uploaded")
)

// ZipUploadResult reports how a bulk archive was distributed.
type ZipUploadResult struct {
	Matched        int      `json:"matched"`
	UnmatchedFiles []string `json:"unmatchedFiles"`
}

type SalarySlipResponse struct {
	EmployeeID string `json:"employee_id,omitempty"`
	SalarySlip string `json:"salarySlip"`
}

// Slip is an open stored slip ready to be streamed.
type Slip struct {
	Filename string
	Body     io.ReadCloser
}

type SalaryService interface {
	// Upload stores one slip for an employee, replacing the previous pointer.
	Upload(ctx context.Context, employeeID string, filename string, file io.Reader) (SalarySlipResponse, error)
	// DistributeArchive matches each archive entry to an employee by name.
	DistributeArchive(ctx context.Context, archive io.ReaderAt, size int64) (ZipUploadResult, error)
	Get(ctx context.Context, employeeID string) (SalarySlipResponse, error)
	// Open returns the stored slip; the caller closes Body.
	Open(ctx context.Context, employeeID string) (Slip, error)
}
