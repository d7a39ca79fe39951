package employee

import (
	"context"
	"io"
	"testing"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFiles struct {
	deleted []string
}

func (f *fakeFiles) UploadProfilePhoto(ctx context.Context, file io.Reader, filename string) (string, error) {
	return "/uploads/profile-photos/" + filename, nil
}

func (f *fakeFiles) DatedName(filename string) string { return filename }

func (f *fakeFiles) Open(ctx context.Context, url string) (io.ReadCloser, error) { return nil, nil }

func (f *fakeFiles) DeleteByURL(ctx context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func ptr[T any](v T) *T { return &v }

func registerReq(username string) employee.RegisterEmployeeRequest {
	return employee.RegisterEmployeeRequest{
		Username:     username,
		Password:     "secret1",
		NIK:          "320101",
		EmployeeName: "Budi Santoso",
		DOB:          "1990-01-02",
		JointDate:    "2020-03-01",
		Gender:       "male",
		Department:   "IT",
	}
}

func TestEmployeeService_RegisterAndDuplicate(t *testing.T) {
	repo := servicetest.NewEmployees()
	svc := NewEmployeeService(repo, &fakeFiles{})
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq("budi"))
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", resp.EmployeeName)
	require.NotNil(t, resp.DOB)
	assert.Equal(t, "1990-01-02", *resp.DOB)
	assert.Empty(t, resp.EducationHistory)

	_, err = svc.Register(ctx, registerReq("budi"))
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestEmployeeService_UpdateRecomputesLeave(t *testing.T) {
	repo := servicetest.NewEmployees(employee.Employee{
		ID: "emp-1", Username: "budi", Name: "Budi",
		LeaveInfo: &employee.LeaveInfo{Total: 12, Used: 4, Remaining: 8},
	})
	svc := NewEmployeeService(repo, &fakeFiles{})

	resp, err := svc.Update(context.Background(), "emp-1", employee.UpdateEmployeeRequest{TotalAnnualLeave: ptr(15)})
	require.NoError(t, err)
	assert.Equal(t, &employee.LeaveInfo{Total: 15, Used: 4, Remaining: 11}, resp.LeaveInfo)
}

func TestEmployeeService_UpdateSelfIgnoresLeave(t *testing.T) {
	repo := servicetest.NewEmployees(employee.Employee{ID: "emp-1", Username: "budi", Name: "Budi"})
	svc := NewEmployeeService(repo, &fakeFiles{})

	resp, err := svc.UpdateSelf(context.Background(), "emp-1", employee.UpdateEmployeeRequest{
		Phone:            ptr("0812"),
		TotalAnnualLeave: ptr(99),
		Education:        &[]employee.Education{{Degree: "S1", Institution: "ITB", Majority: "Informatics", Year: "2012"}},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.LeaveInfo)
	assert.Equal(t, "0812", *resp.Phone)
	assert.Len(t, resp.EducationHistory, 1)
}

func TestEmployeeService_PhotoReplacementRemovesOldFile(t *testing.T) {
	repo := servicetest.NewEmployees(employee.Employee{ID: "emp-1", Username: "budi", Name: "Budi", PhotoPath: ptr("/uploads/profile-photos/old.jpg")})
	files := &fakeFiles{}
	svc := NewEmployeeService(repo, files)

	_, err := svc.Update(context.Background(), "emp-1", employee.UpdateEmployeeRequest{PhotoPath: ptr("/uploads/profile-photos/new.jpg")})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/profile-photos/old.jpg"}, files.deleted)
}

func TestEmployeeService_Delete(t *testing.T) {
	repo := servicetest.NewEmployees(employee.Employee{
		ID: "emp-1", Username: "budi", Name: "Budi",
		SalarySlipPath: ptr("/uploads/salary-slips/2024-01-31_budi.pdf"),
	})
	files := &fakeFiles{}
	svc := NewEmployeeService(repo, files)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "emp-1"))
	assert.Equal(t, 0, repo.Len())
	assert.Equal(t, []string{"/uploads/salary-slips/2024-01-31_budi.pdf"}, files.deleted)

	assert.ErrorIs(t, svc.Delete(ctx, "emp-1"), employee.ErrEmployeeNotFound)
}
