package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/admin"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/announcement"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/hr"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/salary"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stubs embed the service interface; calling an unstubbed method panics.

type stubAuth struct {
	auth.AuthService
	login func(role user.Role, req auth.LoginRequest) (auth.TokenResponse, error)
}

func (s stubAuth) Login(ctx context.Context, role user.Role, req auth.LoginRequest) (auth.TokenResponse, error) {
	return s.login(role, req)
}

type stubLeave struct {
	leave.LeaveService
	submit func(employeeID string, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error)
	decide func(id string, req leave.DecisionRequest, hrID string) (leave.LeaveRequestResponse, error)
}

func (s stubLeave) Submit(ctx context.Context, employeeID string, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	return s.submit(employeeID, req)
}

func (s stubLeave) Decide(ctx context.Context, id string, req leave.DecisionRequest, hrID string) (leave.LeaveRequestResponse, error) {
	return s.decide(id, req, hrID)
}

type stubEmployees struct {
	employee.EmployeeService
	get func(id string) (employee.EmployeeResponse, error)
}

func (s stubEmployees) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return s.get(id)
}

type stubSalary struct {
	salary.SalaryService
	open func(employeeID string) (salary.Slip, error)
}

func (s stubSalary) Open(ctx context.Context, employeeID string) (salary.Slip, error) {
	return s.open(employeeID)
}

type stubAnnouncements struct {
	announcement.AnnouncementService
	list func(q announcement.ListQuery) ([]announcement.AnnouncementResponse, error)
}

func (s stubAnnouncements) List(ctx context.Context, q announcement.ListQuery) ([]announcement.AnnouncementResponse, error) {
	return s.list(q)
}

type stubDashboard struct {
	dashboard.DashboardService
	counts func() (dashboard.CountsResponse, error)
}

func (s stubDashboard) Counts(ctx context.Context) (dashboard.CountsResponse, error) {
	return s.counts()
}

type services struct {
	auth          stubAuth
	leave         stubLeave
	employees     stubEmployees
	salary        stubSalary
	announcements stubAnnouncements
	dashboard     stubDashboard
}

type testServer struct {
	handler http.Handler
	tokens  *jwt.JWTService
}

func newTestServer(t *testing.T, s services) testServer {
	t.Helper()
	return newTestServerWith(t, RouterConfig{AllowedOrigins: []string{"*"}}, s)
}

func newTestServerWith(t *testing.T, cfg RouterConfig, s services) testServer {
	t.Helper()
	tokens, err := jwt.NewJWTService("handler-test-secret", "1h")
	require.NoError(t, err)

	var (
		adminSvc admin.AdminService
		hrSvc    hr.HRService
		attSvc   attendance.AttendanceService
		importer employee.ImportService
		files    file.FileService
	)

	router := NewRouter(cfg, tokens, Handlers{
		Auth:         NewAuthHandler(s.auth),
		Admin:        NewAdminHandler(adminSvc, hrSvc),
		HR:           NewHRHandler(hrSvc, files),
		Employee:     NewEmployeeHandler(s.employees, importer, files),
		Attendance:   NewAttendanceHandler(attSvc, s.employees),
		Leave:        NewLeaveHandler(s.leave),
		Salary:       NewSalaryHandler(s.salary),
		Announcement: NewAnnouncementHandler(s.announcements),
		Dashboard:    NewDashboardHandler(s.dashboard),
	})
	return testServer{handler: router, tokens: tokens}
}

func (ts testServer) token(t *testing.T, id string, role user.Role) string {
	t.Helper()
	token, _, err := ts.tokens.GenerateAccessToken(id, string(role))
	require.NoError(t, err)
	return token
}

func (ts testServer) do(method, target, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestLogin_UsesRouteRole(t *testing.T) {
	var gotRole user.Role
	ts := newTestServer(t, services{auth: stubAuth{login: func(role user.Role, req auth.LoginRequest) (auth.TokenResponse, error) {
		gotRole = role
		if req.Password != "secret" {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{Token: "t", Role: string(role)}, nil
	}}})

	rec := ts.do(http.MethodPost, "/api/hr/login", "", `{"username":"siti","password":"secret"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.RoleHR, gotRole)

	rec = ts.do(http.MethodPost, "/api/employee/login", "", `{"username":"siti","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/api/admin/login", "", `{"username":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)

	rec = ts.do(http.MethodPost, "/api/admin/login", "", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitLeave(t *testing.T) {
	var gotEmployee string
	ts := newTestServer(t, services{leave: stubLeave{submit: func(employeeID string, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
		gotEmployee = employeeID
		if req.Type == string(leave.LeaveTypeAnnual) {
			return leave.LeaveRequestResponse{}, &leave.InsufficientBalanceError{Requested: 5, Remaining: 2}
		}
		return leave.LeaveRequestResponse{ID: "lr-1", Status: leave.LeaveRequestStatusPending}, nil
	}}})
	token := ts.token(t, "emp-1", user.RoleEmployee)

	rec := ts.do(http.MethodPost, "/api/employee/leave-request", token, `{"type":"sick","startDate":"2024-03-04","endDate":"2024-03-04"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "emp-1", gotEmployee)

	rec = ts.do(http.MethodPost, "/api/employee/leave-request", token, `{"type":"annual","startDate":"2024-03-04","endDate":"2024-03-08"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "5", body.Error.Details["requested"])
	assert.Equal(t, "2", body.Error.Details["remaining"])

	rec = ts.do(http.MethodPost, "/api/employee/leave-request", token, `{"type":"holiday","startDate":"2024-03-04","endDate":"2024-03-04"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "type")
}

func TestDecideLeave(t *testing.T) {
	ts := newTestServer(t, services{leave: stubLeave{decide: func(id string, req leave.DecisionRequest, hrID string) (leave.LeaveRequestResponse, error) {
		if id == "done" {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
		}
		if id == "missing" {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequestResponse{ID: id, Status: leave.LeaveRequestStatus(req.Status), ApprovedBy: &hrID}, nil
	}}})
	hrToken := ts.token(t, "hr-1", user.RoleHR)

	rec := ts.do(http.MethodPut, "/api/hr/leave-requests/lr-1/decision", hrToken, `{"status":"approved"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodPut, "/api/hr/leave-requests/done/decision", hrToken, `{"status":"approved"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPut, "/api/hr/leave-requests/missing/decision", hrToken, `{"status":"rejected"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	empToken := ts.token(t, "emp-1", user.RoleEmployee)
	rec = ts.do(http.MethodPut, "/api/hr/leave-requests/lr-1/decision", empToken, `{"status":"approved"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodPut, "/api/hr/leave-requests/lr-1/decision", "", `{"status":"approved"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetEmployee_Errors(t *testing.T) {
	ts := newTestServer(t, services{employees: stubEmployees{get: func(id string) (employee.EmployeeResponse, error) {
		if id == "boom" {
			return employee.EmployeeResponse{}, errors.New("connection reset by peer")
		}
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}}})
	hrToken := ts.token(t, "hr-1", user.RoleHR)

	rec := ts.do(http.MethodGet, "/api/hr/employees/nobody", hrToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/api/hr/employees/boom", hrToken, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestDownloadSalarySlip(t *testing.T) {
	ts := newTestServer(t, services{salary: stubSalary{open: func(employeeID string) (salary.Slip, error) {
		if employeeID != "emp-1" {
			return salary.Slip{}, salary.ErrSalarySlipNotFound
		}
		return salary.Slip{Filename: "2024-03-01_march.pdf", Body: io.NopCloser(strings.NewReader("%PDF"))}, nil
	}}})

	rec := ts.do(http.MethodGet, "/api/employee/salary-slip/download", ts.token(t, "emp-1", user.RoleEmployee), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename=2024-03-01_march.pdf`)

	rec = ts.do(http.MethodGet, "/api/employee/salary-slip/download", ts.token(t, "emp-2", user.RoleEmployee), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAnnouncements_Range(t *testing.T) {
	var got announcement.ListQuery
	ts := newTestServer(t, services{announcements: stubAnnouncements{list: func(q announcement.ListQuery) ([]announcement.AnnouncementResponse, error) {
		got = q
		return []announcement.AnnouncementResponse{}, nil
	}}})
	token := ts.token(t, "emp-1", user.RoleEmployee)

	rec := ts.do(http.MethodGet, "/api/employee/announcements?start=2024-03-01&end=2024-03-31", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-03-31", got.End.Format("2006-01-02"))

	rec = ts.do(http.MethodGet, "/api/employee/announcements?start=2024-03-31&end=2024-03-01", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRevokedTokenIsRejected(t *testing.T) {
	ts := newTestServer(t, services{dashboard: stubDashboard{counts: func() (dashboard.CountsResponse, error) {
		return dashboard.CountsResponse{Employees: 3}, nil
	}}})
	token := ts.token(t, "hr-1", user.RoleHR)

	rec := ts.do(http.MethodGet, "/api/hr/counts", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	ts.tokens.RevokeToken(token)

	rec = ts.do(http.MethodGet, "/api/hr/counts", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploads_HidesScratchDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "salary-slips"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tmp", "batch"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "salary-slips", "a.pdf"), []byte("slip"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp", "batch", "a.pdf"), []byte("scratch"), 0o644))

	ts := newTestServerWith(t, RouterConfig{UploadsURL: "/uploads", UploadsDir: dir}, services{})

	rec := ts.do(http.MethodGet, "/uploads/salary-slips/a.pdf", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "slip", rec.Body.String())

	for _, target := range []string{"/uploads/tmp/batch/a.pdf", "/uploads/tmp/", "/uploads/%74mp/batch/a.pdf"} {
		rec = ts.do(http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestAnnouncementStream_QueryTokenScope(t *testing.T) {
	ts := newTestServer(t, services{announcements: stubAnnouncements{list: func(q announcement.ListQuery) ([]announcement.AnnouncementResponse, error) {
		return []announcement.AnnouncementResponse{}, nil
	}}})
	token := ts.token(t, "emp-1", user.RoleEmployee)

	rec := ts.do(http.MethodGet, "/api/employee/announcements?token="+token, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
