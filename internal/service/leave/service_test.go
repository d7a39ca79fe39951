package leave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/notification"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	mu    sync.Mutex
	items map[string]leave.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{items: map[string]leave.LeaveRequest{}}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[lr.ID] = lr
	return lr, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lr, ok := f.items[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return lr, nil
}

func (f *fakeLeaveRepo) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, approverID string, decidedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lr, ok := f.items[id]
	if !ok || lr.Status != leave.LeaveRequestStatusPending {
		return false, nil
	}
	lr.Status = status
	lr.ApprovedBy = &approverID
	lr.DecidedAt = &decidedAt
	f.items[id] = lr
	return true, nil
}

func (f *fakeLeaveRepo) DeleteOwned(ctx context.Context, id string, employeeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lr, ok := f.items[id]
	if !ok || lr.EmployeeID != employeeID {
		return leave.ErrLeaveRequestNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeLeaveRepo) list(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []leave.LeaveRequest{}
	for _, lr := range f.items {
		if keep(lr) {
			out = append(out, lr)
		}
	}
	return out
}

func (f *fakeLeaveRepo) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	return f.list(func(leave.LeaveRequest) bool { return true }), nil
}

func (f *fakeLeaveRepo) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	return f.list(func(lr leave.LeaveRequest) bool { return lr.Status == leave.LeaveRequestStatusPending }), nil
}

func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return f.list(func(lr leave.LeaveRequest) bool { return lr.EmployeeID == employeeID }), nil
}

type fakeNotifier struct {
	err    error
	queued []notification.Notification
}

func (f *fakeNotifier) Queue(ctx context.Context, n notification.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.queued = append(f.queued, n)
	return nil
}

func (f *fakeNotifier) Stop() {}

type fixture struct {
	svc       *LeaveServiceImpl
	requests  *fakeLeaveRepo
	employees *servicetest.Employees
	notifier  *fakeNotifier
}

func newFixture(seed ...employee.Employee) fixture {
	f := fixture{
		requests:  newFakeLeaveRepo(),
		employees: servicetest.NewEmployees(seed...),
		notifier:  &fakeNotifier{},
	}
	f.svc = NewLeaveService(f.requests, f.employees, servicetest.PassthroughTx{}, f.notifier, "hr@example.com").(*LeaveServiceImpl)
	f.svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return f
}

func submit(typ, start, end string) leave.SubmitLeaveRequest {
	return leave.SubmitLeaveRequest{Type: typ, StartDate: start, EndDate: end}
}

func TestSubmit_InitialisesBalanceAndNotifies(t *testing.T) {
	f := newFixture(employee.Employee{ID: "emp-1", Name: "Budi", Department: "IT"})

	resp, err := f.svc.Submit(context.Background(), "emp-1", submit("Annual", "2024-03-04", "2024-03-06"))
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, resp.Status)
	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, leave.LeaveTypeAnnual, resp.Type)

	stored, _ := f.employees.Snapshot("emp-1")
	require.NotNil(t, stored.LeaveInfo)
	assert.Equal(t, employee.DefaultLeaveInfo(), *stored.LeaveInfo)

	require.Len(t, f.notifier.queued, 1)
	n := f.notifier.queued[0]
	assert.Equal(t, "hr@example.com", n.Recipient)
	assert.Equal(t, "Budi", n.LeaveRequest.EmployeeName)
	assert.Equal(t, 3, n.LeaveRequest.TotalDays)
}

func TestSubmit_Validation(t *testing.T) {
	f := newFixture(employee.Employee{ID: "emp-1"})

	_, err := f.svc.Submit(context.Background(), "emp-1", submit("vacation", "2024-03-04", "2024-03-04"))
	assert.ErrorAs(t, err, new(validator.ValidationErrors))

	_, err = f.svc.Submit(context.Background(), "emp-1", submit("sick", "2024-03-05", "2024-03-04"))
	assert.ErrorAs(t, err, new(validator.ValidationErrors))
}

func TestSubmit_InsufficientAnnualLeave(t *testing.T) {
	f := newFixture(employee.Employee{ID: "emp-1", LeaveInfo: &employee.LeaveInfo{Total: 12, Used: 10, Remaining: 2}})

	_, err := f.svc.Submit(context.Background(), "emp-1", submit("annual", "2024-03-04", "2024-03-06"))
	require.ErrorIs(t, err, leave.ErrInsufficientAnnualLeave)

	var balanceErr *leave.InsufficientBalanceError
	require.True(t, errors.As(err, &balanceErr))
	assert.Equal(t, 3, balanceErr.Requested)
	assert.Equal(t, 2, balanceErr.Remaining)

	// Other types ignore the balance.
	_, err = f.svc.Submit(context.Background(), "emp-1", submit("sick", "2024-03-04", "2024-03-06"))
	assert.NoError(t, err)
}

func TestSubmit_NotificationFailureDoesNotFail(t *testing.T) {
	f := newFixture(employee.Employee{ID: "emp-1"})
	f.notifier.err = notification.ErrQueueClosed

	_, err := f.svc.Submit(context.Background(), "emp-1", submit("sick", "2024-03-04", "2024-03-04"))
	assert.NoError(t, err)
}

func TestDecide_ApproveAnnualDeductsOnce(t *testing.T) {
	f := newFixture(employee.Employee{ID: "emp-1"})
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, "emp-1", submit("annual", "2024-03-04", "2024-03-05"))
	require.NoError(t, err)

	resp, err := f.svc.Decide(ctx, req.ID, leave.DecisionRequest{Status: "approved"}, "hr-1")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "hr-1", *resp.ApprovedBy)

	_, err = f.svc.Decide(ctx, req.ID, leave.DecisionRequest{Status: "approved"}, "hr-1")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	info, err := f.svc.LeaveInfo(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, employee.LeaveInfo{Total: 12, Used: 2, Remaining: 10}, info)
}

func TestDecide_ApprovesForDeletedEmployee(t *testing.T) {
	f := newFixture(employee.Employee{ID: "emp-1"})
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, "emp-1", submit("annual", "2024-03-04", "2024-03-05"))
	require.NoError(t, err)
	require.NoError(t, f.employees.Delete(ctx, "emp-1"))

	resp, err := f.svc.Decide(ctx, req.ID, leave.DecisionRequest{Status: "approved"}, "hr-1")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, resp.Status)

	stored, err := f.requests.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, stored.Status)

	pending, err := f.svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDecide_RejectKeepsBalance(t *testing.T) {
	f := newFixture(employee.Employee{ID: "emp-1"})
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, "emp-1", submit("annual", "2024-03-04", "2024-03-05"))
	require.NoError(t, err)
	_, err = f.svc.Decide(ctx, req.ID, leave.DecisionRequest{Status: "rejected"}, "hr-1")
	require.NoError(t, err)

	info, err := f.svc.LeaveInfo(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, employee.DefaultLeaveInfo(), info)
}

func TestDecide_NotFoundAndBadStatus(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Decide(context.Background(), "missing", leave.DecisionRequest{Status: "approved"}, "hr-1")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = f.svc.Decide(context.Background(), "missing", leave.DecisionRequest{Status: "pending"}, "hr-1")
	assert.ErrorAs(t, err, new(validator.ValidationErrors))
}

func TestDelete_OnlyOwner(t *testing.T) {
	f := newFixture(employee.Employee{ID: "emp-1"}, employee.Employee{ID: "emp-2"})
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, "emp-1", submit("sick", "2024-03-04", "2024-03-04"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, req.ID, "emp-2"), leave.ErrLeaveRequestNotFound)
	require.NoError(t, f.svc.Delete(ctx, req.ID, "emp-1"))

	mine, err := f.svc.ListMine(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}
