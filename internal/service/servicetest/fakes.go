// Package servicetest provides in-memory repositories for service tests.
package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/email"
)

// PassthroughTx runs fn without a real transaction.
type PassthroughTx struct{}

func (PassthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Employees is an in-memory employee.EmployeeRepository.
type Employees struct {
	mu    sync.Mutex
	items map[string]employee.Employee

	// Fail, when set, is returned by every write.
	Fail error
}

func NewEmployees(seed ...employee.Employee) *Employees {
	f := &Employees{items: map[string]employee.Employee{}}
	for _, e := range seed {
		f.items[e.ID] = e
	}
	return f
}

// Snapshot returns the stored record, or false.
func (f *Employees) Snapshot(id string) (employee.Employee, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.items[id]
	return e, ok
}

func (f *Employees) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

func (f *Employees) usernameTaken(username string) bool {
	for _, e := range f.items {
		if e.Username == username {
			return true
		}
	}
	return false
}

func (f *Employees) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return employee.Employee{}, f.Fail
	}
	if f.usernameTaken(e.Username) {
		return employee.Employee{}, user.ErrUsernameExists
	}
	e.CreatedAt = time.Now()
	f.items[e.ID] = e
	return e, nil
}

func (f *Employees) CreateBatch(ctx context.Context, employees []employee.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return f.Fail
	}
	seen := map[string]bool{}
	for _, e := range employees {
		if seen[e.Username] || f.usernameTaken(e.Username) {
			return user.ErrUsernameExists
		}
		seen[e.Username] = true
	}
	for _, e := range employees {
		f.items[e.ID] = e
	}
	return nil
}

func (f *Employees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.items[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *Employees) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []employee.Employee{}
	for _, e := range f.items {
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *Employees) ListNameRefs(ctx context.Context) ([]employee.NameRef, error) {
	all, _ := f.List(ctx, employee.ListFilter{})
	refs := make([]employee.NameRef, len(all))
	for i, e := range all {
		refs[i] = employee.NameRef{ID: e.ID, Name: e.Name}
	}
	return refs, nil
}

func (f *Employees) Update(ctx context.Context, e employee.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return f.Fail
	}
	if _, ok := f.items[e.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	f.items[e.ID] = e
	return nil
}

func (f *Employees) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *Employees) SetLeaveInfo(ctx context.Context, id string, info employee.LeaveInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.items[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.LeaveInfo = &info
	f.items[id] = e
	return nil
}

func (f *Employees) AddUsedAnnualLeave(ctx context.Context, id string, days int) (employee.LeaveInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return employee.LeaveInfo{}, f.Fail
	}
	e, ok := f.items[id]
	if !ok {
		return employee.LeaveInfo{}, employee.ErrEmployeeNotFound
	}
	info := employee.DefaultLeaveInfo()
	if e.LeaveInfo != nil {
		info = *e.LeaveInfo
	}
	info.Used += days
	info.Remaining = info.Total - info.Used
	e.LeaveInfo = &info
	f.items[id] = e
	return info, nil
}

func (f *Employees) SetSalarySlip(ctx context.Context, id string, path *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return f.Fail
	}
	e, ok := f.items[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.SalarySlipPath = path
	f.items[id] = e
	return nil
}

// LeaveNotice is a captured leave mail.
type LeaveNotice struct {
	To   string
	Data email.LeaveRequestNotice
}

// Mailer records sent mail and fails with Err when set.
type Mailer struct {
	mu     sync.Mutex
	Err    error
	Leaves []LeaveNotice
	OTPs   []string
}

func (m *Mailer) SendLeaveRequestNotice(to string, data email.LeaveRequestNotice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Leaves = append(m.Leaves, LeaveNotice{To: to, Data: data})
	return nil
}

func (m *Mailer) SendPasswordResetOTP(to, username, otp string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.OTPs = append(m.OTPs, otp)
	return nil
}

// SentLeaves returns a copy of the captured leave mails.
func (m *Mailer) SentLeaves() []LeaveNotice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LeaveNotice(nil), m.Leaves...)
}
