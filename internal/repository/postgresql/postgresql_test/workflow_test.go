package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_OneRecordPerDay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	empID := newID(t)
	in := time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{ID: newID(t), EmployeeID: empID, WorkDate: date("2024-03-04"), CheckIn: &in})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Attendance{ID: newID(t), EmployeeID: empID, WorkDate: date("2024-03-04"), CheckIn: &in})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	open, err := repo.ListOpenOn(ctx, date("2024-03-04"))
	require.NoError(t, err)
	require.Len(t, open, 1)

	out := in.Add(8*time.Hour + 30*time.Minute)
	created.CheckOut = &out
	created.WorkHours = decimal.RequireFromString("8.50")
	require.NoError(t, repo.Close(ctx, created))
	assert.ErrorIs(t, repo.Close(ctx, created), attendance.ErrAlreadyCheckedOut)

	latest, err := repo.GetLatest(ctx, empID)
	require.NoError(t, err)
	assert.True(t, latest.WorkHours.Equal(decimal.RequireFromString("8.5")))
	assert.False(t, latest.IsOpen())
}

func TestLeaveRequestRepository_DecideOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(db)

	empID := newID(t)
	created, err := repo.Create(ctx, leave.LeaveRequest{
		ID:          newID(t),
		EmployeeID:  empID,
		Type:        leave.LeaveTypeAnnual,
		StartDate:   date("2024-05-01"),
		EndDate:     date("2024-05-03"),
		TotalDays:   3,
		Status:      leave.LeaveRequestStatusPending,
		RequestedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Nil(t, created.EmployeeName, "no employee row to join")

	ok, err := repo.Decide(ctx, created.ID, leave.LeaveRequestStatusApproved, newID(t), time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Decide(ctx, created.ID, leave.LeaveRequestStatusRejected, newID(t), time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.ErrorIs(t, repo.DeleteOwned(ctx, created.ID, newID(t)), leave.ErrLeaveRequestNotFound)
	require.NoError(t, repo.DeleteOwned(ctx, created.ID, empID))
}

func TestResetTokenRepository_ConsumeIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewResetTokenRepository(db)

	expires := time.Now().Add(auth.OTPLifetime)
	require.NoError(t, repo.Upsert(ctx, auth.ResetToken{Username: "siti", OTP: "111111", Role: user.RoleEmployee, ExpiresAt: expires}))
	require.NoError(t, repo.Upsert(ctx, auth.ResetToken{Username: "siti", OTP: "222222", Role: user.RoleEmployee, ExpiresAt: expires}))

	_, err := repo.Consume(ctx, "siti", "111111")
	assert.ErrorIs(t, err, auth.ErrResetTokenNotFound, "replaced OTP no longer valid")

	tok, err := repo.Consume(ctx, "siti", "222222")
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, tok.Role)

	_, err = repo.Consume(ctx, "siti", "222222")
	assert.ErrorIs(t, err, auth.ErrResetTokenNotFound)

	require.NoError(t, repo.Upsert(ctx, auth.ResetToken{Username: "old", OTP: "333333", Role: user.RoleHR, ExpiresAt: time.Now().Add(-time.Minute)}))
	n, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewResetTokenRepository(db)
	tx := postgresql.NewTxManager(db)

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := repo.Upsert(ctx, auth.ResetToken{Username: "tx", OTP: "123456", Role: user.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = repo.Consume(ctx, "tx", "123456")
	assert.ErrorIs(t, err, auth.ErrResetTokenNotFound)
}
