package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployee(t *testing.T, username, name string) employee.Employee {
	dob := date("1995-04-12")
	return employee.Employee{
		ID:           newID(t),
		Username:     username,
		NIK:          "3201" + username,
		Name:         name,
		DOB:          &dob,
		Gender:       employee.GenderFemale,
		Department:   "Finance",
		PasswordHash: "hash",
		Education:    []employee.Education{{Degree: "S1", Institution: "UI", Majority: "Accounting", Year: "2017"}},
		Training:     []employee.Training{},
	}
}

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	created, err := repo.Create(ctx, newEmployee(t, "siti", "Siti Aminah"))
	require.NoError(t, err)
	assert.Nil(t, created.LeaveInfo)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Siti Aminah", got.Name)
	require.Len(t, got.Education, 1)
	assert.Equal(t, "Accounting", got.Education[0].Majority)

	_, err = repo.GetByID(ctx, newID(t))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_CreateBatchIsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	err := repo.CreateBatch(ctx, []employee.Employee{
		newEmployee(t, "andi", "Andi"),
		newEmployee(t, "andi", "Andi Again"),
	})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	all, err := repo.List(ctx, employee.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, repo.CreateBatch(ctx, []employee.Employee{
		newEmployee(t, "andi", "Andi"),
		newEmployee(t, "budi", "Budi Santoso"),
	}))

	found, err := repo.List(ctx, employee.ListFilter{Search: "santoso"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "budi", found[0].Username)
}

func TestEmployeeRepository_AddUsedAnnualLeave(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	created, err := repo.Create(ctx, newEmployee(t, "citra", "Citra"))
	require.NoError(t, err)

	info, err := repo.AddUsedAnnualLeave(ctx, created.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, employee.LeaveInfo{Total: 12, Used: 3, Remaining: 9}, info)

	info, err = repo.AddUsedAnnualLeave(ctx, created.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, employee.LeaveInfo{Total: 12, Used: 13, Remaining: -1}, info)
}
