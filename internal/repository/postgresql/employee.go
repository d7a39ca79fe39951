package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, username, nik, employee_name, dob, joint_date, contract_end_date, gender, department,
	email, phone, address, photo_path, salary_slip_path, password_hash, password_reset_required,
	education_history, training_history, total_annual_leave, used_annual_leave, remaining_annual_leave,
	created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e                       employee.Employee
		total, used, remaining *int
	)
	err := row.Scan(
		&e.ID,
		&e.Username,
		&e.NIK,
		&e.Name,
		&e.DOB,
		&e.JointDate,
		&e.ContractEndDate,
		&e.Gender,
		&e.Department,
		&e.Email,
		&e.Phone,
		&e.Address,
		&e.PhotoPath,
		&e.SalarySlipPath,
		&e.PasswordHash,
		&e.PasswordResetRequired,
		&e.Education,
		&e.Training,
		&total,
		&used,
		&remaining,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	e.LeaveInfo = leaveInfoFromColumns(total, used, remaining)
	return e, nil
}

// leaveInfoFromColumns returns nil until a total has been set.
func leaveInfoFromColumns(total, used, remaining *int) *employee.LeaveInfo {
	if total == nil {
		return nil
	}
	info := employee.LeaveInfo{Total: *total}
	if used != nil {
		info.Used = *used
	}
	if remaining != nil {
		info.Remaining = *remaining
	} else {
		info.Remaining = info.Total - info.Used
	}
	return &info
}

func leaveColumns(info *employee.LeaveInfo) (total, used, remaining *int) {
	if info == nil {
		return nil, nil, nil
	}
	return &info.Total, &info.Used, &info.Remaining
}

const insertEmployeeQuery = `
	INSERT INTO employees (
		id, username, nik, employee_name, dob, joint_date, contract_end_date, gender, department,
		email, phone, address, photo_path, password_hash, password_reset_required,
		education_history, training_history, total_annual_leave, used_annual_leave, remaining_annual_leave
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9,
		$10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20
	)`

func insertEmployeeArgs(e employee.Employee) []any {
	total, used, remaining := leaveColumns(e.LeaveInfo)
	return []any{
		e.ID, e.Username, e.NIK, e.Name, e.DOB, e.JointDate, e.ContractEndDate, e.Gender, e.Department,
		e.Email, e.Phone, e.Address, e.PhotoPath, e.PasswordHash, e.PasswordResetRequired,
		e.Education, e.Training, total, used, remaining,
	}
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanEmployee(q.QueryRow(ctx, insertEmployeeQuery+` RETURNING `+employeeColumns, insertEmployeeArgs(e)...))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, user.ErrUsernameExists
		}
		return employee.Employee{}, err
	}
	return created, nil
}

// CreateBatch queues every insert on one pgx batch inside a transaction.
func (r *employeeRepositoryImpl) CreateBatch(ctx context.Context, employees []employee.Employee) error {
	return NewTxManager(r.db).WithinTx(ctx, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		batch := &pgx.Batch{}
		for _, e := range employees {
			batch.Queue(insertEmployeeQuery, insertEmployeeArgs(e)...)
		}

		br := q.SendBatch(ctx, batch)
		for i, e := range employees {
			if _, err := br.Exec(); err != nil {
				br.Close()
				if isUniqueViolation(err) {
					return fmt.Errorf("row %d (%s): %w", i+1, e.Username, user.ErrUsernameExists)
				}
				return fmt.Errorf("row %d (%s): %w", i+1, e.Username, err)
			}
		}
		return br.Close()
	})
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var (
		where []string
		args  []any
	)
	argIdx := 1
	if filter.Department != "" {
		where = append(where, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, filter.Department)
		argIdx++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(employee_name ILIKE $%d OR username ILIKE $%d OR nik ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY employee_name, username`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepositoryImpl) ListNameRefs(ctx context.Context) ([]employee.NameRef, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, employee_name FROM employees ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []employee.NameRef
	for rows.Next() {
		var ref employee.NameRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	total, used, remaining := leaveColumns(e.LeaveInfo)
	query := `
		UPDATE employees SET
			nik = $2, employee_name = $3, dob = $4, joint_date = $5, contract_end_date = $6,
			gender = $7, department = $8, email = $9, phone = $10, address = $11, photo_path = $12,
			education_history = $13, training_history = $14,
			total_annual_leave = $15, used_annual_leave = $16, remaining_annual_leave = $17,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		e.ID, e.NIK, e.Name, e.DOB, e.JointDate, e.ContractEndDate,
		e.Gender, e.Department, e.Email, e.Phone, e.Address, e.PhotoPath,
		e.Education, e.Training,
		total, used, remaining,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) SetLeaveInfo(ctx context.Context, id string, info employee.LeaveInfo) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET total_annual_leave = $2, used_annual_leave = $3, remaining_annual_leave = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id, info.Total, info.Used, info.Remaining)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// AddUsedAnnualLeave updates the balance in a single statement so concurrent
// approvals serialise on the row lock.
func (r *employeeRepositoryImpl) AddUsedAnnualLeave(ctx context.Context, id string, days int) (employee.LeaveInfo, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			total_annual_leave = COALESCE(total_annual_leave, $3),
			used_annual_leave = COALESCE(used_annual_leave, 0) + $2,
			remaining_annual_leave = COALESCE(total_annual_leave, $3) - (COALESCE(used_annual_leave, 0) + $2),
			updated_at = NOW()
		WHERE id = $1
		RETURNING total_annual_leave, used_annual_leave, remaining_annual_leave
	`
	var info employee.LeaveInfo
	err := q.QueryRow(ctx, query, id, days, employee.DefaultAnnualLeave).Scan(&info.Total, &info.Used, &info.Remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.LeaveInfo{}, employee.ErrEmployeeNotFound
		}
		return employee.LeaveInfo{}, err
	}
	return info, nil
}

func (r *employeeRepositoryImpl) SetSalarySlip(ctx context.Context, id string, path *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET salary_slip_path = $2, updated_at = NOW() WHERE id = $1`, id, path)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
