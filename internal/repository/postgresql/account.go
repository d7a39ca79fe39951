package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// accountTables maps each role onto the table holding its credentials.
var accountTables = map[user.Role]string{
	user.RoleAdmin:    "admins",
	user.RoleHR:       "hrs",
	user.RoleEmployee: "employees",
}

type accountRepositoryImpl struct {
	db    *database.DB
	role  user.Role
	table string
}

// NewAccountRepository returns the credential view of one role's table.
func NewAccountRepository(db *database.DB, role user.Role) (user.AccountRepository, error) {
	table, ok := accountTables[role]
	if !ok {
		return nil, fmt.Errorf("no account table for role %q", role)
	}
	return &accountRepositoryImpl{db: db, role: role, table: table}, nil
}

func (r *accountRepositoryImpl) GetAccountByUsername(ctx context.Context, username string) (user.Account, error) {
	query := `SELECT id, username, email, password_hash FROM ` + r.table + ` WHERE username = $1`
	return r.scan(GetQuerier(ctx, r.db).QueryRow(ctx, query, username))
}

func (r *accountRepositoryImpl) GetAccountByID(ctx context.Context, id string) (user.Account, error) {
	query := `SELECT id, username, email, password_hash FROM ` + r.table + ` WHERE id = $1`
	return r.scan(GetQuerier(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *accountRepositoryImpl) scan(row pgx.Row) (user.Account, error) {
	a := user.Account{Role: r.role}
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Account{}, user.ErrUserNotFound
		}
		return user.Account{}, err
	}
	return a, nil
}

// UpdatePasswordHash also clears the forced-reset flag for employees.
func (r *accountRepositoryImpl) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE ` + r.table + ` SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	if r.role == user.RoleEmployee {
		query = `UPDATE employees SET password_hash = $1, password_reset_required = FALSE, updated_at = NOW() WHERE id = $2`
	}

	tag, err := q.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
