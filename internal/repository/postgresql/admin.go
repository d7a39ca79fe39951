package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/admin"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type adminRepositoryImpl struct {
	db *database.DB
}

func NewAdminRepository(db *database.DB) admin.AdminRepository {
	return &adminRepositoryImpl{db: db}
}

const adminColumns = `id, username, email, password_hash, created_at, updated_at`

func scanAdmin(row pgx.Row) (admin.Admin, error) {
	var a admin.Admin
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *adminRepositoryImpl) Create(ctx context.Context, a admin.Admin) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO admins (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + adminColumns

	created, err := scanAdmin(q.QueryRow(ctx, query, a.ID, a.Username, a.Email, a.PasswordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return admin.Admin{}, user.ErrUsernameExists
		}
		return admin.Admin{}, err
	}
	return created, nil
}

func (r *adminRepositoryImpl) GetByID(ctx context.Context, id string) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAdmin(q.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return admin.Admin{}, admin.ErrAdminNotFound
		}
		return admin.Admin{}, err
	}
	return a, nil
}

func (r *adminRepositoryImpl) List(ctx context.Context) ([]admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []admin.Admin{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func (r *adminRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return admin.ErrAdminNotFound
	}
	return nil
}
