package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/hr"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type hrRepositoryImpl struct {
	db *database.DB
}

func NewHRRepository(db *database.DB) hr.HRRepository {
	return &hrRepositoryImpl{db: db}
}

const hrColumns = `id, username, password_hash, email, fullname, photo_path, gender, phone, address, created_at, updated_at`

func scanHR(row pgx.Row) (hr.HR, error) {
	var h hr.HR
	err := row.Scan(
		&h.ID,
		&h.Username,
		&h.PasswordHash,
		&h.Email,
		&h.Fullname,
		&h.PhotoPath,
		&h.Gender,
		&h.Phone,
		&h.Address,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	return h, err
}

func (r *hrRepositoryImpl) Create(ctx context.Context, h hr.HR) (hr.HR, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hrs (id, username, password_hash, email, fullname, photo_path, gender, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + hrColumns

	created, err := scanHR(q.QueryRow(ctx, query,
		h.ID, h.Username, h.PasswordHash, h.Email, h.Fullname, h.PhotoPath, h.Gender, h.Phone, h.Address,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return hr.HR{}, user.ErrUsernameExists
		}
		return hr.HR{}, err
	}
	return created, nil
}

func (r *hrRepositoryImpl) GetByID(ctx context.Context, id string) (hr.HR, error) {
	q := GetQuerier(ctx, r.db)

	h, err := scanHR(q.QueryRow(ctx, `SELECT `+hrColumns+` FROM hrs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hr.HR{}, hr.ErrHRNotFound
		}
		return hr.HR{}, err
	}
	return h, nil
}

func (r *hrRepositoryImpl) List(ctx context.Context) ([]hr.HR, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+hrColumns+` FROM hrs ORDER BY fullname, username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hrs := []hr.HR{}
	for rows.Next() {
		h, err := scanHR(rows)
		if err != nil {
			return nil, err
		}
		hrs = append(hrs, h)
	}
	return hrs, rows.Err()
}

func (r *hrRepositoryImpl) Update(ctx context.Context, h hr.HR) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE hrs
		SET email = $2, fullname = $3, photo_path = $4, gender = $5, phone = $6, address = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, h.ID, h.Email, h.Fullname, h.PhotoPath, h.Gender, h.Phone, h.Address)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return hr.ErrHRNotFound
	}
	return nil
}

func (r *hrRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM hrs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return hr.ErrHRNotFound
	}
	return nil
}
