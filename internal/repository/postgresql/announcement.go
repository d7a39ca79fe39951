package postgresql

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/announcement"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type announcementRepositoryImpl struct {
	db *database.DB
}

func NewAnnouncementRepository(db *database.DB) announcement.AnnouncementRepository {
	return &announcementRepositoryImpl{db: db}
}

const announcementColumns = `id, title, description, date, time, color, created_by, created_by_name, created_at`

func scanAnnouncement(row pgx.Row) (announcement.Announcement, error) {
	var a announcement.Announcement
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Date,
		&a.Time,
		&a.Color,
		&a.CreatedBy,
		&a.CreatedByName,
		&a.CreatedAt,
	)
	return a, err
}

func (r *announcementRepositoryImpl) Create(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO announcements (id, title, description, date, time, color, created_by, created_by_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + announcementColumns

	return scanAnnouncement(q.QueryRow(ctx, query,
		a.ID, a.Title, a.Description, a.Date, a.Time, a.Color, a.CreatedBy, a.CreatedByName,
	))
}

func (r *announcementRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return announcement.ErrAnnouncementNotFound
	}
	return nil
}

func (r *announcementRepositoryImpl) ListBetween(ctx context.Context, lq announcement.ListQuery) ([]announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + announcementColumns + `
		FROM announcements
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, time NULLS FIRST, created_at
	`
	rows, err := q.Query(ctx, query, lq.Start, lq.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []announcement.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
