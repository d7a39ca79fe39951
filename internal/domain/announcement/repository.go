package announcement

import "context"

type AnnouncementRepository interface {
	Create(ctx context.Context, a Announcement) (Announcement, error)
	Delete(ctx context.Context, id string) error
	// ListBetween returns announcements dated within q, earliest first.
	ListBetween(ctx context.Context, q ListQuery) ([]Announcement, error)
}
