package announcement

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/sse"
)

// Topic is the SSE topic new announcements are published on.
const Topic = "announcements"

type AnnouncementService interface {
	Create(ctx context.Context, hrID string, req CreateAnnouncementRequest) (AnnouncementResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]AnnouncementResponse, error)
	Subscribe() (<-chan sse.Event, func())
}
