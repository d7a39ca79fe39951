package announcement

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/announcement"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/hr"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/sse"
	"github.com/google/uuid"
)

const (
	EventCreated = "announcement.created"
	EventDeleted = "announcement.deleted"
)

type AnnouncementServiceImpl struct {
	announcement.AnnouncementRepository
	hrRepo hr.HRRepository
	hub    *sse.Hub
	now    func() time.Time
}

func NewAnnouncementService(repo announcement.AnnouncementRepository, hrRepo hr.HRRepository, hub *sse.Hub) announcement.AnnouncementService {
	return &AnnouncementServiceImpl{
		AnnouncementRepository: repo,
		hrRepo:                 hrRepo,
		hub:                    hub,
		now:                    time.Now,
	}
}

// Create stores the announcement and pushes it to live subscribers.
func (s *AnnouncementServiceImpl) Create(ctx context.Context, hrID string, req announcement.CreateAnnouncementRequest) (announcement.AnnouncementResponse, error) {
	if err := req.Validate(); err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	author, err := s.hrRepo.GetByID(ctx, hrID)
	if err != nil {
		return announcement.AnnouncementResponse{}, fmt.Errorf("failed to load announcement author: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}
	date, _ := time.Parse(time.DateOnly, req.Date)

	a := announcement.Announcement{
		ID:            id.String(),
		Title:         req.Title,
		Description:   req.Description,
		Date:          date,
		Color:         req.Color,
		CreatedBy:     hrID,
		CreatedByName: author.Fullname,
		CreatedAt:     s.now(),
	}
	if req.Time != nil && *req.Time != "" {
		a.Time = req.Time
	}

	created, err := s.AnnouncementRepository.Create(ctx, a)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	resp := announcement.NewAnnouncementResponse(created)
	s.hub.Publish(announcement.Topic, sse.Event{Event: EventCreated, Data: resp})
	return resp, nil
}

func (s *AnnouncementServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.AnnouncementRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(announcement.Topic, sse.Event{Event: EventDeleted, Data: map[string]string{"id": id}})
	return nil
}

func (s *AnnouncementServiceImpl) List(ctx context.Context, q announcement.ListQuery) ([]announcement.AnnouncementResponse, error) {
	items, err := s.ListBetween(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]announcement.AnnouncementResponse, len(items))
	for i, a := range items {
		out[i] = announcement.NewAnnouncementResponse(a)
	}
	return out, nil
}

func (s *AnnouncementServiceImpl) Subscribe() (<-chan sse.Event, func()) {
	return s.hub.Subscribe(announcement.Topic)
}
