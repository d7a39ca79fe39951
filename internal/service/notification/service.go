package notification

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/notification"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/email"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 100
}

type service struct {
	mailer email.EmailService
	config Config

	queue   chan notification.Notification
	wg      sync.WaitGroup
	stopCh  chan struct{}
	stopped sync.Once
	mu      sync.RWMutex
	closed  bool
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(mailer email.EmailService, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 100
	}

	s := &service{
		mailer: mailer,
		config: cfg,
		queue:  make(chan notification.Notification, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case n := <-s.queue:
			s.deliver(id, n)
		case <-s.stopCh:
			// Drain whatever was queued before Stop.
			for {
				select {
				case n := <-s.queue:
					s.deliver(id, n)
				default:
					return
				}
			}
		}
	}
}

func (s *service) deliver(worker int, n notification.Notification) {
	if err := s.send(n); err != nil {
		slog.Error("notification delivery failed",
			"worker", worker,
			"type", n.Type,
			"recipient", n.Recipient,
			"error", err,
		)
	}
}

func (s *service) send(n notification.Notification) error {
	switch n.Type {
	case notification.TypeLeaveRequest:
		if n.LeaveRequest == nil {
			return notification.ErrInvalidNotificationType
		}
		return s.mailer.SendLeaveRequestNotice(n.Recipient, *n.LeaveRequest)
	default:
		return notification.ErrInvalidNotificationType
	}
}

// Queue implements notification.Service.
func (s *service) Queue(ctx context.Context, n notification.Notification) error {
	if n.Recipient == "" {
		return notification.ErrMissingRecipient
	}
	if n.Type != notification.TypeLeaveRequest || n.LeaveRequest == nil {
		return notification.ErrInvalidNotificationType
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return notification.ErrQueueClosed
	}

	select {
	case s.queue <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Queue full, send inline
		return s.send(n)
	}
}

// Stop implements notification.Service.
func (s *service) Stop() {
	s.stopped.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}
