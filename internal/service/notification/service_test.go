package notification

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/notification"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/email"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaveNotification(to string) notification.Notification {
	return notification.Notification{
		Type:      notification.TypeLeaveRequest,
		Recipient: to,
		LeaveRequest: &email.LeaveRequestNotice{
			EmployeeName: "Budi",
			Type:         "annual",
			StartDate:    "2024-03-04",
			EndDate:      "2024-03-05",
			TotalDays:    2,
		},
	}
}

func TestQueue_DeliversBeforeStopReturns(t *testing.T) {
	mailer := &servicetest.Mailer{}
	svc := NewNotificationService(mailer, Config{WorkerCount: 1, QueueSize: 10})

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Queue(context.Background(), leaveNotification("hr@example.com")))
	}
	svc.Stop()

	sent := mailer.SentLeaves()
	assert.Len(t, sent, 5)
	assert.Equal(t, "hr@example.com", sent[0].To)
	assert.Equal(t, "Budi", sent[0].Data.EmployeeName)
}

func TestQueue_RejectsInvalid(t *testing.T) {
	svc := NewNotificationService(&servicetest.Mailer{}, Config{})
	defer svc.Stop()

	err := svc.Queue(context.Background(), leaveNotification(""))
	assert.ErrorIs(t, err, notification.ErrMissingRecipient)

	err = svc.Queue(context.Background(), notification.Notification{Type: "other", Recipient: "x@example.com"})
	assert.ErrorIs(t, err, notification.ErrInvalidNotificationType)
}

func TestQueue_AfterStop(t *testing.T) {
	svc := NewNotificationService(&servicetest.Mailer{}, Config{})
	svc.Stop()
	svc.Stop()

	err := svc.Queue(context.Background(), leaveNotification("hr@example.com"))
	assert.ErrorIs(t, err, notification.ErrQueueClosed)
}
