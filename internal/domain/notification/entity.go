package notification

import "github.com/cmlabs-hris/hr-portal-go/internal/pkg/email"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveRequest NotificationType = "leave_request"
)

// Notification is one queued outbound message
type Notification struct {
	Type      NotificationType
	Recipient string

	// Set for TypeLeaveRequest
	LeaveRequest *email.LeaveRequestNotice
}
