package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/config"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendLeaveRequestNotice(to string, data LeaveRequestNotice) error
	SendPasswordResetOTP(to, username, otp string, expiresAt time.Time) error
}

// LeaveRequestNotice is rendered into the HR notification mail.
type LeaveRequestNotice struct {
	EmployeeName string
	Department   string
	Type         string
	StartDate    string
	EndDate      string
	TotalDays    int
	Reason       string
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      func(m *gomail.Message) error
	backoff   func(attempt int) time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		backoff: func(attempt int) time.Duration {
			// 1s, 2s, 4s
			return time.Duration(1<<(attempt-1)) * time.Second
		},
	}, nil
}

func (s *emailServiceImpl) SendLeaveRequestNotice(to string, data LeaveRequestNotice) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_request.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Leave request from %s (%s)", data.EmployeeName, data.Type)
	return s.sendHTML(to, subject, body.String())
}

type passwordResetEmailData struct {
	Username  string
	OTP       string
	ExpiresAt string
}

func (s *emailServiceImpl) SendPasswordResetOTP(to, username, otp string, expiresAt time.Time) error {
	data := passwordResetEmailData{
		Username:  username,
		OTP:       otp,
		ExpiresAt: expiresAt.Format("15:04 MST, 02 Jan 2006"),
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "password_reset_otp.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Password reset code", body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.From, s.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(m)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		if attempt < maxRetries {
			time.Sleep(s.backoff(attempt))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
