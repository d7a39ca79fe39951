package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	checkoutAt        DailyTime
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, checkoutAt DailyTime) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		checkoutAt:        checkoutAt,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("auto_checkout", j.checkoutAt, j.AutoCheckout)
}

// AutoCheckout closes the sessions left open at the end of the working day.
func (j *AttendanceJobs) AutoCheckout(ctx context.Context) error {
	slog.Info("Cron: Starting auto checkout job")

	result, err := j.attendanceService.AutoCheckout(ctx, j.now())
	if err != nil {
		return err
	}

	slog.Info("Cron: Auto checkout completed", "closed", result.Closed, "failed", result.Failed)
	return nil
}
