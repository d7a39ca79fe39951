package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/jwt"
)

// MaintenanceJobs evicts expired credentials state.
type MaintenanceJobs struct {
	tokens      jwt.Service
	authService auth.AuthService
}

func NewMaintenanceJobs(tokens jwt.Service, authService auth.AuthService) *MaintenanceJobs {
	return &MaintenanceJobs{
		tokens:      tokens,
		authService: authService,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_revoked_tokens", 15*time.Minute, j.PurgeRevokedTokens)
	scheduler.AddJob("purge_expired_reset_tokens", time.Hour, j.PurgeExpiredResetTokens)
}

func (j *MaintenanceJobs) PurgeRevokedTokens(ctx context.Context) error {
	if removed := j.tokens.PurgeExpired(); removed > 0 {
		slog.Info("Cron: Purged revoked tokens", "removed", removed)
	}
	return nil
}

func (j *MaintenanceJobs) PurgeExpiredResetTokens(ctx context.Context) error {
	return j.authService.PurgeExpiredResetTokens(ctx)
}
