package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/config"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/hr-portal-go/internal/handler/http"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/email"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hr-portal-go/internal/repository/postgresql"
	adminService "github.com/cmlabs-hris/hr-portal-go/internal/service/admin"
	announcementService "github.com/cmlabs-hris/hr-portal-go/internal/service/announcement"
	attendanceService "github.com/cmlabs-hris/hr-portal-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hr-portal-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/hr-portal-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hr-portal-go/internal/service/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/file"
	hrService "github.com/cmlabs-hris/hr-portal-go/internal/service/hr"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/importer"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/leave"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/notification"
	salaryService "github.com/cmlabs-hris/hr-portal-go/internal/service/salary"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: httplog.SchemaECS.Concise(cfg.App.Env != "production").ReplaceAttr,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("init local storage: %w", err)
	}
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("init email service: %w", err)
	}
	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("init jwt service: %w", err)
	}
	hub := sse.NewHub()

	accounts := make(map[user.Role]user.AccountRepository, 3)
	for _, role := range []user.Role{user.RoleAdmin, user.RoleHR, user.RoleEmployee} {
		repo, err := postgresql.NewAccountRepository(db, role)
		if err != nil {
			return err
		}
		accounts[role] = repo
	}
	txManager := postgresql.NewTxManager(db)
	resetTokenRepo := postgresql.NewResetTokenRepository(db)
	adminRepo := postgresql.NewAdminRepository(db)
	hrRepo := postgresql.NewHRRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	fileService := file.NewFileService(fileStorage)
	notifier := notification.NewNotificationService(emailService, notification.Config{})
	defer notifier.Stop()

	authSvc := serviceAuth.NewAuthService(accounts, resetTokenRepo, txManager, JWTService, emailService)
	adminSvc := adminService.NewAdminService(adminRepo)
	hrSvc := hrService.NewHRService(hrRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileService)
	importSvc := importer.NewImportService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, attendanceService.Config{
		Location:     cfg.Attendance.Location,
		CheckoutHour: cfg.Attendance.CheckoutHour,
		CheckoutMin:  cfg.Attendance.CheckoutMin,
	})
	leaveSvc := leave.NewLeaveService(leaveRequestRepo, employeeRepo, txManager, notifier, cfg.Notify.HREmail)
	salarySvc := salaryService.NewSalaryService(employeeRepo, fileStorage, fileService)
	announcementSvc := announcementService.NewAnnouncementService(announcementRepo, hrRepo, hub)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, cfg.Attendance.Location)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         logger,
		AllowedOrigins: cfg.App.AllowedOrigins,
		UploadsURL:     cfg.Storage.BaseURL,
		UploadsDir:     cfg.Storage.BasePath,
	}, JWTService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		Admin:        appHTTP.NewAdminHandler(adminSvc, hrSvc),
		HR:           appHTTP.NewHRHandler(hrSvc, fileService),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc, importSvc, fileService),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc, employeeSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Salary:       appHTTP.NewSalaryHandler(salarySvc),
		Announcement: appHTTP.NewAnnouncementHandler(announcementSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cron.DailyTime{
		Hour:     cfg.Attendance.CheckoutHour,
		Minute:   cfg.Attendance.CheckoutMin,
		Location: cfg.Attendance.Location,
	}).RegisterJobs(scheduler)
	cron.NewMaintenanceJobs(JWTService, authSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
