package http

import (
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/storage"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// Handlers groups every controller the router mounts.
type Handlers struct {
	Auth         AuthHandler
	Admin        AdminHandler
	HR           HRHandler
	Employee     EmployeeHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Salary       SalaryHandler
	Announcement AnnouncementHandler
	Dashboard    DashboardHandler
}

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// UploadsURL is the public prefix stored files are served under.
	UploadsURL string
	UploadsDir string
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	if cfg.UploadsDir != "" {
		prefix := "/" + strings.Trim(cfg.UploadsURL, "/")
		files := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get(prefix+"/*", func(w http.ResponseWriter, r *http.Request) {
			rel := strings.TrimPrefix(path.Clean(r.URL.Path), prefix+"/")
			if rel == storage.PrivateDir || strings.HasPrefix(rel, storage.PrivateDir+"/") {
				http.NotFound(w, r)
				return
			}
			files.ServeHTTP(w, r)
		})
	}

	r.Post("/request-reset-password", h.Auth.RequestPasswordReset)
	r.Post("/reset-password", h.Auth.ResetPassword)

	authenticated := func(role user.Role) func(chi.Router) {
		return func(r chi.Router) {
			r.Use(middleware.Authenticate(JWTService.JWTAuth()))
			r.Use(middleware.RejectRevoked(JWTService))
			r.Use(middleware.RequireRole(role))
		}
	}

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/register", h.Admin.Register)
		r.Post("/login", h.Auth.Login(user.RoleAdmin))

		r.Group(func(r chi.Router) {
			authenticated(user.RoleAdmin)(r)

			r.Post("/logout", h.Auth.Logout)
			r.Get("/admins", h.Admin.List)
			r.Post("/admins", h.Admin.Register)
			r.Delete("/admins/{id}", h.Admin.Delete)
			r.Get("/hrs", h.Admin.ListHR)
			r.Post("/hrs", h.Admin.CreateHR)
			r.Delete("/hrs/{id}", h.Admin.DeleteHR)
		})
	})

	r.Route("/api/hr", func(r chi.Router) {
		r.Post("/register", h.HR.Register)
		r.Post("/login", h.Auth.Login(user.RoleHR))

		r.Group(func(r chi.Router) {
			authenticated(user.RoleHR)(r)

			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.HR.Me)
			r.Put("/me", h.HR.UpdateMe)
			r.Put("/change-password", h.Auth.ChangePassword)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Post("/import", h.Employee.Import)
				r.Get("/import-template", h.Employee.ImportTemplate)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.Get)
					r.Put("/", h.Employee.Update)
					r.Delete("/", h.Employee.Delete)
					r.Get("/attendance", h.Attendance.EmployeeHistory)
					r.Post("/salary-slip", h.Salary.Upload)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Get("/", h.Leave.ListAll)
				r.Get("/pending", h.Leave.ListPending)
				r.Put("/{id}/decision", h.Leave.Decide)
			})

			r.Get("/counts", h.Dashboard.Counts)
			r.Get("/summary/gender", h.Dashboard.GenderSummary)
			r.Get("/summary/department", h.Dashboard.DepartmentSummary)

			r.Get("/announcements", h.Announcement.List)
			r.Post("/announcements", h.Announcement.Create)
			r.Delete("/announcements/{id}", h.Announcement.Delete)

			r.Post("/salary-slips/zip", h.Salary.UploadArchive)
		})
	})

	r.Route("/api/employee", func(r chi.Router) {
		r.Post("/register", h.Employee.Register)
		r.Post("/login", h.Auth.Login(user.RoleEmployee))

		r.Group(func(r chi.Router) {
			authenticated(user.RoleEmployee)(r)

			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Employee.Me)
			r.Put("/me", h.Employee.UpdateMe)
			r.Put("/change-password", h.Auth.ChangePassword)

			r.Post("/check-in", h.Attendance.CheckIn)
			r.Post("/check-out", h.Attendance.CheckOut)
			r.Get("/attendance/today", h.Attendance.Today)
			r.Get("/attendance/history", h.Attendance.History)

			r.Post("/leave-request", h.Leave.Submit)
			r.Get("/leave-requests", h.Leave.ListMine)
			r.Delete("/leave-requests/{id}", h.Leave.Delete)
			r.Get("/leave-info", h.Leave.LeaveInfo)

			r.Get("/salary-slip", h.Salary.Get)
			r.Get("/salary-slip/download", h.Salary.Download)

			r.Get("/announcements", h.Announcement.List)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.QueryToken)
			authenticated(user.RoleEmployee)(r)

			r.Get("/announcements/stream", h.Announcement.Stream)
		})
	})

	return r
}
