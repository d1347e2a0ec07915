package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	dashboardHandler DashboardHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/ui", func(r chi.Router) {
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", dashboardHandler.GetDashboard)
			r.Post("/retry", dashboardHandler.Retry)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/retry", employeeHandler.Retry)
			r.Delete("/{id}", employeeHandler.Delete)

			r.Route("/new", func(r chi.Router) {
				r.Get("/", employeeHandler.GetForm)
				r.Patch("/", employeeHandler.UpdateField)
				r.Post("/", employeeHandler.Submit)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.GetPage)
			r.Post("/", attendanceHandler.Mark)
			r.Post("/retry", attendanceHandler.Retry)
			r.Put("/filter", attendanceHandler.ChangeFilter)
			r.Patch("/form", attendanceHandler.UpdateField)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.Recent)
			r.Get("/stream", notificationHandler.Stream)
		})
	})

	return r
}
