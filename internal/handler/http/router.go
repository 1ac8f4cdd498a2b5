package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/handler/http/middleware"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	env string,
	jwtService jwt.Service,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
	taskHandler TaskHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "clinic-hr"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(httprate.LimitByIP(300, time.Minute))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			// Credential endpoints get a tighter rate limit.
			r.Use(httprate.LimitByIP(10, time.Minute))
			r.Post("/register", employeeHandler.Register)
			r.Post("/login", employeeHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/me", employeeHandler.GetMe)
				r.Put("/me/push-token", employeeHandler.UpdatePushToken)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Put("/schedule", employeeHandler.UpdateSchedule)

					r.Get("/attendance", attendanceHandler.History)
					r.Post("/absences", attendanceHandler.MarkAbsent)

					r.Get("/leaves", leaveHandler.ListByEmployee)
					r.Get("/leave-policy", leaveHandler.GetPolicy)

					r.Get("/payslip", payrollHandler.GetPayslip)
					r.Get("/payslip/status", payrollHandler.GetStatus)
					r.Put("/payslip/status", payrollHandler.SetStatus)

					r.Get("/tasks", taskHandler.ListByEmployee)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Apply)
				r.Post("/preview", leaveHandler.PreviewDeduction)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", leaveHandler.Get)
					r.Put("/status", leaveHandler.UpdateStatus)
					r.Delete("/", leaveHandler.Delete)
				})
			})

			r.Route("/leave-policies", func(r chi.Router) {
				r.Get("/", leaveHandler.ListPolicies)
				r.Post("/", leaveHandler.UpsertPolicy)
				r.Delete("/{id}", leaveHandler.DeletePolicy)
			})

			r.Get("/payslips", payrollHandler.ListPayslips)

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", taskHandler.Create)
				r.Delete("/{id}", taskHandler.Delete)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", taskHandler.ListNotifications)
				r.Delete("/{id}", taskHandler.DeleteNotification)
			})
		})
	})

	return r
}
