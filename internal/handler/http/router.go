package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/bench-backend-go/internal/config"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bench-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	metricsHandler http.Handler,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	allocationHandler AllocationHandler,
	queryHandler QueryHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "bench-tracker"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if metricsHandler != nil {
		r.Method(http.MethodGet, cfg.App.MetricsPath, metricsHandler)
	}

	r.Route("/Auth", func(r chi.Router) {
		r.Post("/Login", authHandler.Login)
	})

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/Admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleAdmin))

			r.Get("/GetAllEmployees", employeeHandler.GetAllEmployees)
			r.Get("/GetEmployeeById", employeeHandler.GetEmployeeByID)
			r.Get("/GetAllEmployeesByPagination", queryHandler.GetAllEmployeesByPagination)
			r.Get("/GetEmployeesCount", queryHandler.GetEmployeesCount)
			r.Post("/AddEmployee", employeeHandler.AddEmployee)
			r.Put("/UpdateEmployee", employeeHandler.UpdateEmployee)
			r.Delete("/RemoveEmployee", employeeHandler.RemoveEmployee)
			r.Put("/UpdateEmployees", allocationHandler.UpdateEmployees)
			r.Get("/GetJobRoles", masterHandler.GetJobRoles)
			r.Get("/GetSkills", masterHandler.GetSkills)
		})

		r.Route("/Allocator", func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleAllocator))

			r.Post("/Create", allocationHandler.Create)
			r.Post("/Transition", allocationHandler.Transition)
			r.Get("/GetAllocationHistory/{id}", allocationHandler.GetAllocationHistory)
			r.Get("/GetAllEmployeesByPagination", queryHandler.GetAllEmployeesByPagination)
			r.Get("/GetEmployeesCount", queryHandler.GetEmployeesCount)
			r.Get("/GetTrainings", masterHandler.GetTrainings)
			r.Get("/GetInternalProjects", masterHandler.GetInternalProjects)
		})

		r.Route("/Manager", func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleManager))

			r.Get("/GetAllEmployeesByPagination", queryHandler.GetAllEmployeesByPagination)
			r.Get("/GetEmployeeById/{id}", allocationHandler.GetCurrentBenchAllocation)
			r.Get("/GetEmployeesCount", queryHandler.GetEmployeesCount)
		})
	})
	return r
}
