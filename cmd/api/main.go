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

	"github.com/cmlabs-hris/bench-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/bench-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/bench-backend-go/internal/repository/postgresql"
	allocationService "github.com/cmlabs-hris/bench-backend-go/internal/service/allocation"
	serviceAuth "github.com/cmlabs-hris/bench-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/bench-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/bench-backend-go/internal/service/master"
	queryService "github.com/cmlabs-hris/bench-backend-go/internal/service/query"
	skillService "github.com/cmlabs-hris/bench-backend-go/internal/service/skill"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("env", cfg.App.Env)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	txManager := database.NewTransactionManager(db)

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	allocationRepo := postgresql.NewAllocationRepository(db)
	skillRepo := postgresql.NewSkillRepository(db)
	queryRepo := postgresql.NewQueryRepository(db)
	jobRoleRepo := postgresql.NewJobRoleRepository(db)
	trainingRepo := postgresql.NewTrainingRepository(db)
	internalProjectRepo := postgresql.NewInternalProjectRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	skillSvc := skillService.NewSkillService(skillRepo)
	employeeSvc := employeeService.NewEmployeeService(txManager, employeeRepo, allocationRepo, skillSvc, appMetrics, nil)
	allocationSvc := allocationService.NewAllocationService(txManager, allocationRepo, employeeRepo, appMetrics)
	querySvc := queryService.NewQueryService(queryRepo)
	masterService := master.NewMasterService(jobRoleRepo, trainingRepo, internalProjectRepo)

	authHandler := appHTTP.NewAuthHandler(authService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	allocationHandler := appHTTP.NewAllocationHandler(allocationSvc)
	queryHandler := appHTTP.NewQueryHandler(querySvc)
	masterHandler := appHTTP.NewMasterHandler(masterService, skillSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		appMetrics.Handler(),
		authHandler,
		employeeHandler,
		allocationHandler,
		queryHandler,
		masterHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
