package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/bench-backend-go/internal/config"
	"github.com/cmlabs-hris/bench-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bench-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/bench-backend-go/internal/service/auth"
)

// Usage: seed [-file fixtures.yaml]
func main() {
	file := flag.String("file", "", "YAML fixtures to load (defaults to the built-in set)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var fx fixtures.Fixtures
	if *file != "" {
		fx, err = fixtures.LoadFile(*file)
	} else {
		fx, err = fixtures.Default()
	}
	if err != nil {
		slog.Error("Failed to load fixtures", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	seeder := fixtures.NewSeeder(
		database.NewTransactionManager(db),
		postgresql.NewJobRoleRepository(db),
		postgresql.NewTrainingRepository(db),
		postgresql.NewInternalProjectRepository(db),
		postgresql.NewUserRepository(db),
		serviceAuth.HashPassword,
	)

	summary, err := seeder.Apply(ctx, fx)
	if err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Seeding completed",
		"job_roles", summary.JobRoles,
		"trainings", summary.Trainings,
		"internal_projects", summary.InternalProjects,
		"users", summary.Users,
	)
}
