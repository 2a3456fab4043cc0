package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../../../migrations"

// TestDatabaseSetup holds a pool on a freshly migrated database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase skips the test unless TEST_DATABASE_URL points at a
// disposable PostgreSQL database. The schema is rebuilt from the
// migrations on every call.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, resetMigrations(dsn, migrationsDir))

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolConfig{MaxConns: 4, MinConns: 1})
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	return &TestDatabaseSetup{DB: db}
}

// TruncateAllTables removes every row except the allocation type labels.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"allocations",
		"employee_skills",
		"employees",
		"skills",
		"job_roles",
		"trainings",
		"internal_projects",
		"users",
	}

	for _, table := range tables {
		if _, err := s.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

func resetMigrations(dsn, dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
