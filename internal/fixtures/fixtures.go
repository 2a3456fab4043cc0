// Package fixtures loads reference data and login accounts from YAML and
// writes them through the repositories.
package fixtures

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/master/internalproject"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/master/jobrole"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/master/training"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixtures []byte

type Fixtures struct {
	JobRoles         []string       `yaml:"job_roles"`
	Trainings        []CatalogEntry `yaml:"trainings"`
	InternalProjects []CatalogEntry `yaml:"internal_projects"`
	Users            []UserFixture  `yaml:"users"`
}

// CatalogEntry is a training or an internal project.
type CatalogEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// UserFixture holds a plain-text password. It is hashed before it is stored.
type UserFixture struct {
	Email    string    `yaml:"email"`
	Password string    `yaml:"password"`
	Role     user.Role `yaml:"role"`
}

// Default returns the fixtures shipped with the binary.
func Default() (Fixtures, error) {
	return Load(bytes.NewReader(defaultFixtures))
}

func LoadFile(path string) (Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates fixtures. Unknown keys are rejected.
func Load(r io.Reader) (Fixtures, error) {
	var fx Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return Fixtures{}, fmt.Errorf("decode fixtures: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return Fixtures{}, err
	}
	return fx, nil
}

func (fx Fixtures) Validate() error {
	for i, name := range fx.JobRoles {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("job_roles[%d]: name is required", i)
		}
	}
	for i, t := range fx.Trainings {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("trainings[%d]: name is required", i)
		}
	}
	for i, p := range fx.InternalProjects {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("internal_projects[%d]: name is required", i)
		}
	}

	seen := make(map[string]bool, len(fx.Users))
	for i, u := range fx.Users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		switch {
		case email == "":
			return fmt.Errorf("users[%d]: email is required", i)
		case u.Password == "":
			return fmt.Errorf("users[%d]: password is required", i)
		case !u.Role.IsValid():
			return fmt.Errorf("users[%d]: %w", i, user.ErrInvalidRole)
		case seen[email]:
			return fmt.Errorf("users[%d]: duplicate email %s", i, u.Email)
		}
		seen[email] = true
	}
	return nil
}

// Summary counts the rows written by Seeder.Apply.
type Summary struct {
	JobRoles         int
	Trainings        int
	InternalProjects int
	Users            int
}

// Seeder upserts fixtures, so running it twice leaves one row per name
// or email.
type Seeder struct {
	tx                  database.Transactor
	jobRoleRepo         jobrole.JobRoleRepository
	trainingRepo        training.TrainingRepository
	internalProjectRepo internalproject.InternalProjectRepository
	userRepo            user.UserRepository
	hashPassword        func(string) (string, error)
}

func NewSeeder(
	tx database.Transactor,
	jobRoleRepo jobrole.JobRoleRepository,
	trainingRepo training.TrainingRepository,
	internalProjectRepo internalproject.InternalProjectRepository,
	userRepo user.UserRepository,
	hashPassword func(string) (string, error),
) *Seeder {
	return &Seeder{
		tx:                  tx,
		jobRoleRepo:         jobRoleRepo,
		trainingRepo:        trainingRepo,
		internalProjectRepo: internalProjectRepo,
		userRepo:            userRepo,
		hashPassword:        hashPassword,
	}
}

// Apply writes every fixture in one transaction.
func (s *Seeder) Apply(ctx context.Context, fx Fixtures) (Summary, error) {
	var summary Summary
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		for _, name := range fx.JobRoles {
			if _, err := s.jobRoleRepo.Upsert(ctx, strings.TrimSpace(name)); err != nil {
				return fmt.Errorf("seed job role %q: %w", name, err)
			}
			summary.JobRoles++
		}

		for _, t := range fx.Trainings {
			if _, err := s.trainingRepo.Upsert(ctx, training.Training{
				Name:        strings.TrimSpace(t.Name),
				Description: t.Description,
			}); err != nil {
				return fmt.Errorf("seed training %q: %w", t.Name, err)
			}
			summary.Trainings++
		}

		for _, p := range fx.InternalProjects {
			if _, err := s.internalProjectRepo.Upsert(ctx, internalproject.InternalProject{
				Name:        strings.TrimSpace(p.Name),
				Description: p.Description,
			}); err != nil {
				return fmt.Errorf("seed internal project %q: %w", p.Name, err)
			}
			summary.InternalProjects++
		}

		for _, u := range fx.Users {
			hash, err := s.hashPassword(u.Password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.Email, err)
			}
			if _, err := s.userRepo.Upsert(ctx, user.User{
				Email:        strings.ToLower(strings.TrimSpace(u.Email)),
				PasswordHash: hash,
				Role:         u.Role,
			}); err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
			summary.Users++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return summary, nil
}
