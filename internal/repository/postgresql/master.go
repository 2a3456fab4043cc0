package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/master/internalproject"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/master/jobrole"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/master/training"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
)

type jobRoleRepositoryImpl struct {
	db database.Querier
}

func NewJobRoleRepository(db database.Querier) jobrole.JobRoleRepository {
	return &jobRoleRepositoryImpl{db: db}
}

// List implements jobrole.JobRoleRepository.
func (r *jobRoleRepositoryImpl) List(ctx context.Context) ([]jobrole.JobRole, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name FROM job_roles ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job roles: %w", err)
	}
	defer rows.Close()

	roles := make([]jobrole.JobRole, 0)
	for rows.Next() {
		var jr jobrole.JobRole
		if err := rows.Scan(&jr.ID, &jr.Name); err != nil {
			return nil, err
		}
		roles = append(roles, jr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

// Upsert implements jobrole.JobRoleRepository.
func (r *jobRoleRepositoryImpl) Upsert(ctx context.Context, name string) (jobrole.JobRole, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO job_roles (name)
		VALUES ($1)
		ON CONFLICT ON CONSTRAINT job_roles_name_key DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`

	var jr jobrole.JobRole
	if err := q.QueryRow(ctx, query, name).Scan(&jr.ID, &jr.Name); err != nil {
		return jobrole.JobRole{}, fmt.Errorf("failed to upsert job role %q: %w", name, err)
	}
	return jr, nil
}

type trainingRepositoryImpl struct {
	db database.Querier
}

func NewTrainingRepository(db database.Querier) training.TrainingRepository {
	return &trainingRepositoryImpl{db: db}
}

// List implements training.TrainingRepository.
func (r *trainingRepositoryImpl) List(ctx context.Context) ([]training.Training, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, description FROM trainings ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainings: %w", err)
	}
	defer rows.Close()

	trainings := make([]training.Training, 0)
	for rows.Next() {
		var t training.Training
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trainings, nil
}

// Upsert implements training.TrainingRepository.
func (r *trainingRepositoryImpl) Upsert(ctx context.Context, t training.Training) (training.Training, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO trainings (name, description)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT trainings_name_key DO UPDATE SET description = EXCLUDED.description
		RETURNING id, name, description
	`

	var result training.Training
	if err := q.QueryRow(ctx, query, t.Name, t.Description).Scan(&result.ID, &result.Name, &result.Description); err != nil {
		return training.Training{}, fmt.Errorf("failed to upsert training %q: %w", t.Name, err)
	}
	return result, nil
}

type internalProjectRepositoryImpl struct {
	db database.Querier
}

func NewInternalProjectRepository(db database.Querier) internalproject.InternalProjectRepository {
	return &internalProjectRepositoryImpl{db: db}
}

// List implements internalproject.InternalProjectRepository.
func (r *internalProjectRepositoryImpl) List(ctx context.Context) ([]internalproject.InternalProject, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, description FROM internal_projects ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list internal projects: %w", err)
	}
	defer rows.Close()

	projects := make([]internalproject.InternalProject, 0)
	for rows.Next() {
		var p internalproject.InternalProject
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

// Upsert implements internalproject.InternalProjectRepository.
func (r *internalProjectRepositoryImpl) Upsert(ctx context.Context, p internalproject.InternalProject) (internalproject.InternalProject, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO internal_projects (name, description)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT internal_projects_name_key DO UPDATE SET description = EXCLUDED.description
		RETURNING id, name, description
	`

	var result internalproject.InternalProject
	if err := q.QueryRow(ctx, query, p.Name, p.Description).Scan(&result.ID, &result.Name, &result.Description); err != nil {
		return internalproject.InternalProject{}, fmt.Errorf("failed to upsert internal project %q: %w", p.Name, err)
	}
	return result, nil
}
