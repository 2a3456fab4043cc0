package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/skill"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
)

var skillConstraints = constraintError{
	"employee_skills_employee_id_fkey": employee.ErrEmployeeNotFound,
}

type skillRepositoryImpl struct {
	db database.Querier
}

func NewSkillRepository(db database.Querier) skill.SkillRepository {
	return &skillRepositoryImpl{db: db}
}

// FindByNames implements skill.SkillRepository.
func (r *skillRepositoryImpl) FindByNames(ctx context.Context, names []string) ([]skill.Skill, error) {
	if len(names) == 0 {
		return []skill.Skill{}, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name
		FROM skills
		WHERE lower(name) = ANY(SELECT lower(n) FROM unnest($1::text[]) AS n)
	`

	rows, err := q.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to find skills: %w", err)
	}
	defer rows.Close()

	skills := make([]skill.Skill, 0, len(names))
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return skills, nil
}

// Upsert implements skill.SkillRepository. The no-op update makes RETURNING
// yield the existing row on conflict.
func (r *skillRepositoryImpl) Upsert(ctx context.Context, name string) (skill.Skill, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO skills (name)
		VALUES ($1)
		ON CONFLICT ((lower(name))) DO UPDATE SET name = skills.name
		RETURNING id, name
	`

	var s skill.Skill
	if err := q.QueryRow(ctx, query, name).Scan(&s.ID, &s.Name); err != nil {
		return skill.Skill{}, fmt.Errorf("failed to upsert skill %q: %w", name, err)
	}
	return s, nil
}

// List implements skill.SkillRepository.
func (r *skillRepositoryImpl) List(ctx context.Context) ([]skill.Skill, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name FROM skills ORDER BY lower(name) ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return skills, nil
}

// AddToEmployee implements skill.SkillRepository. One employee_skills row is
// inserted per id.
func (r *skillRepositoryImpl) AddToEmployee(ctx context.Context, employeeID string, skillIDs []string) error {
	if len(skillIDs) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_skills (employee_id, skill_id)
		SELECT $1, unnest($2::uuid[])
	`

	if _, err := q.Exec(ctx, query, employeeID, skillIDs); err != nil {
		return skillConstraints.translate(err)
	}
	return nil
}

// DeleteByEmployee implements skill.SkillRepository.
func (r *skillRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM employee_skills WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to clear skills for employee %s: %w", employeeID, err)
	}
	return nil
}
