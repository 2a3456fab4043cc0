package skill

import "context"

type SkillRepository interface {
	// FindByNames matches case-insensitively.
	FindByNames(ctx context.Context, names []string) ([]Skill, error)
	// Upsert returns the existing row when a skill with the same lowercase
	// name already exists.
	Upsert(ctx context.Context, name string) (Skill, error)
	List(ctx context.Context) ([]Skill, error)
	AddToEmployee(ctx context.Context, employeeID string, skillIDs []string) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
