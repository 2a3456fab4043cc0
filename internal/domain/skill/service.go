package skill

import "context"

const (
	MaxNameLength        = 100
	MaxSkillsPerEmployee = 50
)

type SkillResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SkillService is the shared skill catalog.
type SkillService interface {
	EnsureSkills(ctx context.Context, names []string) ([]Skill, error)
	// AssociateWithEmployee does not check the employee's existing skills.
	AssociateWithEmployee(ctx context.Context, employeeID string, names []string) ([]Skill, error)
	ReplaceForEmployee(ctx context.Context, employeeID string, names []string) ([]Skill, error)
	ClearForEmployee(ctx context.Context, employeeID string) error
	ListCatalog(ctx context.Context) ([]SkillResponse, error)
}
