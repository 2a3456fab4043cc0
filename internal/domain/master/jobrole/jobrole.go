package jobrole

import "context"

type JobRole struct {
	ID   string
	Name string
}

type JobRoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type JobRoleRepository interface {
	List(ctx context.Context) ([]JobRole, error)
	// Upsert matches on name and is used when loading fixtures.
	Upsert(ctx context.Context, name string) (JobRole, error)
}
