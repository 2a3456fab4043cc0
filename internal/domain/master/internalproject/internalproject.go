package internalproject

import "context"

type InternalProject struct {
	ID          string
	Name        string
	Description string
}

type InternalProjectResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type InternalProjectRepository interface {
	List(ctx context.Context) ([]InternalProject, error)
	Upsert(ctx context.Context, p InternalProject) (InternalProject, error)
}
