package training

import "context"

type Training struct {
	ID          string
	Name        string
	Description string
}

type TrainingResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TrainingRepository interface {
	List(ctx context.Context) ([]Training, error)
	Upsert(ctx context.Context, t Training) (Training, error)
}
