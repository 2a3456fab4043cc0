package master

import (
	"context"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/master/internalproject"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/master/jobrole"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/master/training"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"
)

// MasterService lists the reference data used by the employee and
// allocation forms.
type MasterService interface {
	ListJobRoles(ctx context.Context) ([]jobrole.JobRoleResponse, error)
	ListTrainings(ctx context.Context) ([]training.TrainingResponse, error)
	ListInternalProjects(ctx context.Context) ([]internalproject.InternalProjectResponse, error)
}

type masterServiceImpl struct {
	jobRoleRepo         jobrole.JobRoleRepository
	trainingRepo        training.TrainingRepository
	internalProjectRepo internalproject.InternalProjectRepository
}

func NewMasterService(
	jobRoleRepo jobrole.JobRoleRepository,
	trainingRepo training.TrainingRepository,
	internalProjectRepo internalproject.InternalProjectRepository,
) MasterService {
	return &masterServiceImpl{
		jobRoleRepo:         jobRoleRepo,
		trainingRepo:        trainingRepo,
		internalProjectRepo: internalProjectRepo,
	}
}

func (s *masterServiceImpl) ListJobRoles(ctx context.Context) ([]jobrole.JobRoleResponse, error) {
	roles, err := s.jobRoleRepo.List(ctx)
	if err != nil {
		return nil, apperror.Infrastructure("list job roles", err)
	}

	responses := make([]jobrole.JobRoleResponse, len(roles))
	for i, r := range roles {
		responses[i] = jobrole.JobRoleResponse{ID: r.ID, Name: r.Name}
	}
	return responses, nil
}

func (s *masterServiceImpl) ListTrainings(ctx context.Context) ([]training.TrainingResponse, error) {
	trainings, err := s.trainingRepo.List(ctx)
	if err != nil {
		return nil, apperror.Infrastructure("list trainings", err)
	}

	responses := make([]training.TrainingResponse, len(trainings))
	for i, t := range trainings {
		responses[i] = training.TrainingResponse{ID: t.ID, Name: t.Name, Description: t.Description}
	}
	return responses, nil
}

func (s *masterServiceImpl) ListInternalProjects(ctx context.Context) ([]internalproject.InternalProjectResponse, error) {
	projects, err := s.internalProjectRepo.List(ctx)
	if err != nil {
		return nil, apperror.Infrastructure("list internal projects", err)
	}

	responses := make([]internalproject.InternalProjectResponse, len(projects))
	for i, p := range projects {
		responses[i] = internalproject.InternalProjectResponse{ID: p.ID, Name: p.Name, Description: p.Description}
	}
	return responses, nil
}
