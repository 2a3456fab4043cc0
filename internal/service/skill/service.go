package skill

import (
	"context"
	"unicode/utf8"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/skill"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"
)

type skillServiceImpl struct {
	skillRepo skill.SkillRepository
}

func NewSkillService(skillRepo skill.SkillRepository) skill.SkillService {
	return &skillServiceImpl{skillRepo: skillRepo}
}

// EnsureSkills implements skill.SkillService. The result follows the order of
// the first occurrence of each name in the input.
func (s *skillServiceImpl) EnsureSkills(ctx context.Context, names []string) ([]skill.Skill, error) {
	normalized := skill.NormalizeAll(names)
	if len(normalized) > skill.MaxSkillsPerEmployee {
		return nil, skill.ErrTooManySkills
	}
	for _, name := range normalized {
		if utf8.RuneCountInString(name) > skill.MaxNameLength {
			return nil, skill.ErrSkillNameTooLong
		}
	}
	if len(normalized) == 0 {
		return []skill.Skill{}, nil
	}

	existing, err := s.skillRepo.FindByNames(ctx, normalized)
	if err != nil {
		return nil, apperror.Infrastructure("find skills", err)
	}

	byKey := make(map[string]skill.Skill, len(existing))
	for _, sk := range existing {
		byKey[skill.Key(sk.Name)] = sk
	}

	resolved := make([]skill.Skill, 0, len(normalized))
	for _, name := range normalized {
		if sk, ok := byKey[skill.Key(name)]; ok {
			resolved = append(resolved, sk)
			continue
		}
		// A concurrent insert of the same name resolves to the stored row.
		created, err := s.skillRepo.Upsert(ctx, name)
		if err != nil {
			return nil, apperror.Infrastructure("create skill", err)
		}
		byKey[skill.Key(created.Name)] = created
		resolved = append(resolved, created)
	}
	return resolved, nil
}

// AssociateWithEmployee implements skill.SkillService.
func (s *skillServiceImpl) AssociateWithEmployee(ctx context.Context, employeeID string, names []string) ([]skill.Skill, error) {
	skills, err := s.EnsureSkills(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return skills, nil
	}

	ids := make([]string, len(skills))
	for i, sk := range skills {
		ids[i] = sk.ID
	}
	if err := s.skillRepo.AddToEmployee(ctx, employeeID, ids); err != nil {
		return nil, apperror.Infrastructure("associate skills", err)
	}
	return skills, nil
}

// ReplaceForEmployee implements skill.SkillService.
func (s *skillServiceImpl) ReplaceForEmployee(ctx context.Context, employeeID string, names []string) ([]skill.Skill, error) {
	if err := s.ClearForEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.AssociateWithEmployee(ctx, employeeID, names)
}

// ClearForEmployee implements skill.SkillService.
func (s *skillServiceImpl) ClearForEmployee(ctx context.Context, employeeID string) error {
	if err := s.skillRepo.DeleteByEmployee(ctx, employeeID); err != nil {
		return apperror.Infrastructure("clear skills", err)
	}
	return nil
}

// ListCatalog implements skill.SkillService.
func (s *skillServiceImpl) ListCatalog(ctx context.Context) ([]skill.SkillResponse, error) {
	skills, err := s.skillRepo.List(ctx)
	if err != nil {
		return nil, apperror.Infrastructure("list skills", err)
	}

	responses := make([]skill.SkillResponse, len(skills))
	for i, sk := range skills {
		responses[i] = skill.SkillResponse{ID: sk.ID, Name: sk.Name}
	}
	return responses, nil
}
