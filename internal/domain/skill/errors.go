package skill

import "github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"

var (
	ErrSkillNameTooLong = apperror.Validation("skill names must not exceed 100 characters")
	ErrTooManySkills    = apperror.Validation("an employee can have at most 50 skills")
)
