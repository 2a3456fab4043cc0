package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/validator"
)

type AddEmployeeRequest struct {
	Name           string   `json:"name" validate:"required,max=100"`
	Email          string   `json:"email" validate:"required,email,max=255"`
	JobRoleID      string   `json:"jobRoleId" validate:"required,uuid"`
	BenchStartDate string   `json:"benchStartDate" validate:"required,datetime=2006-01-02"`
	BenchEndDate   *string  `json:"benchEndDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Skills         []string `json:"skills" validate:"dive,max=100"`
}

// Fields is the validated, typed form of the editable employee fields.
type Fields struct {
	Name           string
	Email          string
	JobRoleID      string
	BenchStartDate time.Time
	BenchEndDate   *time.Time
	Skills         []string
}

func (r *AddEmployeeRequest) Validate() (Fields, error) {
	if err := validator.Struct(r); err != nil {
		return Fields{}, err
	}
	return parseFields(r.Name, r.Email, r.JobRoleID, r.BenchStartDate, r.BenchEndDate, r.Skills)
}

type UpdateEmployeeRequest struct {
	ID             string   `json:"id" validate:"required,uuid"`
	Name           string   `json:"name" validate:"required,max=100"`
	Email          string   `json:"email" validate:"required,email,max=255"`
	JobRoleID      string   `json:"jobRoleId" validate:"required,uuid"`
	BenchStartDate string   `json:"benchStartDate" validate:"required,datetime=2006-01-02"`
	BenchEndDate   *string  `json:"benchEndDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Skills         []string `json:"skills" validate:"dive,max=100"`
}

func (r *UpdateEmployeeRequest) Validate() (Fields, error) {
	if err := validator.Struct(r); err != nil {
		return Fields{}, err
	}
	return parseFields(r.Name, r.Email, r.JobRoleID, r.BenchStartDate, r.BenchEndDate, r.Skills)
}

func parseFields(name, email, jobRoleID, start string, end *string, skills []string) (Fields, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Fields{}, validator.ValidationErrors{{Field: "name", Message: "name is required"}}
	}

	startDate, _ := validator.IsValidDate(start)
	endDate, _ := validator.ParseOptionalDate(end)
	if endDate != nil && endDate.Before(startDate) {
		return Fields{}, ErrInvalidBenchRange
	}

	return Fields{
		Name:           name,
		Email:          strings.TrimSpace(email),
		JobRoleID:      jobRoleID,
		BenchStartDate: startDate,
		BenchEndDate:   endDate,
		Skills:         skills,
	}, nil
}

type EmployeeResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	JobRoleID      string            `json:"jobRoleId"`
	JobRole        string            `json:"jobRole"`
	CurrentStatus  allocation.Status `json:"currentStatus"`
	AllocationType string            `json:"allocationType"`
	BenchStartDate string            `json:"benchStartDate"`
	BenchEndDate   *string           `json:"benchEndDate"`
	Skills         []string          `json:"skills"`
}

func NewEmployeeResponse(e EmployeeWithDetails) EmployeeResponse {
	var benchEnd *string
	if e.BenchEndDate != nil {
		s := e.BenchEndDate.Format(validator.DateLayout)
		benchEnd = &s
	}

	label := e.StatusLabel
	if label == "" {
		label = e.CurrentStatus.String()
	}

	skills := e.Skills
	if skills == nil {
		skills = []string{}
	}

	return EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		Email:          e.Email,
		JobRoleID:      e.JobRoleID,
		JobRole:        e.JobRoleName,
		CurrentStatus:  e.CurrentStatus,
		AllocationType: label,
		BenchStartDate: e.BenchStartDate.Format(validator.DateLayout),
		BenchEndDate:   benchEnd,
		Skills:         skills,
	}
}
