package allocation

import (
	"time"

	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/validator"
)

// RecordAllocationRequest appends one row to an employee's history.
type RecordAllocationRequest struct {
	EmployeeID        string  `json:"employeeId" validate:"required,uuid"`
	StatusType        Status  `json:"statusType" validate:"required"`
	StartDate         string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate           *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Details           string  `json:"details" validate:"required,min=10,max=1000"`
	TrainingID        *string `json:"trainingId,omitempty" validate:"omitempty,uuid"`
	InternalProjectID *string `json:"internalProjectId,omitempty" validate:"omitempty,uuid"`
}

// NewAllocation is the validated form of a record request.
type NewAllocation struct {
	EmployeeID string
	Assignment Assignment
	StartDate  time.Time
	EndDate    *time.Time
	Details    string
}

// Validate checks field formats first and business rules (assignment shape
// and date ordering) after.
func (r *RecordAllocationRequest) Validate() (NewAllocation, error) {
	if err := validator.Struct(r); err != nil {
		return NewAllocation{}, err
	}

	assignment, err := ParseAssignment(r.StatusType, r.TrainingID, r.InternalProjectID)
	if err != nil {
		return NewAllocation{}, err
	}

	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.ParseOptionalDate(r.EndDate)
	if end != nil && end.Before(start) {
		return NewAllocation{}, ErrInvalidDateRange
	}

	return NewAllocation{
		EmployeeID: r.EmployeeID,
		Assignment: assignment,
		StartDate:  start,
		EndDate:    end,
		Details:    r.Details,
	}, nil
}

// ApplyStatusRequest updates an employee's denormalized status fields.
type ApplyStatusRequest struct {
	EmployeeID string  `json:"employeeId" validate:"required,uuid"`
	StatusType Status  `json:"statusType" validate:"required"`
	StartDate  string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type StatusChange struct {
	EmployeeID string
	Status     Status
	StartDate  time.Time
	EndDate    *time.Time
}

func (r *ApplyStatusRequest) Validate() (StatusChange, error) {
	if err := validator.Struct(r); err != nil {
		return StatusChange{}, err
	}
	if !r.StatusType.IsValid() {
		return StatusChange{}, ErrInvalidStatus
	}

	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.ParseOptionalDate(r.EndDate)
	if end != nil && end.Before(start) {
		return StatusChange{}, ErrInvalidDateRange
	}

	return StatusChange{
		EmployeeID: r.EmployeeID,
		Status:     r.StatusType,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

// TransitionRequest records a new allocation and applies it to the employee
// in one step.
type TransitionRequest struct {
	EmployeeID        string  `json:"employeeId" validate:"required,uuid"`
	StatusType        Status  `json:"statusType" validate:"required"`
	StartDate         string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate           *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Details           string  `json:"details" validate:"required,min=10,max=1000"`
	TrainingID        *string `json:"trainingId,omitempty" validate:"omitempty,uuid"`
	InternalProjectID *string `json:"internalProjectId,omitempty" validate:"omitempty,uuid"`
}

func (r *TransitionRequest) Validate() (NewAllocation, error) {
	record := RecordAllocationRequest(*r)
	return record.Validate()
}

type AllocationResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employeeId"`
	StatusType          Status  `json:"statusType"`
	Status              string  `json:"status"`
	StartDate           string  `json:"startDate"`
	EndDate             *string `json:"endDate"`
	Details             string  `json:"details"`
	TrainingID          *string `json:"trainingId"`
	TrainingName        *string `json:"trainingName,omitempty"`
	InternalProjectID   *string `json:"internalProjectId"`
	InternalProjectName *string `json:"internalProjectName,omitempty"`
	CreatedAt           string  `json:"createdAt"`
}

// EmployeeStatusResponse is the employee projection after a status change.
type EmployeeStatusResponse struct {
	EmployeeID     string  `json:"employeeId"`
	CurrentStatus  Status  `json:"currentStatus"`
	Status         string  `json:"status"`
	BenchStartDate string  `json:"benchStartDate"`
	BenchEndDate   *string `json:"benchEndDate"`
}

// TransitionResponse pairs the new allocation with the resulting employee status.
type TransitionResponse struct {
	Allocation AllocationResponse     `json:"allocation"`
	Employee   EmployeeStatusResponse `json:"employee"`
}

func NewAllocationResponse(a AllocationWithDetails) AllocationResponse {
	var endDate *string
	if a.EndDate != nil {
		s := a.EndDate.Format(validator.DateLayout)
		endDate = &s
	}

	label := a.StatusLabel
	if label == "" {
		label = a.Assignment.Status().String()
	}

	return AllocationResponse{
		ID:                  a.ID,
		EmployeeID:          a.EmployeeID,
		StatusType:          a.Assignment.Status(),
		Status:              label,
		StartDate:           a.StartDate.Format(validator.DateLayout),
		EndDate:             endDate,
		Details:             a.Details,
		TrainingID:          a.Assignment.TrainingID(),
		TrainingName:        a.TrainingName,
		InternalProjectID:   a.Assignment.InternalProjectID(),
		InternalProjectName: a.InternalProjectName,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
	}
}
