package allocation

import (
	"fmt"
	"time"
)

// Status is the two-valued allocation type. The numeric values match the
// rows of the allocation_types table.
type Status int16

const (
	StatusBench     Status = 1
	StatusAllocated Status = 2
)

func (s Status) IsValid() bool {
	return s == StatusBench || s == StatusAllocated
}

func (s Status) String() string {
	switch s {
	case StatusBench:
		return "Bench"
	case StatusAllocated:
		return "Allocated"
	default:
		return fmt.Sprintf("Status(%d)", int16(s))
	}
}

// Assignment is what an allocation points at. Bench carries no reference,
// Allocated carries exactly one of a training or an internal project.
// The zero value is not a valid assignment.
type Assignment struct {
	status            Status
	trainingID        string
	internalProjectID string
}

func Bench() Assignment {
	return Assignment{status: StatusBench}
}

func Training(trainingID string) Assignment {
	return Assignment{status: StatusAllocated, trainingID: trainingID}
}

func InternalProject(internalProjectID string) Assignment {
	return Assignment{status: StatusAllocated, internalProjectID: internalProjectID}
}

// ParseAssignment rebuilds an Assignment from its flat storage form and
// rejects combinations the sum type cannot represent.
func ParseAssignment(status Status, trainingID, internalProjectID *string) (Assignment, error) {
	hasTraining := trainingID != nil && *trainingID != ""
	hasProject := internalProjectID != nil && *internalProjectID != ""

	switch status {
	case StatusBench:
		if hasTraining || hasProject {
			return Assignment{}, ErrBenchWithReference
		}
		return Bench(), nil
	case StatusAllocated:
		switch {
		case hasTraining && hasProject:
			return Assignment{}, ErrAmbiguousAssignment
		case hasTraining:
			return Training(*trainingID), nil
		case hasProject:
			return InternalProject(*internalProjectID), nil
		default:
			return Assignment{}, ErrMissingAssignment
		}
	default:
		return Assignment{}, ErrInvalidStatus
	}
}

func (a Assignment) Status() Status {
	return a.status
}

func (a Assignment) IsZero() bool {
	return a.status == 0
}

func (a Assignment) TrainingID() *string {
	if a.trainingID == "" {
		return nil
	}
	id := a.trainingID
	return &id
}

func (a Assignment) InternalProjectID() *string {
	if a.internalProjectID == "" {
		return nil
	}
	id := a.internalProjectID
	return &id
}

type Allocation struct {
	ID         string
	Seq        int64
	EmployeeID string
	Assignment Assignment
	StartDate  time.Time
	EndDate    *time.Time
	Details    string
	CreatedAt  time.Time
}

// IsOpen reports whether the allocation is still the current one.
func (a Allocation) IsOpen() bool {
	return a.EndDate == nil
}

// AllocationWithDetails carries the labels joined in for display.
type AllocationWithDetails struct {
	Allocation
	StatusLabel         string
	TrainingName        *string
	InternalProjectName *string
}
