package employee

import (
	"time"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
)

type Employee struct {
	ID             string
	Name           string
	Email          string
	JobRoleID      string
	CurrentStatus  allocation.Status
	BenchStartDate time.Time
	BenchEndDate   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EmployeeWithDetails adds the joined job role, allocation type label and
// skill names.
type EmployeeWithDetails struct {
	Employee
	JobRoleName string
	StatusLabel string
	Skills      []string
}

// WithStatus returns e with its current status fields set from an
// allocation change. A bench change takes both dates as given. An allocated
// change keeps the bench start and closes bench time at the new start.
func (e Employee) WithStatus(status allocation.Status, start time.Time, end *time.Time) Employee {
	e.CurrentStatus = status
	switch status {
	case allocation.StatusBench:
		e.BenchStartDate = start
		e.BenchEndDate = end
	case allocation.StatusAllocated:
		benchEnd := start
		e.BenchEndDate = &benchEnd
	}
	return e
}
