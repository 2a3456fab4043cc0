package employee

import (
	"context"
	"time"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByIDWithDetails(ctx context.Context, id string) (EmployeeWithDetails, error)
	ListWithDetails(ctx context.Context) ([]EmployeeWithDetails, error)
	// ExistsByName and ExistsByEmail compare case-insensitively and skip
	// excludeID when it is set.
	ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status allocation.Status, benchStart time.Time, benchEnd *time.Time) (Employee, error)
}
