// Package query describes the paginated employee listing shared by the
// admin, allocator and manager screens.
package query

import (
	"context"
	"math"
	"strings"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/user"
)

// Scope restricts the base set of employees before search, sort and paging.
type Scope int

const (
	ScopeAdmin Scope = iota + 1
	ScopeAllocator
	ScopeManager
)

func (s Scope) String() string {
	switch s {
	case ScopeAdmin:
		return "admin"
	case ScopeAllocator:
		return "allocator"
	case ScopeManager:
		return "manager"
	default:
		return "unknown"
	}
}

// BenchOnly reports whether the scope hides allocated employees.
func (s Scope) BenchOnly() bool {
	return s == ScopeManager
}

// ScopeFor maps a caller role to the scope it lists with.
func ScopeFor(role user.Role) (Scope, error) {
	switch role {
	case user.RoleAdmin:
		return ScopeAdmin, nil
	case user.RoleAllocator:
		return ScopeAllocator, nil
	case user.RoleManager:
		return ScopeManager, nil
	default:
		return 0, user.ErrInvalidRole
	}
}

type SortKey string

const (
	SortByName             SortKey = "name"
	SortByJobRole          SortKey = "jobRole"
	SortByAllocationStatus SortKey = "allocationStatus"
	SortByStartDate        SortKey = "startDate"
	SortByEndDate          SortKey = "endDate"
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Sort is a resolved ordering: always a recognized key and a direction.
type Sort struct {
	Key       SortKey
	Direction Direction
}

// ResolveSort turns raw query parameters into a Sort. Unrecognized or
// absent keys fall back to name ascending and ignore sortOrder. For
// recognized keys "desc" (any case) sorts descending, anything else
// ascending.
func ResolveSort(sortBy, sortOrder string) Sort {
	key := SortKey(strings.TrimSpace(sortBy))
	switch key {
	case SortByName, SortByJobRole, SortByAllocationStatus, SortByStartDate, SortByEndDate:
	default:
		return Sort{Key: SortByName, Direction: Asc}
	}

	if strings.EqualFold(strings.TrimSpace(sortOrder), "desc") {
		return Sort{Key: key, Direction: Desc}
	}
	return Sort{Key: key, Direction: Asc}
}

type PageRequest struct {
	Page     int
	PageSize int
	Search   string
	Sort     Sort
	Scope    Scope
}

// Offset is the number of rows skipped before the page starts.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p PageRequest) Validate() error {
	switch {
	case p.Page < 1:
		return ErrInvalidPage
	case p.PageSize < 1:
		return ErrInvalidPageSize
	case p.PageSize > MaxPageSize:
		return ErrPageSizeTooLarge
	case p.Page > math.MaxInt/p.PageSize+1:
		// Offset would overflow.
		return ErrInvalidPage
	case p.Scope < ScopeAdmin || p.Scope > ScopeManager:
		return ErrInvalidScope
	}
	return nil
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10

	// MaxPageSize caps a single page. Callers needing the full set must page
	// through it.
	MaxPageSize = 1000
)

// TotalPages is the number of pages needed for count rows. Zero rows is
// zero pages.
func TotalPages(count int64, pageSize int) int {
	if pageSize < 1 || count <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((count + size - 1) / size)
}

// EmployeeListItem is one row of a paginated listing.
type EmployeeListItem struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	JobRole        string            `json:"jobRole"`
	CurrentStatus  allocation.Status `json:"currentStatus"`
	AllocationType string            `json:"allocationType"`
	BenchStartDate string            `json:"benchStartDate"`
	BenchEndDate   *string           `json:"benchEndDate"`
}

type QueryRepository interface {
	Paginate(ctx context.Context, req PageRequest) ([]EmployeeListItem, error)
	Count(ctx context.Context, search string, scope Scope) (int64, error)
}

// QueryService is the query engine. Callers pass the same search and scope
// to Paginate and Count to keep page math consistent.
type QueryService interface {
	Paginate(ctx context.Context, req PageRequest) ([]EmployeeListItem, error)
	Count(ctx context.Context, search string, scope Scope) (int64, error)
}
