package query

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/query"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"
)

type queryServiceImpl struct {
	queryRepo query.QueryRepository
}

func NewQueryService(queryRepo query.QueryRepository) query.QueryService {
	return &queryServiceImpl{queryRepo: queryRepo}
}

// Paginate implements query.QueryService. A page past the last one is empty,
// not an error.
func (s *queryServiceImpl) Paginate(ctx context.Context, req query.PageRequest) ([]query.EmployeeListItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items, err := s.queryRepo.Paginate(ctx, req)
	if err != nil {
		slog.Error("Failed to paginate employees", "scope", req.Scope.String(), "page", req.Page, "error", err)
		return nil, apperror.Infrastructure("paginate employees", err)
	}
	if items == nil {
		items = []query.EmployeeListItem{}
	}
	return items, nil
}

// Count implements query.QueryService.
func (s *queryServiceImpl) Count(ctx context.Context, search string, scope query.Scope) (int64, error) {
	if scope < query.ScopeAdmin || scope > query.ScopeManager {
		return 0, query.ErrInvalidScope
	}

	total, err := s.queryRepo.Count(ctx, search, scope)
	if err != nil {
		slog.Error("Failed to count employees", "scope", scope.String(), "error", err)
		return 0, apperror.Infrastructure("count employees", err)
	}
	return total, nil
}
