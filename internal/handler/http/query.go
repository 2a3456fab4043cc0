package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/query"
	"github.com/cmlabs-hris/bench-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/bench-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/validator"
)

// QueryHandler serves the paginated employee listing. The listing scope
// follows the caller's role.
type QueryHandler interface {
	GetAllEmployeesByPagination(w http.ResponseWriter, r *http.Request)
	GetEmployeesCount(w http.ResponseWriter, r *http.Request)
}

type queryHandlerImpl struct {
	queryService query.QueryService
}

func NewQueryHandler(queryService query.QueryService) QueryHandler {
	return &queryHandlerImpl{
		queryService: queryService,
	}
}

func (h *queryHandlerImpl) GetAllEmployeesByPagination(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	req, err := parsePageRequest(q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.Scope = scope

	items, err := h.queryService.Paginate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	total, err := h.queryService.Count(r.Context(), req.Search, req.Scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalItems: total,
		TotalPages: query.TotalPages(total, req.PageSize),
	})
}

func (h *queryHandlerImpl) GetEmployeesCount(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	total, err := h.queryService.Count(r.Context(), r.URL.Query().Get("search"), scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, total)
}

func scopeFromRequest(r *http.Request) (query.Scope, error) {
	role, err := middleware.RoleFromContext(r)
	if err != nil {
		return 0, err
	}
	return query.ScopeFor(role)
}

// parsePageRequest reads page, pageSize, search, sortBy and sortOrder.
// Range checks are left to the query service.
func parsePageRequest(q url.Values) (query.PageRequest, error) {
	var errs validator.ValidationErrors

	page := query.DefaultPage
	if p := q.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be an integer"})
		}
		page = n
	}

	pageSize := query.DefaultPageSize
	if s := q.Get("pageSize"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "pageSize", Message: "pageSize must be an integer"})
		}
		pageSize = n
	}

	if len(errs) > 0 {
		return query.PageRequest{}, errs
	}

	return query.PageRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   q.Get("search"),
		Sort:     query.ResolveSort(q.Get("sortBy"), q.Get("sortOrder")),
	}, nil
}
