package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
	"github.com/cmlabs-hris/bench-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AllocationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Transition(w http.ResponseWriter, r *http.Request)
	GetAllocationHistory(w http.ResponseWriter, r *http.Request)
	UpdateEmployees(w http.ResponseWriter, r *http.Request)
	GetCurrentBenchAllocation(w http.ResponseWriter, r *http.Request)
}

type allocationHandlerImpl struct {
	allocationService allocation.AllocationService
}

func NewAllocationHandler(allocationService allocation.AllocationService) AllocationHandler {
	return &allocationHandlerImpl{
		allocationService: allocationService,
	}
}

func (h *allocationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req allocation.RecordAllocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.allocationService.RecordAllocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Allocation recorded successfully", result)
}

func (h *allocationHandlerImpl) Transition(w http.ResponseWriter, r *http.Request) {
	var req allocation.TransitionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.allocationService.Transition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee transitioned successfully", result)
}

func (h *allocationHandlerImpl) GetAllocationHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.allocationService.History(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateEmployees applies a status change to one employee without
// recording an allocation.
func (h *allocationHandlerImpl) UpdateEmployees(w http.ResponseWriter, r *http.Request) {
	var req allocation.ApplyStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.allocationService.ApplyToEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee status updated successfully", result)
}

func (h *allocationHandlerImpl) GetCurrentBenchAllocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.allocationService.CurrentAllocationFor(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
