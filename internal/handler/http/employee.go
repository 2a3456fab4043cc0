package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bench-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	GetAllEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployeeByID(w http.ResponseWriter, r *http.Request)
	AddEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	RemoveEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

func (h *employeeHandlerImpl) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.GetAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

func (h *employeeHandlerImpl) GetEmployeeByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	result, err := h.employeeService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) AddEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.AddEmployeeRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.Add(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee added successfully", result)
}

func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.Modify(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

func (h *employeeHandlerImpl) RemoveEmployee(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	if err := h.employeeService.Remove(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee removed successfully", nil)
}
