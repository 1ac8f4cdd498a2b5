package http

import (
	"encoding/json"
	"net/http"

	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/handler/http/response"
	employeeservice "github.com/clinichr/clinic-hr-backend/internal/service/employee"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

// EmployeeHandler defines the employee handler interface
type EmployeeHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateSchedule(w http.ResponseWriter, r *http.Request)
	UpdatePushToken(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService *employeeservice.Service
}

func NewEmployeeHandler(employeeService *employeeservice.Service) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// getEmployeeIDFromContext extracts employee_id from JWT context
func getEmployeeIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if employeeID, ok := claims["employee_id"].(string); ok {
		return employeeID
	}
	return ""
}

func (h *employeeHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req employee.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.employeeService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee registered", employee.ToResponse(created))
}

func (h *employeeHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req employee.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.employeeService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToResponse(emp))
}

func (h *employeeHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	emp, err := h.employeeService.Get(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToResponse(emp))
}

func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}

	response.Success(w, responses)
}

func (h *employeeHandlerImpl) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.employeeService.UpdateSchedule(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule updated", nil)
}

func (h *employeeHandlerImpl) UpdatePushToken(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req employee.UpdatePushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.employeeService.UpdatePushToken(r.Context(), employeeID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Push token updated", nil)
}
