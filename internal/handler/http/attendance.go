package http

import (
	"encoding/json"
	"net/http"

	"github.com/clinichr/clinic-hr-backend/internal/domain/attendance"
	"github.com/clinichr/clinic-hr-backend/internal/handler/http/response"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/validator"
	attendanceservice "github.com/clinichr/clinic-hr-backend/internal/service/attendance"
	"github.com/go-chi/chi/v5"
)

// AttendanceHandler defines the attendance handler interface
type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	MarkAbsent(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendanceservice.Service
}

func NewAttendanceHandler(attendanceService *attendanceservice.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req attendance.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.attendanceService.ClockIn(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", attendance.ToEventResponse(event))
}

func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req attendance.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.attendanceService.ClockOut(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked out", attendance.ToEventResponse(event))
}

type markAbsentRequest struct {
	Day string `json:"day"`
}

func (h *attendanceHandlerImpl) MarkAbsent(w http.ResponseWriter, r *http.Request) {
	var req markAbsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	day, ok := validator.IsValidDate(req.Day)
	if !ok {
		response.ValidationError(w, map[string]string{"day": "expected YYYY-MM-DD"})
		return
	}

	event, err := h.attendanceService.MarkAbsent(r.Context(), chi.URLParam(r, "id"), day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Marked absent", attendance.ToEventResponse(event))
}

func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	from, okFrom := validator.IsValidDate(r.URL.Query().Get("from"))
	to, okTo := validator.IsValidDate(r.URL.Query().Get("to"))
	if !okFrom || !okTo {
		response.ValidationError(w, map[string]string{
			"from": "expected YYYY-MM-DD",
			"to":   "expected YYYY-MM-DD",
		})
		return
	}
	// "to" is inclusive in the API, exclusive in the repository.
	to = to.AddDate(0, 0, 1)

	events, err := h.attendanceService.History(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, attendance.ToEventResponse(ev))
	}

	response.Success(w, responses)
}
