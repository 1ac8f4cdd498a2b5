package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clinichr/clinic-hr-backend/internal/domain/payroll"
	"github.com/clinichr/clinic-hr-backend/internal/handler/http/response"
	payrollservice "github.com/clinichr/clinic-hr-backend/internal/service/payroll"
	"github.com/go-chi/chi/v5"
)

// PayrollHandler defines the payroll handler interface
type PayrollHandler interface {
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	engine *payrollservice.Engine
}

func NewPayrollHandler(engine *payrollservice.Engine) PayrollHandler {
	return &payrollHandlerImpl{engine: engine}
}

// periodParams parses the year and month query parameters. Both are
// mandatory; range validation happens in the engine.
func periodParams(r *http.Request) (year, month int, ok bool) {
	year, errY := strconv.Atoi(r.URL.Query().Get("year"))
	month, errM := strconv.Atoi(r.URL.Query().Get("month"))
	return year, month, errY == nil && errM == nil
}

// GetPayslip computes the payslip for one employee and period on demand.
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(r)
	if !ok {
		response.ValidationError(w, map[string]string{
			"year":  "expected integer query parameter",
			"month": "expected integer query parameter",
		})
		return
	}

	result, err := h.engine.ComputePayroll(r.Context(), chi.URLParam(r, "id"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToResultResponse(result))
}

// ListPayslips computes payslips for every salaried employee in the period.
func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(r)
	if !ok {
		response.ValidationError(w, map[string]string{
			"year":  "expected integer query parameter",
			"month": "expected integer query parameter",
		})
		return
	}

	results, err := h.engine.ComputeAll(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]payroll.ResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, payroll.ToResultResponse(result))
	}

	response.Success(w, responses)
}

func (h *payrollHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(r)
	if !ok {
		response.ValidationError(w, map[string]string{
			"year":  "expected integer query parameter",
			"month": "expected integer query parameter",
		})
		return
	}

	status, err := h.engine.GetPayslipStatus(r.Context(), chi.URLParam(r, "id"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToStatusResponse(status))
}

func (h *payrollHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(r)
	if !ok {
		response.ValidationError(w, map[string]string{
			"year":  "expected integer query parameter",
			"month": "expected integer query parameter",
		})
		return
	}

	var req payroll.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.engine.SetPayslipStatus(r.Context(), chi.URLParam(r, "id"), year, month, req.Status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip status updated", payroll.ToStatusResponse(status))
}
