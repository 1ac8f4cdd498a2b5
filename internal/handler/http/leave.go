package http

import (
	"encoding/json"
	"net/http"

	"github.com/clinichr/clinic-hr-backend/internal/domain/leave"
	"github.com/clinichr/clinic-hr-backend/internal/handler/http/response"
	leaveservice "github.com/clinichr/clinic-hr-backend/internal/service/leave"
	"github.com/go-chi/chi/v5"
)

// LeaveHandler defines the leave handler interface
type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	PreviewDeduction(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	UpsertPolicy(w http.ResponseWriter, r *http.Request)
	GetPolicy(w http.ResponseWriter, r *http.Request)
	ListPolicies(w http.ResponseWriter, r *http.Request)
	DeletePolicy(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService *leaveservice.Service
}

func NewLeaveHandler(leaveService *leaveservice.Service) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request filed", leave.ToRequestResponse(created))
}

type deductionPreviewResponse struct {
	EquivalentDays    string `json:"equivalent_days"`
	PaidLeavesAllowed string `json:"paid_leaves_allowed"`
	LeavesUsedSoFar   string `json:"leaves_used_so_far"`
	ProjectedUnpaid   string `json:"projected_unpaid"`
	SalaryDeduction   string `json:"salary_deduction"`
}

func (h *leaveHandlerImpl) PreviewDeduction(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	preview, err := h.leaveService.PreviewDeduction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, deductionPreviewResponse{
		EquivalentDays:    preview.EquivalentDays.StringFixed(2),
		PaidLeavesAllowed: preview.PaidLeavesAllowed.StringFixed(2),
		LeavesUsedSoFar:   preview.LeavesUsedSoFar.StringFixed(2),
		ProjectedUnpaid:   preview.ProjectedUnpaid.StringFixed(2),
		SalaryDeduction:   preview.SalaryDeduction.StringFixed(2),
	})
}

func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.leaveService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToRequestResponse(req))
}

func (h *leaveHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, leave.ToRequestResponse(req))
	}

	response.Success(w, responses)
}

func (h *leaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.leaveService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), leave.RequestStatus(req.Status))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave status updated", leave.ToRequestResponse(updated))
}

func (h *leaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.leaveService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted", nil)
}

// ===== policies =====

type policyResponse struct {
	ID                 string `json:"id"`
	EmployeeID         string `json:"employee_id"`
	Department         string `json:"department"`
	PaidLeavesPerMonth string `json:"paid_leaves_per_month"`
	YearlyTotal        string `json:"yearly_total"`
}

func toPolicyResponse(p leave.Policy) policyResponse {
	return policyResponse{
		ID:                 p.ID,
		EmployeeID:         p.EmployeeID,
		Department:         p.Department,
		PaidLeavesPerMonth: p.PaidLeavesPerMonth.StringFixed(2),
		YearlyTotal:        p.YearlyTotal.StringFixed(2),
	}
}

func (h *leaveHandlerImpl) UpsertPolicy(w http.ResponseWriter, r *http.Request) {
	var req leave.PolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	policy, err := h.leaveService.UpsertPolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave policy saved", toPolicyResponse(policy))
}

func (h *leaveHandlerImpl) GetPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.leaveService.GetPolicy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toPolicyResponse(policy))
}

func (h *leaveHandlerImpl) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.leaveService.ListPolicies(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]policyResponse, 0, len(policies))
	for _, p := range policies {
		responses = append(responses, toPolicyResponse(p))
	}

	response.Success(w, responses)
}

func (h *leaveHandlerImpl) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	if err := h.leaveService.DeletePolicy(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave policy deleted", nil)
}
