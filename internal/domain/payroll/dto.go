package payroll

import (
	"fmt"

	"github.com/clinichr/clinic-hr-backend/internal/pkg/validator"
)

type SetStatusRequest struct {
	Status string `json:"status"`
}

func (r SetStatusRequest) Validate() error {
	switch r.Status {
	case StatusPending, StatusApproved, StatusPaid:
		return nil
	}
	return validator.ValidationErrors{{Field: "status", Message: "must be one of pending, approved, paid"}}
}

type ResultResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Designation  string `json:"designation"`
	Period       string `json:"period"`

	BaseSalary    string `json:"base_salary"`
	HoursWorked   string `json:"hours_worked"`
	ExpectedHours string `json:"expected_hours"`
	Incentive     string `json:"incentive"`

	PaidLeavesAllowed string `json:"paid_leaves_allowed"`
	LeavesUsed        string `json:"leaves_used"`
	UnpaidLeaveDays   string `json:"unpaid_leave_days"`
	LeaveDeduction    string `json:"leave_deduction"`

	UnauthorizedLeaveCount string `json:"unauthorized_leave_count"`
	UnauthorizedPenalty    string `json:"unauthorized_penalty"`

	LateEventCount    int    `json:"late_event_count"`
	LatePenaltyBlocks int    `json:"late_penalty_blocks"`
	LatePenaltyAmount string `json:"late_penalty_amount"`

	NetPay string `json:"net_pay"`

	Degraded []string `json:"degraded,omitempty"`
}

func ToResultResponse(r Result) ResultResponse {
	return ResultResponse{
		EmployeeID:             r.EmployeeID,
		EmployeeName:           r.EmployeeName,
		Designation:            r.Designation,
		Period:                 fmt.Sprintf("%04d-%02d", r.Period.Year, int(r.Period.Month)),
		BaseSalary:             r.BaseSalary.StringFixed(2),
		HoursWorked:            r.HoursWorked.StringFixed(2),
		ExpectedHours:          r.ExpectedHours.StringFixed(2),
		Incentive:              r.Incentive.StringFixed(2),
		PaidLeavesAllowed:      r.PaidLeavesAllowed.StringFixed(2),
		LeavesUsed:             r.LeavesUsed.StringFixed(2),
		UnpaidLeaveDays:        r.UnpaidLeaveDays.StringFixed(2),
		LeaveDeduction:         r.LeaveDeduction.StringFixed(2),
		UnauthorizedLeaveCount: r.UnauthorizedLeaveCount.StringFixed(2),
		UnauthorizedPenalty:    r.UnauthorizedPenalty.StringFixed(2),
		LateEventCount:         r.LateEventCount,
		LatePenaltyBlocks:      r.LatePenaltyBlocks,
		LatePenaltyAmount:      r.LatePenaltyAmount.StringFixed(2),
		NetPay:                 r.NetPay.StringFixed(2),
		Degraded:               r.Degraded,
	}
}

type StatusResponse struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Status     string `json:"status"`
}

func ToStatusResponse(s Status) StatusResponse {
	return StatusResponse{
		EmployeeID: s.EmployeeID,
		Year:       s.Year,
		Month:      s.Month,
		Status:     s.Status,
	}
}
