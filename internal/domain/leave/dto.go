package leave

import (
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ApplyRequest struct {
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	Duration   string  `json:"duration"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`
}

func (r ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee id is required"})
	}
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave type is required"})
	}
	if !Duration(r.Duration).Valid() {
		errs = append(errs, validator.ValidationError{Field: "duration", Message: "must be one of hourly, half_day, full_day, multi_day"})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		// Hourly leaves carry a timestamp rather than a bare date.
		start, okStart = validator.IsValidDateTime(r.StartDate)
	}
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "expected YYYY-MM-DD or RFC 3339"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		end, okEnd = validator.IsValidDateTime(r.EndDate)
	}
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "expected YYYY-MM-DD or RFC 3339"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end date must not precede start date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns the parsed start and end. Validate must have passed.
func (r ApplyRequest) Dates() (start, end time.Time) {
	if t, ok := validator.IsValidDate(r.StartDate); ok {
		start = t
	} else if t, ok := validator.IsValidDateTime(r.StartDate); ok {
		start = t
	}
	if t, ok := validator.IsValidDate(r.EndDate); ok {
		end = t
	} else if t, ok := validator.IsValidDateTime(r.EndDate); ok {
		end = t
	}
	return start, end
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	if !RequestStatus(r.Status).Valid() {
		return validator.ValidationErrors{{Field: "status", Message: "must be one of pending, approved, cancelled"}}
	}
	return nil
}

type PolicyRequest struct {
	EmployeeID         string `json:"employee_id"`
	Department         string `json:"department"`
	PaidLeavesPerMonth string `json:"paid_leaves_per_month"`
	YearlyTotal        string `json:"yearly_total"`
}

func (r PolicyRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee id is required"})
	}
	if _, err := decimal.NewFromString(r.PaidLeavesPerMonth); err != nil {
		errs = append(errs, validator.ValidationError{Field: "paid_leaves_per_month", Message: "must be a decimal number"})
	}
	if r.YearlyTotal != "" {
		if _, err := decimal.NewFromString(r.YearlyTotal); err != nil {
			errs = append(errs, validator.ValidationError{Field: "yearly_total", Message: "must be a decimal number"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	LeaveType       string  `json:"leave_type"`
	Duration        string  `json:"duration"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Reason          *string `json:"reason,omitempty"`
	Status          string  `json:"status"`
	DaysTaken       string  `json:"days_taken"`
	SalaryDeduction string  `json:"salary_deduction"`
}

func ToRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		LeaveType:       r.LeaveType,
		Duration:        string(r.Duration),
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		Reason:          r.Reason,
		Status:          string(r.Status),
		DaysTaken:       r.DaysTaken.StringFixed(2),
		SalaryDeduction: r.SalaryDeduction.StringFixed(2),
	}
}
