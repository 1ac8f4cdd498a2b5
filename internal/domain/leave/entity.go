package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCancelled:
		return true
	}
	return false
}

// Duration classifies how a leave's span converts to equivalent days.
type Duration string

const (
	DurationHourly   Duration = "hourly"
	DurationHalfDay  Duration = "half_day"
	DurationFullDay  Duration = "full_day"
	DurationMultiDay Duration = "multi_day"
)

func (d Duration) Valid() bool {
	switch d {
	case DurationHourly, DurationHalfDay, DurationFullDay, DurationMultiDay:
		return true
	}
	return false
}

// Request is a leave application. The payroll engine only reads these;
// approval and cancellation are driven by the leave service.
type Request struct {
	ID         string
	EmployeeID string
	LeaveType  string
	Duration   Duration
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
	Status     RequestStatus

	// DaysTaken is the equivalent-day count recorded at submission time.
	DaysTaken decimal.Decimal

	// SalaryDeduction is the deduction snapshot computed when the request was
	// filed. The payroll engine recomputes from the ledger; this snapshot is
	// what the employee was shown.
	SalaryDeduction decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Policy is the paid-leave allowance for one employee. PaidLeavesPerMonth is
// the engine's monthly allowance; YearlyTotal is informational.
type Policy struct {
	ID                 string
	EmployeeID         string
	Department         string
	PaidLeavesPerMonth decimal.Decimal
	YearlyTotal        decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
