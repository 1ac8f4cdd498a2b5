package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is the payroll accounting window: one calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// Bounds returns [start, end) of the period in the given location.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// Contains reports whether t falls inside the period, compared in t's own
// location so that month attribution follows the employee's wall clock.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// SlabBand maps a base-salary range to the three penalty rates used by the
// engine. Max nil means the band is open-ended.
type SlabBand struct {
	Min decimal.Decimal
	Max *decimal.Decimal

	LeaveDeductionPerDay decimal.Decimal
	UnauthorizedPerLeave decimal.Decimal
	LatePenaltyPerBlock  decimal.Decimal
}

// SlabTable is an ordered list of bands. Salaries below every band resolve to
// zero rates: penalties simply do not apply.
type SlabTable []SlabBand

// Band returns the band covering the salary, or nil when none matches.
func (t SlabTable) Band(salary decimal.Decimal) *SlabBand {
	for i := range t {
		b := &t[i]
		if salary.LessThan(b.Min) {
			continue
		}
		if b.Max != nil && salary.GreaterThan(*b.Max) {
			continue
		}
		return b
	}
	return nil
}

// Rules carries every tunable the engine consumes. Values mirror the clinic's
// operating policy and are loaded from configuration, not hardcoded.
type Rules struct {
	// ExpectedMonthlyHours is the hours threshold above which incentive pay
	// starts (≈ 9h × 30d).
	ExpectedMonthlyHours decimal.Decimal

	// WorkingHoursPerDay converts hourly leaves into equivalent days.
	WorkingHoursPerDay decimal.Decimal

	// LateBlockMinutes is the tardiness quantum.
	LateBlockMinutes int

	// ForgivenLateDays is the per-period grace count; these earliest late
	// days contribute no penalty blocks.
	ForgivenLateDays int

	Slabs SlabTable
}

// DefaultRules returns the rule set observed in production. Deployments
// override through configuration.
func DefaultRules() Rules {
	max1 := decimal.NewFromInt(7500)
	max2 := decimal.NewFromInt(9500)
	return Rules{
		ExpectedMonthlyHours: decimal.NewFromInt(270),
		WorkingHoursPerDay:   decimal.NewFromInt(10),
		LateBlockMinutes:     5,
		ForgivenLateDays:     3,
		Slabs: SlabTable{
			{
				Min:                  decimal.NewFromInt(4500),
				Max:                  &max1,
				LeaveDeductionPerDay: decimal.NewFromInt(700),
				UnauthorizedPerLeave: decimal.NewFromInt(35),
				LatePenaltyPerBlock:  decimal.NewFromInt(25),
			},
			{
				Min:                  decimal.NewFromInt(7501),
				Max:                  &max2,
				LeaveDeductionPerDay: decimal.NewFromInt(1400),
				UnauthorizedPerLeave: decimal.NewFromInt(70),
				LatePenaltyPerBlock:  decimal.NewFromInt(50),
			},
			{
				Min:                  decimal.NewFromInt(9501),
				LeaveDeductionPerDay: decimal.NewFromInt(2800),
				UnauthorizedPerLeave: decimal.NewFromInt(105),
				LatePenaltyPerBlock:  decimal.NewFromInt(75),
			},
		},
	}
}

// Degraded categories flag which penalty bucket was skipped because of bad
// ledger data. A result carrying any of these is complete for every other
// bucket but must not be presented as a full breakdown.
const (
	DegradedLeaveDeduction      = "leave_deduction"
	DegradedUnauthorizedPenalty = "unauthorized_penalty"
	DegradedLatePenalty         = "late_penalty"
)

// Result is the full payroll breakdown for one employee and period. Every
// intermediate is retained so presentation and audit can show the derivation.
type Result struct {
	EmployeeID   string
	EmployeeName string
	Designation  string
	Period       Period

	BaseSalary    decimal.Decimal
	HoursWorked   decimal.Decimal
	ExpectedHours decimal.Decimal
	Incentive     decimal.Decimal

	PaidLeavesAllowed decimal.Decimal
	LeavesUsed        decimal.Decimal
	UnpaidLeaveDays   decimal.Decimal
	LeaveDeduction    decimal.Decimal

	UnauthorizedLeaveCount decimal.Decimal
	UnauthorizedPenalty    decimal.Decimal

	LateEventCount    int
	LatePenaltyBlocks int
	LatePenaltyAmount decimal.Decimal

	NetPay decimal.Decimal

	// Degraded lists penalty categories skipped because of malformed input
	// records. Empty means the breakdown is complete.
	Degraded []string
}

// Status is the optional payslip marker persisted per (employee, period).
type Status struct {
	EmployeeID string
	Year       int
	Month      int
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusPaid     = "paid"
)
