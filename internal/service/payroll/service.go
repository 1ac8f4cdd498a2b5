package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/attendance"
	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/domain/leave"
	"github.com/clinichr/clinic-hr-backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Engine computes payroll breakdowns. It is a pure read-and-compute layer:
// given a consistent view of the attendance and leave ledgers it always
// produces the same Result. The only write it ever performs is the explicit
// payslip-status upsert, which is a separate operation from computation.
type Engine struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.RequestRepository
	policyRepo     leave.PolicyRepository
	statusRepo     payroll.StatusRepository
	rules          payroll.Rules
}

func NewEngine(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.RequestRepository,
	policyRepo leave.PolicyRepository,
	statusRepo payroll.StatusRepository,
	rules payroll.Rules,
) *Engine {
	return &Engine{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		policyRepo:     policyRepo,
		statusRepo:     statusRepo,
		rules:          rules,
	}
}

func validPeriod(year, month int) bool {
	return year >= 2000 && year <= 2200 && month >= 1 && month <= 12
}

// ComputePayroll derives the full payroll breakdown for one employee and
// period. A missing employee or an unconfigured base salary is an error.
// A missing leave policy is not: the allowance simply defaults to zero.
func (e *Engine) ComputePayroll(ctx context.Context, employeeID string, year, month int) (payroll.Result, error) {
	if !validPeriod(year, month) {
		return payroll.Result{}, payroll.ErrInvalidPeriod
	}

	emp, err := e.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.Result{}, err
	}
	if !emp.MonthlySalary.IsPositive() {
		return payroll.Result{}, employee.ErrNoBaseSalary
	}

	return e.compute(ctx, emp, year, month)
}

// ComputeAll runs the engine for every employee. One employee's failure is
// logged and skipped; it never blanks the whole batch. Employees without a
// configured salary are skipped outright.
func (e *Engine) ComputeAll(ctx context.Context, year, month int) ([]payroll.Result, error) {
	if !validPeriod(year, month) {
		return nil, payroll.ErrInvalidPeriod
	}

	employees, err := e.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	results := make([]payroll.Result, 0, len(employees))
	for _, emp := range employees {
		if !emp.MonthlySalary.IsPositive() {
			continue
		}
		result, err := e.compute(ctx, emp, year, month)
		if err != nil {
			slog.Error("payroll computation failed for employee",
				"employee_id", emp.ID, "year", year, "month", month, "error", err)
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

func (e *Engine) compute(ctx context.Context, emp employee.Employee, year, month int) (payroll.Result, error) {
	period := payroll.Period{Year: year, Month: time.Month(month)}
	loc := emp.Location()
	from, to := period.Bounds(loc)

	events, err := e.attendanceRepo.ListByEmployeePeriod(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("load attendance ledger: %w", err)
	}

	leaves, err := e.leaveRepo.ListByEmployeePeriod(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("load leave ledger: %w", err)
	}

	allowance := decimal.Zero
	policy, err := e.policyRepo.GetByEmployee(ctx, emp.ID)
	switch {
	case err == nil:
		allowance = policy.PaidLeavesPerMonth
	case errors.Is(err, leave.ErrPolicyNotFound):
		// No policy on file: zero paid leaves, not a failure.
	default:
		return payroll.Result{}, fmt.Errorf("load leave policy: %w", err)
	}

	hours := aggregateHours(events, emp.ScheduleIn, loc, e.rules.LateBlockMinutes)
	leaveReport := convertLeaves(leaves, events, emp.MonthlySalary, allowance, period, e.rules, loc)

	incentive := decimal.Zero
	if hours.HoursWorked.GreaterThan(e.rules.ExpectedMonthlyHours) {
		incentive = emp.MonthlySalary.
			Div(e.rules.ExpectedMonthlyHours).
			Mul(hours.HoursWorked)
	}

	blocks := hours.PenaltyBlocks(e.rules.ForgivenLateDays)
	latePenalty := decimal.Zero
	if band := e.rules.Slabs.Band(emp.MonthlySalary); band != nil {
		latePenalty = decimal.NewFromInt(int64(blocks)).Mul(band.LatePenaltyPerBlock)
	}

	// Monetary amounts round to 2 decimals, half away from zero. Every
	// component is clamped non-negative before entering the net figure.
	incentive = clampMoney(incentive)
	leaveDeduction := clampMoney(leaveReport.LeaveDeduction)
	unauthorizedPenalty := clampMoney(leaveReport.UnauthorizedPenalty)
	latePenalty = clampMoney(latePenalty)

	netPay := emp.MonthlySalary.
		Add(incentive).
		Sub(leaveDeduction).
		Sub(unauthorizedPenalty).
		Sub(latePenalty).
		Round(2)
	if netPay.IsNegative() {
		netPay = decimal.Zero
	}

	return payroll.Result{
		EmployeeID:             emp.ID,
		EmployeeName:           emp.FullName,
		Designation:            emp.Role,
		Period:                 period,
		BaseSalary:             emp.MonthlySalary,
		HoursWorked:            hours.HoursWorked.Round(2),
		ExpectedHours:          e.rules.ExpectedMonthlyHours,
		Incentive:              incentive,
		PaidLeavesAllowed:      allowance,
		LeavesUsed:             leaveReport.LeavesUsed,
		UnpaidLeaveDays:        leaveReport.UnpaidLeaveDays,
		LeaveDeduction:         leaveDeduction,
		UnauthorizedLeaveCount: leaveReport.UnauthorizedCount,
		UnauthorizedPenalty:    unauthorizedPenalty,
		LateEventCount:         len(hours.LateDays),
		LatePenaltyBlocks:      blocks,
		LatePenaltyAmount:      latePenalty,
		NetPay:                 netPay,
		Degraded:               leaveReport.Degraded,
	}, nil
}

// SetPayslipStatus records the payslip marker for the period. The upsert is
// atomic on (employee, year, month); repeated calls with the same arguments
// are idempotent.
func (e *Engine) SetPayslipStatus(ctx context.Context, employeeID string, year, month int, status string) (payroll.Status, error) {
	if !validPeriod(year, month) {
		return payroll.Status{}, payroll.ErrInvalidPeriod
	}
	switch status {
	case payroll.StatusPending, payroll.StatusApproved, payroll.StatusPaid:
	default:
		return payroll.Status{}, payroll.ErrInvalidStatus
	}

	if _, err := e.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return payroll.Status{}, err
	}

	return e.statusRepo.UpsertStatus(ctx, payroll.Status{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Status:     status,
	})
}

// GetPayslipStatus returns the stored marker, defaulting to pending when none
// has been recorded yet.
func (e *Engine) GetPayslipStatus(ctx context.Context, employeeID string, year, month int) (payroll.Status, error) {
	if !validPeriod(year, month) {
		return payroll.Status{}, payroll.ErrInvalidPeriod
	}

	status, err := e.statusRepo.GetStatus(ctx, employeeID, year, month)
	if errors.Is(err, payroll.ErrStatusNotFound) {
		return payroll.Status{
			EmployeeID: employeeID,
			Year:       year,
			Month:      month,
			Status:     payroll.StatusPending,
		}, nil
	}
	return status, err
}

func clampMoney(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}
