package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/domain/leave"
	domainpayroll "github.com/clinichr/clinic-hr-backend/internal/domain/payroll"
	"github.com/clinichr/clinic-hr-backend/internal/service/payroll"
	"github.com/shopspring/decimal"
)

// DeductionPreview is the projected payroll impact of a leave request shown
// to the employee before they submit. The payroll engine recomputes from the
// ledger at period close; this figure is advisory.
type DeductionPreview struct {
	EquivalentDays    decimal.Decimal
	PaidLeavesAllowed decimal.Decimal
	LeavesUsedSoFar   decimal.Decimal
	ProjectedUnpaid   decimal.Decimal
	SalaryDeduction   decimal.Decimal
}

// Service drives the leave request workflow: apply, approve, cancel.
type Service struct {
	leaveRepo    leave.RequestRepository
	policyRepo   leave.PolicyRepository
	employeeRepo employee.EmployeeRepository
	rules        domainpayroll.Rules
}

func NewService(
	leaveRepo leave.RequestRepository,
	policyRepo leave.PolicyRepository,
	employeeRepo employee.EmployeeRepository,
	rules domainpayroll.Rules,
) *Service {
	return &Service{
		leaveRepo:    leaveRepo,
		policyRepo:   policyRepo,
		employeeRepo: employeeRepo,
		rules:        rules,
	}
}

// Apply files a new leave request in pending state. The equivalent-day count
// and the salary-deduction preview are snapshotted onto the request so the
// employee sees the same numbers later that they saw when filing.
func (s *Service) Apply(ctx context.Context, req leave.ApplyRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.Request{}, err
	}

	start, end := req.Dates()
	request := leave.Request{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		Duration:   leave.Duration(req.Duration),
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	}

	preview, err := s.preview(ctx, emp, request)
	if err != nil {
		return leave.Request{}, err
	}
	request.DaysTaken = preview.EquivalentDays
	request.SalaryDeduction = preview.SalaryDeduction

	return s.leaveRepo.Create(ctx, request)
}

// PreviewDeduction computes the projected deduction for a hypothetical
// request without persisting anything.
func (s *Service) PreviewDeduction(ctx context.Context, req leave.ApplyRequest) (DeductionPreview, error) {
	if err := req.Validate(); err != nil {
		return DeductionPreview{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return DeductionPreview{}, err
	}

	start, end := req.Dates()
	return s.preview(ctx, emp, leave.Request{
		EmployeeID: req.EmployeeID,
		Duration:   leave.Duration(req.Duration),
		StartDate:  start,
		EndDate:    end,
	})
}

// preview projects the request against the allowance already consumed in the
// month the leave starts in. Only the newly unpaid portion is charged.
func (s *Service) preview(ctx context.Context, emp employee.Employee, request leave.Request) (DeductionPreview, error) {
	eq, err := payroll.EquivalentDays(request, s.rules.WorkingHoursPerDay)
	if err != nil {
		return DeductionPreview{}, err
	}

	allowance := decimal.Zero
	policy, err := s.policyRepo.GetByEmployee(ctx, emp.ID)
	switch {
	case err == nil:
		allowance = policy.PaidLeavesPerMonth
	case errors.Is(err, leave.ErrPolicyNotFound):
		// No policy on file: every day is unpaid.
	default:
		return DeductionPreview{}, fmt.Errorf("load leave policy: %w", err)
	}

	loc := emp.Location()
	period := domainpayroll.Period{
		Year:  request.StartDate.In(loc).Year(),
		Month: request.StartDate.In(loc).Month(),
	}
	from, to := period.Bounds(loc)

	existing, err := s.leaveRepo.ListByEmployeePeriod(ctx, emp.ID, from, to)
	if err != nil {
		return DeductionPreview{}, fmt.Errorf("load existing leaves: %w", err)
	}

	used := decimal.Zero
	for _, r := range existing {
		if r.Status == leave.StatusCancelled {
			continue
		}
		days, err := payroll.EquivalentDays(r, s.rules.WorkingHoursPerDay)
		if err != nil {
			continue // malformed historical rows never block a new request
		}
		used = used.Add(days)
	}

	unpaidBefore := used.Sub(allowance)
	if unpaidBefore.IsNegative() {
		unpaidBefore = decimal.Zero
	}
	unpaidAfter := used.Add(eq).Sub(allowance)
	if unpaidAfter.IsNegative() {
		unpaidAfter = decimal.Zero
	}

	deduction := decimal.Zero
	if band := s.rules.Slabs.Band(emp.MonthlySalary); band != nil {
		deduction = unpaidAfter.Sub(unpaidBefore).Mul(band.LeaveDeductionPerDay).Round(2)
	}

	return DeductionPreview{
		EquivalentDays:    eq,
		PaidLeavesAllowed: allowance,
		LeavesUsedSoFar:   used,
		ProjectedUnpaid:   unpaidAfter,
		SalaryDeduction:   deduction,
	}, nil
}

// Get returns one leave request.
func (s *Service) Get(ctx context.Context, id string) (leave.Request, error) {
	return s.leaveRepo.GetByID(ctx, id)
}

// ListByEmployee returns the employee's leave history, newest first.
func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.leaveRepo.ListByEmployee(ctx, employeeID)
}

// UpdateStatus transitions a request. Pending requests may be approved or
// cancelled; approved requests may still be cancelled (the payroll engine
// then treats recorded absences in the window as unauthorized). Any other
// transition is rejected.
func (s *Service) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus) (leave.Request, error) {
	if !status.Valid() {
		return leave.Request{}, leave.ErrInvalidStatus
	}

	current, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.Request{}, err
	}

	switch {
	case current.Status == status:
		return current, nil // idempotent
	case current.Status == leave.StatusCancelled:
		return leave.Request{}, leave.ErrAlreadyProcessed
	case status == leave.StatusPending:
		return leave.Request{}, leave.ErrAlreadyProcessed
	}

	return s.leaveRepo.UpdateStatus(ctx, id, status)
}

// Delete removes a leave request outright. Intended for records filed in
// error; cancellation is the normal path.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.leaveRepo.Delete(ctx, id)
}

// ===== policies =====

// UpsertPolicy creates or replaces the employee's paid-leave allowance.
func (s *Service) UpsertPolicy(ctx context.Context, req leave.PolicyRequest) (leave.Policy, error) {
	if err := req.Validate(); err != nil {
		return leave.Policy{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.Policy{}, err
	}

	perMonth, _ := decimal.NewFromString(req.PaidLeavesPerMonth)
	yearly := decimal.Zero
	if req.YearlyTotal != "" {
		yearly, _ = decimal.NewFromString(req.YearlyTotal)
	}

	return s.policyRepo.Upsert(ctx, leave.Policy{
		EmployeeID:         req.EmployeeID,
		Department:         req.Department,
		PaidLeavesPerMonth: perMonth,
		YearlyTotal:        yearly,
	})
}

// GetPolicy returns the employee's allowance.
func (s *Service) GetPolicy(ctx context.Context, employeeID string) (leave.Policy, error) {
	return s.policyRepo.GetByEmployee(ctx, employeeID)
}

// ListPolicies returns every allowance on file.
func (s *Service) ListPolicies(ctx context.Context) ([]leave.Policy, error) {
	return s.policyRepo.List(ctx)
}

// DeletePolicy removes an allowance; affected employees fall back to zero
// paid leaves.
func (s *Service) DeletePolicy(ctx context.Context, id string) error {
	return s.policyRepo.Delete(ctx, id)
}
