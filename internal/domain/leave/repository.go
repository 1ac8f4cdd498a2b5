package leave

import (
	"context"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)

	// ListByEmployeePeriod returns every request (cancelled included) whose
	// start date falls within [from, to). The payroll engine needs cancelled
	// rows to derive unauthorized absences.
	ListByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time) ([]Request, error)

	UpdateStatus(ctx context.Context, id string, status RequestStatus) (Request, error)
	Delete(ctx context.Context, id string) error
}

type PolicyRepository interface {
	Upsert(ctx context.Context, policy Policy) (Policy, error)
	GetByEmployee(ctx context.Context, employeeID string) (Policy, error)
	List(ctx context.Context) ([]Policy, error)
	Delete(ctx context.Context, id string) error
}
