package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Append inserts a new ledger event. Events are immutable once written.
	Append(ctx context.Context, event Event) (Event, error)

	// ListByEmployeePeriod returns the events for an employee within
	// [from, to), ordered by timestamp ascending.
	ListByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time) ([]Event, error)

	// LastEvent returns the most recent event for the employee, or
	// ErrNoEvents when the ledger is empty.
	LastEvent(ctx context.Context, employeeID string) (Event, error)
}
