package payroll

import "context"

// StatusRepository persists the optional payslip status marker. UpsertStatus
// must be atomic on (employee_id, year, month) so concurrent computations for
// the same period never produce duplicate rows.
type StatusRepository interface {
	UpsertStatus(ctx context.Context, s Status) (Status, error)
	GetStatus(ctx context.Context, employeeID string, year, month int) (Status, error)
}
