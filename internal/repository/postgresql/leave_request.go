package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/leave"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	id, employee_id, leave_type, duration, start_date, end_date, reason,
	status, days_taken, salary_deduction, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.LeaveType, &req.Duration, &req.StartDate,
		&req.EndDate, &req.Reason, &req.Status, &req.DaysTaken,
		&req.SalaryDeduction, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type, duration, start_date, end_date, reason,
			status, days_taken, salary_deduction
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		req.EmployeeID, req.LeaveType, req.Duration, req.StartDate, req.EndDate,
		req.Reason, req.Status, req.DaysTaken, req.SalaryDeduction,
	))
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request with id %s: %w", id, err)
	}

	return req, nil
}

// ListByEmployee implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY start_date DESC
	`

	return l.queryRequests(ctx, q, query, employeeID)
}

// ListByEmployeePeriod implements leave.RequestRepository. Cancelled rows are
// returned too; the payroll engine derives unauthorized absences from them.
func (l *leaveRequestRepositoryImpl) ListByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND start_date >= $2 AND start_date < $3
		ORDER BY start_date ASC
	`

	return l.queryRequests(ctx, q, query, employeeID, from, to)
}

func (l *leaveRequestRepositoryImpl) queryRequests(ctx context.Context, q database.Querier, query string, args ...any) ([]leave.Request, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// UpdateStatus implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + leaveRequestColumns

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to update leave request %s: %w", id, err)
	}

	return req, nil
}

// Delete implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, l.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}
