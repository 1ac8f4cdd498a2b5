package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinichr/clinic-hr-backend/internal/domain/payroll"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollStatusRepositoryImpl struct {
	db *database.DB
}

func NewPayrollStatusRepository(db *database.DB) payroll.StatusRepository {
	return &payrollStatusRepositoryImpl{db: db}
}

// UpsertStatus implements payroll.StatusRepository. The unique index on
// (employee_id, year, month) makes concurrent writes for the same payslip
// converge on a single row.
func (p *payrollStatusRepositoryImpl) UpsertStatus(ctx context.Context, s payroll.Status) (payroll.Status, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payslip_statuses (employee_id, year, month, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, year, month) DO UPDATE
		SET status = EXCLUDED.status, updated_at = NOW()
		RETURNING employee_id, year, month, status, created_at, updated_at
	`

	var saved payroll.Status
	err := q.QueryRow(ctx, query, s.EmployeeID, s.Year, s.Month, s.Status).Scan(
		&saved.EmployeeID, &saved.Year, &saved.Month, &saved.Status,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return payroll.Status{}, fmt.Errorf("failed to upsert payslip status for employee %s: %w", s.EmployeeID, err)
	}

	return saved, nil
}

// GetStatus implements payroll.StatusRepository.
func (p *payrollStatusRepositoryImpl) GetStatus(ctx context.Context, employeeID string, year, month int) (payroll.Status, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT employee_id, year, month, status, created_at, updated_at
		FROM payslip_statuses
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	var s payroll.Status
	err := q.QueryRow(ctx, query, employeeID, year, month).Scan(
		&s.EmployeeID, &s.Year, &s.Month, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Status{}, payroll.ErrStatusNotFound
		}
		return payroll.Status{}, fmt.Errorf("failed to get payslip status for employee %s: %w", employeeID, err)
	}

	return s, nil
}
