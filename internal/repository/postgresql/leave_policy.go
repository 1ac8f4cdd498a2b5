package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinichr/clinic-hr-backend/internal/domain/leave"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leavePolicyRepositoryImpl struct {
	db *database.DB
}

func NewLeavePolicyRepository(db *database.DB) leave.PolicyRepository {
	return &leavePolicyRepositoryImpl{db: db}
}

const leavePolicyColumns = `
	id, employee_id, department, paid_leaves_per_month, yearly_total, created_at, updated_at
`

func scanLeavePolicy(row pgx.Row) (leave.Policy, error) {
	var p leave.Policy
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Department, &p.PaidLeavesPerMonth,
		&p.YearlyTotal, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Upsert implements leave.PolicyRepository. One policy row per employee.
func (l *leavePolicyRepositoryImpl) Upsert(ctx context.Context, policy leave.Policy) (leave.Policy, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_policies (employee_id, department, paid_leaves_per_month, yearly_total)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id) DO UPDATE
		SET department = EXCLUDED.department,
			paid_leaves_per_month = EXCLUDED.paid_leaves_per_month,
			yearly_total = EXCLUDED.yearly_total,
			updated_at = NOW()
		RETURNING ` + leavePolicyColumns

	p, err := scanLeavePolicy(q.QueryRow(ctx, query,
		policy.EmployeeID, policy.Department, policy.PaidLeavesPerMonth, policy.YearlyTotal,
	))
	if err != nil {
		return leave.Policy{}, fmt.Errorf("failed to upsert leave policy for employee %s: %w", policy.EmployeeID, err)
	}

	return p, nil
}

// GetByEmployee implements leave.PolicyRepository.
func (l *leavePolicyRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) (leave.Policy, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT ` + leavePolicyColumns + ` FROM leave_policies WHERE employee_id = $1`

	p, err := scanLeavePolicy(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Policy{}, leave.ErrPolicyNotFound
		}
		return leave.Policy{}, fmt.Errorf("failed to get leave policy for employee %s: %w", employeeID, err)
	}

	return p, nil
}

// List implements leave.PolicyRepository.
func (l *leavePolicyRepositoryImpl) List(ctx context.Context) ([]leave.Policy, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT ` + leavePolicyColumns + ` FROM leave_policies ORDER BY created_at`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave policies: %w", err)
	}
	defer rows.Close()

	var policies []leave.Policy
	for rows.Next() {
		p, err := scanLeavePolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return policies, nil
}

// Delete implements leave.PolicyRepository.
func (l *leavePolicyRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, l.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_policies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave policy %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrPolicyNotFound
	}

	return nil
}
