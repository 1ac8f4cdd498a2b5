package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, full_name, email, password_hash, department, role, date_of_birth,
	monthly_salary, schedule_in, schedule_out, timezone, push_token, image_url,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var scheduleIn, scheduleOut *string
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.PasswordHash, &emp.Department,
		&emp.Role, &emp.DateOfBirth, &emp.MonthlySalary, &scheduleIn, &scheduleOut,
		&emp.Timezone, &emp.PushToken, &emp.ImageURL, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.ScheduleIn, err = parseSchedule(scheduleIn); err != nil {
		return employee.Employee{}, fmt.Errorf("employee %s schedule_in: %w", emp.ID, err)
	}
	if emp.ScheduleOut, err = parseSchedule(scheduleOut); err != nil {
		return employee.Employee{}, fmt.Errorf("employee %s schedule_out: %w", emp.ID, err)
	}
	return emp, nil
}

func parseSchedule(s *string) (*employee.TimeOfDay, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := employee.ParseTimeOfDay(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scheduleString(t *employee.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			full_name, email, password_hash, department, role, date_of_birth,
			monthly_salary, schedule_in, schedule_out, timezone, push_token, image_url
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12
		)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.FullName, newEmployee.Email, newEmployee.PasswordHash,
		newEmployee.Department, newEmployee.Role, newEmployee.DateOfBirth,
		newEmployee.MonthlySalary, scheduleString(newEmployee.ScheduleIn),
		scheduleString(newEmployee.ScheduleOut), newEmployee.Timezone,
		newEmployee.PushToken, newEmployee.ImageURL,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with email %s: %w", email, err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY full_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// UpdateSchedule implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateSchedule(ctx context.Context, id string, in, out *employee.TimeOfDay) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET schedule_in = $1, schedule_out = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, scheduleString(in), scheduleString(out), id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update schedule for employee with id %s: %w", id, err)
	}

	return nil
}

// UpdatePushToken implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdatePushToken(ctx context.Context, id string, token string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET push_token = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, token, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update push token for employee with id %s: %w", id, err)
	}

	return nil
}
