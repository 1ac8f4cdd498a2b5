package postgresql

import (
	"context"
	"fmt"

	"github.com/clinichr/clinic-hr-backend/internal/domain/task"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskColumns = `id, title, description, assigned_to, priority, due_date, created_at`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.Priority, &t.DueDate, &t.CreatedAt)
	return t, err
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (title, description, assigned_to, priority, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + taskColumns

	created, err := scanTask(q.QueryRow(ctx, query, t.Title, t.Description, t.AssignedTo, t.Priority, t.DueDate))
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return created, nil
}

// ListByEmployee implements task.TaskRepository.
func (r *taskRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to = $1 ORDER BY due_date ASC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// Delete implements task.TaskRepository.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}
