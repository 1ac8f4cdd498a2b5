package task

import "context"

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Task, error)
	Delete(ctx context.Context, id string) error
}
