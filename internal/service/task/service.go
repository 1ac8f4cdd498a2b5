package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/domain/notification"
	"github.com/clinichr/clinic-hr-backend/internal/domain/task"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/database"
	"github.com/clinichr/clinic-hr-backend/internal/repository/postgresql"
)

// Service assigns tasks and notifies the assignee.
type Service struct {
	taskRepo         task.TaskRepository
	notificationRepo notification.NotificationRepository
	employeeRepo     employee.EmployeeRepository
	notifier         notification.Notifier
	transact         func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewService(
	db *database.DB,
	taskRepo task.TaskRepository,
	notificationRepo notification.NotificationRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Notifier,
) *Service {
	return &Service{
		taskRepo:         taskRepo,
		notificationRepo: notificationRepo,
		employeeRepo:     employeeRepo,
		notifier:         notifier,
		transact: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// Create stores the task and its in-app notification in one transaction, then
// pushes to the assignee's device when a token is on file. Push failures are
// logged, never surfaced: the task itself was created.
func (s *Service) Create(ctx context.Context, req task.CreateRequest) (task.Task, error) {
	if err := req.Validate(); err != nil {
		return task.Task{}, err
	}

	assignee, err := s.employeeRepo.GetByID(ctx, req.AssignedTo)
	if err != nil {
		return task.Task{}, err
	}

	dueDate, _ := time.Parse("2006-01-02", req.DueDate)

	var created task.Task
	var message string
	err = s.transact(ctx, func(txCtx context.Context) error {
		created, err = s.taskRepo.Create(txCtx, task.Task{
			Title:       req.Title,
			Description: req.Description,
			AssignedTo:  req.AssignedTo,
			Priority:    task.Priority(req.Priority),
			DueDate:     dueDate,
		})
		if err != nil {
			return err
		}

		message = fmt.Sprintf("New task assigned: %s (due %s)", created.Title, created.DueDate.Format("2006-01-02"))
		_, err = s.notificationRepo.Create(txCtx, notification.Notification{
			EmployeeID: assignee.ID,
			Title:      "Task assigned",
			Message:    message,
		})
		return err
	})
	if err != nil {
		return task.Task{}, err
	}

	if s.notifier != nil && assignee.PushToken != nil {
		if err := s.notifier.Push(ctx, *assignee.PushToken, "Task assigned", message); err != nil {
			slog.Error("failed to push task notification", "task_id", created.ID, "error", err)
		}
	}

	return created, nil
}

// ListByEmployee returns the employee's tasks ordered by due date.
func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]task.Task, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByEmployee(ctx, employeeID)
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.taskRepo.Delete(ctx, id)
}
