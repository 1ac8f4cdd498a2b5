package postgresql

import (
	"context"
	"fmt"

	"github.com/clinichr/clinic-hr-backend/internal/domain/notification"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

const notificationColumns = `id, employee_id, title, message, created_at`

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(&n.ID, &n.EmployeeID, &n.Title, &n.Message, &n.CreatedAt)
	return n, err
}

// Create implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (employee_id, title, message)
		VALUES ($1, $2, $3)
		RETURNING ` + notificationColumns

	created, err := scanNotification(q.QueryRow(ctx, query, n.EmployeeID, n.Title, n.Message))
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return created, nil
}

// ListByEmployee implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE employee_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// Delete implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}
