package notification

import "context"

type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Notification, error)
	Delete(ctx context.Context, id string) error
}

// Notifier pushes a message to the employee's device. Delivery transport
// (Expo push, WebSocket) lives outside this module.
type Notifier interface {
	Push(ctx context.Context, pushToken, title, message string) error
}
