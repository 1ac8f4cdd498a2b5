package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	UpdateSchedule(ctx context.Context, id string, in, out *TimeOfDay) error
	UpdatePushToken(ctx context.Context, id string, token string) error
}
