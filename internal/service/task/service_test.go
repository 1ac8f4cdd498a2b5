package task

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/domain/notification"
	"github.com/clinichr/clinic-hr-backend/internal/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaskRepo struct {
	tasks  []task.Task
	nextID int
}

func (f *fakeTaskRepo) Create(_ context.Context, t task.Task) (task.Task, error) {
	f.nextID++
	t.ID = fmt.Sprintf("task-%d", f.nextID)
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeTaskRepo) ListByEmployee(_ context.Context, employeeID string) ([]task.Task, error) {
	var out []task.Task
	for _, t := range f.tasks {
		if t.AssignedTo == employeeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return task.ErrTaskNotFound
}

type fakeNotificationRepo struct {
	records []notification.Notification
	err     error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	if f.err != nil {
		return notification.Notification{}, f.err
	}
	n.ID = fmt.Sprintf("notif-%d", len(f.records)+1)
	f.records = append(f.records, n)
	return n, nil
}

func (f *fakeNotificationRepo) ListByEmployee(_ context.Context, employeeID string) ([]notification.Notification, error) {
	var out []notification.Notification
	for _, n := range f.records {
		if n.EmployeeID == employeeID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) { return nil, nil }

func (f *fakeEmployeeRepo) UpdateSchedule(_ context.Context, _ string, _, _ *employee.TimeOfDay) error {
	return nil
}

func (f *fakeEmployeeRepo) UpdatePushToken(_ context.Context, _ string, _ string) error { return nil }

type fakeNotifier struct {
	pushes []string
	err    error
}

func (f *fakeNotifier) Push(_ context.Context, token, _, message string) error {
	if f.err != nil {
		return f.err
	}
	f.pushes = append(f.pushes, token+": "+message)
	return nil
}

type fixture struct {
	svc       *Service
	tasks     *fakeTaskRepo
	notifs    *fakeNotificationRepo
	notifier  *fakeNotifier
	txBegun   int
	txAborted int
}

func newFixture(pushToken *string) *fixture {
	f := &fixture{
		tasks:    &fakeTaskRepo{},
		notifs:   &fakeNotificationRepo{},
		notifier: &fakeNotifier{},
	}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", FullName: "Asha Rao", PushToken: pushToken},
	}}
	f.svc = &Service{
		taskRepo:         f.tasks,
		notificationRepo: f.notifs,
		employeeRepo:     employees,
		notifier:         f.notifier,
		transact: func(ctx context.Context, fn func(ctx context.Context) error) error {
			f.txBegun++
			if err := fn(ctx); err != nil {
				f.txAborted++
				f.tasks.tasks = nil
				f.notifs.records = nil
				return err
			}
			return nil
		},
	}
	return f
}

func createRequest() task.CreateRequest {
	return task.CreateRequest{
		Title:      "Restock bandages",
		AssignedTo: "emp-1",
		Priority:   "high",
		DueDate:    "2026-09-01",
	}
}

func TestCreate_WritesTaskAndNotificationInOneTransaction(t *testing.T) {
	f := newFixture(nil)

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, f.txBegun)
	assert.NotEmpty(t, created.ID)
	require.Len(t, f.notifs.records, 1)
	assert.Equal(t, "emp-1", f.notifs.records[0].EmployeeID)
	assert.Contains(t, f.notifs.records[0].Message, "Restock bandages")
}

func TestCreate_NotificationFailureRollsBackTask(t *testing.T) {
	f := newFixture(nil)
	f.notifs.err = errors.New("insert failed")

	_, err := f.svc.Create(context.Background(), createRequest())
	require.Error(t, err)

	assert.Equal(t, 1, f.txAborted)
	assert.Empty(t, f.tasks.tasks, "task write must not survive the failed transaction")
	assert.Empty(t, f.notifier.pushes, "no push for a task that was never created")
}

func TestCreate_PushesWhenTokenOnFile(t *testing.T) {
	token := "ExponentPushToken[abc123]"
	f := newFixture(&token)

	_, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.Len(t, f.notifier.pushes, 1)
	assert.Contains(t, f.notifier.pushes[0], token)
}

func TestCreate_PushFailureIsNotSurfaced(t *testing.T) {
	token := "ExponentPushToken[abc123]"
	f := newFixture(&token)
	f.notifier.err = errors.New("expo unreachable")

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestCreate_UnknownAssignee(t *testing.T) {
	f := newFixture(nil)

	req := createRequest()
	req.AssignedTo = "emp-404"
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Equal(t, 0, f.txBegun)
}

func TestCreate_ValidationFailures(t *testing.T) {
	f := newFixture(nil)

	cases := map[string]func(*task.CreateRequest){
		"missing title":    func(r *task.CreateRequest) { r.Title = "" },
		"bad priority":     func(r *task.CreateRequest) { r.Priority = "urgent" },
		"malformed due":    func(r *task.CreateRequest) { r.DueDate = "next tuesday" },
		"missing assignee": func(r *task.CreateRequest) { r.AssignedTo = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := createRequest()
			mutate(&req)
			_, err := f.svc.Create(context.Background(), req)
			assert.Error(t, err)
		})
	}
}

func TestListByEmployee(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	tasks, err := f.svc.ListByEmployee(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	_, err = f.svc.ListByEmployee(context.Background(), "emp-404")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture(nil)

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), created.ID), task.ErrTaskNotFound)
}
