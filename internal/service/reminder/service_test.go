package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/attendance"
	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees = append(f.employees, e)
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) UpdateSchedule(_ context.Context, _ string, _, _ *employee.TimeOfDay) error {
	return nil
}
func (f *fakeEmployeeRepo) UpdatePushToken(_ context.Context, _ string, _ string) error { return nil }

type fakeAttendanceRepo struct {
	events []attendance.Event
}

func (f *fakeAttendanceRepo) Append(_ context.Context, ev attendance.Event) (attendance.Event, error) {
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeAttendanceRepo) ListByEmployeePeriod(_ context.Context, _ string, _, _ time.Time) ([]attendance.Event, error) {
	return f.events, nil
}

func (f *fakeAttendanceRepo) LastEvent(_ context.Context, employeeID string) (attendance.Event, error) {
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].EmployeeID == employeeID {
			return f.events[i], nil
		}
	}
	return attendance.Event{}, attendance.ErrNoEvents
}

type fakeNotificationRepo struct {
	notifications []notification.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	f.notifications = append(f.notifications, n)
	return n, nil
}

func (f *fakeNotificationRepo) ListByEmployee(_ context.Context, _ string) ([]notification.Notification, error) {
	return f.notifications, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeNotifier struct {
	pushes []string
}

func (f *fakeNotifier) Push(_ context.Context, pushToken, _, _ string) error {
	f.pushes = append(f.pushes, pushToken)
	return nil
}

func token(s string) *string { return &s }

func newTestService(employees ...employee.Employee) (*Service, *fakeAttendanceRepo, *fakeNotificationRepo, *fakeNotifier) {
	attendanceRepo := &fakeAttendanceRepo{}
	notificationRepo := &fakeNotificationRepo{}
	notifier := &fakeNotifier{}
	svc := NewService(&fakeEmployeeRepo{employees: employees}, attendanceRepo, notificationRepo, notifier)
	return svc, attendanceRepo, notificationRepo, notifier
}

func TestSweep_RemindsInsideLeadWindow(t *testing.T) {
	sched := employee.TimeOfDay{Hour: 9, Minute: 0}
	svc, _, notifications, notifier := newTestService(employee.Employee{
		ID:         "emp-1",
		FullName:   "Asha Rao",
		ScheduleIn: &sched,
		PushToken:  token("ExponentPushToken[abc]"),
	})

	// Ten minutes before shift start, UTC employee.
	svc.now = func() time.Time {
		return time.Date(2026, 6, 1, 8, 50, 0, 0, time.UTC)
	}

	require.NoError(t, svc.Sweep(context.Background()))
	assert.Len(t, notifications.notifications, 1)
	assert.Len(t, notifier.pushes, 1)
}

func TestSweep_AtMostOncePerDay(t *testing.T) {
	sched := employee.TimeOfDay{Hour: 9, Minute: 0}
	svc, _, notifications, _ := newTestService(employee.Employee{
		ID:         "emp-1",
		ScheduleIn: &sched,
		PushToken:  token("ExponentPushToken[abc]"),
	})
	svc.now = func() time.Time {
		return time.Date(2026, 6, 1, 8, 50, 0, 0, time.UTC)
	}

	require.NoError(t, svc.Sweep(context.Background()))
	require.NoError(t, svc.Sweep(context.Background()))
	assert.Len(t, notifications.notifications, 1)
}

func TestSweep_SkipsOutsideWindowAndUnscheduled(t *testing.T) {
	sched := employee.TimeOfDay{Hour: 9, Minute: 0}
	svc, _, notifications, _ := newTestService(
		employee.Employee{ID: "no-schedule", PushToken: token("t1")},
		employee.Employee{ID: "no-token", ScheduleIn: &sched},
		employee.Employee{ID: "too-early", ScheduleIn: &sched, PushToken: token("t2")},
	)

	// An hour before shift start: outside the lead window.
	svc.now = func() time.Time {
		return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	}

	require.NoError(t, svc.Sweep(context.Background()))
	assert.Empty(t, notifications.notifications)
}

func TestSweep_SkipsAlreadyClockedIn(t *testing.T) {
	sched := employee.TimeOfDay{Hour: 9, Minute: 0}
	svc, attendanceRepo, notifications, _ := newTestService(employee.Employee{
		ID:         "emp-1",
		ScheduleIn: &sched,
		PushToken:  token("ExponentPushToken[abc]"),
	})
	svc.now = func() time.Time {
		return time.Date(2026, 6, 1, 8, 50, 0, 0, time.UTC)
	}

	// Clocked in early today.
	attendanceRepo.events = append(attendanceRepo.events, attendance.Event{
		EmployeeID: "emp-1",
		Timestamp:  time.Date(2026, 6, 1, 8, 45, 0, 0, time.UTC),
		Status:     attendance.StatusOnDuty,
	})

	require.NoError(t, svc.Sweep(context.Background()))
	assert.Empty(t, notifications.notifications)
}
