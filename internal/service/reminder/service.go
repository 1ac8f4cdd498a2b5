package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/attendance"
	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/domain/notification"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/cron"
)

// LeadTime is how far before the scheduled shift start a reminder fires.
const LeadTime = 15 * time.Minute

// Service sends shift-start reminders to employees who have not clocked in
// yet. It is driven by an injected scheduler; the service itself owns no
// goroutines.
type Service struct {
	employeeRepo     employee.EmployeeRepository
	attendanceRepo   attendance.AttendanceRepository
	notificationRepo notification.NotificationRepository
	notifier         notification.Notifier
	now              func() time.Time

	mu       sync.Mutex
	reminded map[string]string // employee id -> last reminded day key
}

func NewService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	notificationRepo notification.NotificationRepository,
	notifier notification.Notifier,
) *Service {
	return &Service{
		employeeRepo:     employeeRepo,
		attendanceRepo:   attendanceRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		now:              time.Now,
		reminded:         make(map[string]string),
	}
}

// Register wires the reminder sweep into the scheduler.
func (s *Service) Register(scheduler *cron.Scheduler, interval time.Duration) {
	scheduler.AddJob("shift-reminders", interval, s.Sweep)
}

// Sweep checks every employee with a schedule and a push token, and reminds
// those whose shift starts within the lead window and who have not clocked in
// today. At most one reminder per employee per day.
func (s *Service) Sweep(ctx context.Context) error {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}

	for _, emp := range employees {
		if emp.ScheduleIn == nil || emp.PushToken == nil {
			continue
		}
		if err := s.remindIfDue(ctx, emp); err != nil {
			slog.Error("shift reminder failed", "employee_id", emp.ID, "error", err)
		}
	}
	return nil
}

func (s *Service) remindIfDue(ctx context.Context, emp employee.Employee) error {
	loc := emp.Location()
	now := s.now().In(loc)
	dayKey := now.Format("2006-01-02")

	shiftStart := time.Date(now.Year(), now.Month(), now.Day(),
		emp.ScheduleIn.Hour, emp.ScheduleIn.Minute, 0, 0, loc)
	if now.After(shiftStart) || shiftStart.Sub(now) > LeadTime {
		return nil
	}

	s.mu.Lock()
	already := s.reminded[emp.ID] == dayKey
	s.mu.Unlock()
	if already {
		return nil
	}

	// Skip anyone who already clocked in today.
	last, err := s.attendanceRepo.LastEvent(ctx, emp.ID)
	if err != nil && !errors.Is(err, attendance.ErrNoEvents) {
		return fmt.Errorf("check last event: %w", err)
	}
	if err == nil && last.Status == attendance.StatusOnDuty &&
		last.Timestamp.In(loc).Format("2006-01-02") == dayKey {
		return nil
	}

	message := fmt.Sprintf("Your shift starts at %s. Remember to clock in.", emp.ScheduleIn.String())
	if _, err := s.notificationRepo.Create(ctx, notification.Notification{
		EmployeeID: emp.ID,
		Title:      "Shift reminder",
		Message:    message,
	}); err != nil {
		return fmt.Errorf("record reminder: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.Push(ctx, *emp.PushToken, "Shift reminder", message); err != nil {
			slog.Error("failed to push shift reminder", "employee_id", emp.ID, "error", err)
		}
	}

	s.mu.Lock()
	s.reminded[emp.ID] = dayKey
	s.mu.Unlock()
	return nil
}
