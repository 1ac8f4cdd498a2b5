package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/attendance"
	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/face"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// Geofence is the office perimeter a clock event must originate from.
type Geofence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// Service records duty transitions in the attendance ledger. Every accepted
// clock event is an immutable append; corrections happen by appending
// compensating events, never by editing history.
type Service struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	verifier       face.Verifier
	geofence       Geofence
	now            func() time.Time
}

func NewService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	verifier face.Verifier,
	geofence Geofence,
) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		verifier:       verifier,
		geofence:       geofence,
		now:            time.Now,
	}
}

// ClockIn appends an OnDuty event after the location and face checks pass.
func (s *Service) ClockIn(ctx context.Context, employeeID string, req attendance.ClockRequest) (attendance.Event, error) {
	if err := req.Validate(); err != nil {
		return attendance.Event{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.Event{}, err
	}

	last, err := s.attendanceRepo.LastEvent(ctx, employeeID)
	if err != nil && !errors.Is(err, attendance.ErrNoEvents) {
		return attendance.Event{}, fmt.Errorf("check duty state: %w", err)
	}
	if err == nil && last.Status == attendance.StatusOnDuty {
		return attendance.Event{}, attendance.ErrAlreadyOnDuty
	}

	event := attendance.Event{
		EmployeeID: employeeID,
		Timestamp:  s.now(),
		Status:     attendance.StatusOnDuty,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}

	if err := s.applyChecks(ctx, &event, req); err != nil {
		return attendance.Event{}, err
	}

	return s.attendanceRepo.Append(ctx, event)
}

// ClockOut appends an OffDuty event and records the closed session's length.
func (s *Service) ClockOut(ctx context.Context, employeeID string, req attendance.ClockRequest) (attendance.Event, error) {
	if err := req.Validate(); err != nil {
		return attendance.Event{}, err
	}

	last, err := s.attendanceRepo.LastEvent(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrNoEvents) {
			return attendance.Event{}, attendance.ErrNotOnDuty
		}
		return attendance.Event{}, fmt.Errorf("check duty state: %w", err)
	}
	if last.Status != attendance.StatusOnDuty {
		return attendance.Event{}, attendance.ErrNotOnDuty
	}

	now := s.now()
	sessionHours := decimal.NewFromFloat(now.Sub(last.Timestamp).Hours()).Round(2)

	event := attendance.Event{
		EmployeeID:   employeeID,
		Timestamp:    now,
		Status:       attendance.StatusOffDuty,
		SessionHours: &sessionHours,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}

	if err := s.applyChecks(ctx, &event, req); err != nil {
		return attendance.Event{}, err
	}

	return s.attendanceRepo.Append(ctx, event)
}

// MarkAbsent appends an Absent marker for the given day. Used by supervisors
// when a no-show is confirmed; the day then counts toward unauthorized
// absences inside cancelled leave windows.
func (s *Service) MarkAbsent(ctx context.Context, employeeID string, day time.Time) (attendance.Event, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.Event{}, err
	}

	return s.attendanceRepo.Append(ctx, attendance.Event{
		EmployeeID: employeeID,
		Timestamp:  day,
		Status:     attendance.StatusAbsent,
	})
}

// History returns the employee's ledger slice for [from, to), oldest first.
func (s *Service) History(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByEmployeePeriod(ctx, employeeID, from, to)
}

// applyChecks enforces the geofence and face verification on a clock event.
// Location is mandatory when a geofence is configured; the face check only
// runs when an image was submitted and a verifier is wired.
func (s *Service) applyChecks(ctx context.Context, event *attendance.Event, req attendance.ClockRequest) error {
	if s.geofence.RadiusMeters > 0 {
		if req.Latitude == nil || req.Longitude == nil {
			return attendance.ErrOutsideAllowedRadius
		}
		if !utils.WithinRadius(*req.Latitude, *req.Longitude,
			s.geofence.Latitude, s.geofence.Longitude, s.geofence.RadiusMeters) {
			return attendance.ErrOutsideAllowedRadius
		}
	}

	if req.FaceImage == nil || s.verifier == nil {
		return nil
	}

	match, err := s.verifier.Verify(ctx, event.EmployeeID, *req.FaceImage)
	if err != nil {
		slog.Error("face verifier unreachable", "employee_id", event.EmployeeID, "error", err)
		return fmt.Errorf("verify face: %w", err)
	}
	if !match.Verified {
		return attendance.ErrFaceNotVerified
	}

	verified := match.Verified
	confidence := match.Confidence
	event.FaceVerified = &verified
	event.FaceConfidence = &confidence
	return nil
}
