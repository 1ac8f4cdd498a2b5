package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/attendance"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	id, employee_id, event_timestamp, status, session_hours,
	latitude, longitude, face_verified, face_confidence, created_at
`

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var ev attendance.Event
	err := row.Scan(
		&ev.ID, &ev.EmployeeID, &ev.Timestamp, &ev.Status, &ev.SessionHours,
		&ev.Latitude, &ev.Longitude, &ev.FaceVerified, &ev.FaceConfidence,
		&ev.CreatedAt,
	)
	return ev, err
}

// Append implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_events (
			employee_id, event_timestamp, status, session_hours,
			latitude, longitude, face_verified, face_confidence
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attendanceColumns

	created, err := scanEvent(q.QueryRow(ctx, query,
		event.EmployeeID, event.Timestamp, event.Status, event.SessionHours,
		event.Latitude, event.Longitude, event.FaceVerified, event.FaceConfidence,
	))
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to append attendance event: %w", err)
	}

	return created, nil
}

// ListByEmployeePeriod implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_events
		WHERE employee_id = $1 AND event_timestamp >= $2 AND event_timestamp < $3
		ORDER BY event_timestamp ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// LastEvent implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) LastEvent(ctx context.Context, employeeID string) (attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_events
		WHERE employee_id = $1
		ORDER BY event_timestamp DESC
		LIMIT 1
	`

	ev, err := scanEvent(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrNoEvents
		}
		return attendance.Event{}, fmt.Errorf("failed to get last attendance event for employee %s: %w", employeeID, err)
	}

	return ev, nil
}
