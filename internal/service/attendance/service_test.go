package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/attendance"
	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/face"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	events []attendance.Event
}

func (f *fakeAttendanceRepo) Append(_ context.Context, ev attendance.Event) (attendance.Event, error) {
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeAttendanceRepo) ListByEmployeePeriod(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) LastEvent(_ context.Context, employeeID string) (attendance.Event, error) {
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].EmployeeID == employeeID {
			return f.events[i], nil
		}
	}
	return attendance.Event{}, attendance.ErrNoEvents
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) { return nil, nil }
func (f *fakeEmployeeRepo) UpdateSchedule(_ context.Context, _ string, _, _ *employee.TimeOfDay) error {
	return nil
}
func (f *fakeEmployeeRepo) UpdatePushToken(_ context.Context, _ string, _ string) error { return nil }

type fakeVerifier struct {
	match face.Match
	err   error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string, _ string) (face.Match, error) {
	return f.match, f.err
}

var officeGeofence = Geofence{
	Latitude:     17.677607,
	Longitude:    83.198662,
	RadiusMeters: 1000,
}

func ptr[T any](v T) *T { return &v }

func newTestService(verifier face.Verifier) (*Service, *fakeAttendanceRepo) {
	repo := &fakeAttendanceRepo{}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", FullName: "Asha Rao", Timezone: "Asia/Kolkata"},
	}}
	return NewService(repo, employees, verifier, officeGeofence), repo
}

func atOffice() attendance.ClockRequest {
	return attendance.ClockRequest{
		Latitude:  ptr(17.6778),
		Longitude: ptr(83.1990),
	}
}

func TestClockIn_AppendsOnDutyEvent(t *testing.T) {
	svc, repo := newTestService(nil)

	event, err := svc.ClockIn(context.Background(), "emp-1", atOffice())
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusOnDuty, event.Status)
	assert.Len(t, repo.events, 1)
}

func TestClockIn_RejectsOutsideGeofence(t *testing.T) {
	svc, repo := newTestService(nil)

	// Hundreds of kilometers away.
	_, err := svc.ClockIn(context.Background(), "emp-1", attendance.ClockRequest{
		Latitude:  ptr(12.9716),
		Longitude: ptr(77.5946),
	})
	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)
	assert.Empty(t, repo.events, "rejected clock-in must not touch the ledger")
}

func TestClockIn_RequiresLocationWhenGeofenced(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.ClockIn(context.Background(), "emp-1", attendance.ClockRequest{})
	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)
}

func TestClockIn_RejectsDoubleClockIn(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.ClockIn(context.Background(), "emp-1", atOffice())
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), "emp-1", atOffice())
	assert.ErrorIs(t, err, attendance.ErrAlreadyOnDuty)
}

func TestClockIn_FaceVerification(t *testing.T) {
	t.Run("rejected when not verified", func(t *testing.T) {
		svc, repo := newTestService(&fakeVerifier{match: face.Match{Verified: false, Confidence: 0.41}})

		req := atOffice()
		req.FaceImage = ptr("base64image")
		_, err := svc.ClockIn(context.Background(), "emp-1", req)
		assert.ErrorIs(t, err, attendance.ErrFaceNotVerified)
		assert.Empty(t, repo.events)
	})

	t.Run("verdict recorded on the event", func(t *testing.T) {
		svc, _ := newTestService(&fakeVerifier{match: face.Match{Verified: true, Confidence: 0.97}})

		req := atOffice()
		req.FaceImage = ptr("base64image")
		event, err := svc.ClockIn(context.Background(), "emp-1", req)
		require.NoError(t, err)
		require.NotNil(t, event.FaceVerified)
		assert.True(t, *event.FaceVerified)
		require.NotNil(t, event.FaceConfidence)
		assert.InDelta(t, 0.97, *event.FaceConfidence, 0.001)
	})

	t.Run("verifier outage surfaces as error", func(t *testing.T) {
		svc, _ := newTestService(&fakeVerifier{err: errors.New("connection refused")})

		req := atOffice()
		req.FaceImage = ptr("base64image")
		_, err := svc.ClockIn(context.Background(), "emp-1", req)
		assert.Error(t, err)
	})
}

func TestClockOut_RecordsSessionHours(t *testing.T) {
	svc, repo := newTestService(nil)

	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	_, err := svc.ClockIn(context.Background(), "emp-1", atOffice())
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(9*time.Hour + 30*time.Minute) }
	event, err := svc.ClockOut(context.Background(), "emp-1", atOffice())
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusOffDuty, event.Status)
	require.NotNil(t, event.SessionHours)
	assert.True(t, event.SessionHours.Equal(decimal.NewFromFloat(9.5)),
		"want 9.5 got %s", event.SessionHours)
	assert.Len(t, repo.events, 2)
}

func TestClockOut_RequiresOpenSession(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.ClockOut(context.Background(), "emp-1", atOffice())
	assert.ErrorIs(t, err, attendance.ErrNotOnDuty)
}

func TestMarkAbsent_AppendsMarker(t *testing.T) {
	svc, repo := newTestService(nil)

	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	event, err := svc.MarkAbsent(context.Background(), "emp-1", day)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusAbsent, event.Status)
	assert.Len(t, repo.events, 1)
}

func TestClockIn_UnknownEmployee(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.ClockIn(context.Background(), "ghost", atOffice())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
