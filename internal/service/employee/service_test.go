package employee

import (
	"context"
	"fmt"
	"testing"

	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployeeRepo struct {
	byID    map[string]employee.Employee
	byEmail map[string]employee.Employee
	nextID  int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		byID:    map[string]employee.Employee{},
		byEmail: map[string]employee.Employee{},
	}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	if _, ok := f.byEmail[emp.Email]; ok {
		return employee.Employee{}, employee.ErrEmailExists
	}
	f.nextID++
	emp.ID = fmt.Sprintf("emp-%d", f.nextID)
	f.byID[emp.ID] = emp
	f.byEmail[emp.Email] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	emp, ok := f.byEmail[email]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(f.byID))
	for _, emp := range f.byID {
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) UpdateSchedule(_ context.Context, id string, in, out *employee.TimeOfDay) error {
	emp, ok := f.byID[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.ScheduleIn, emp.ScheduleOut = in, out
	f.byID[id] = emp
	f.byEmail[emp.Email] = emp
	return nil
}

func (f *fakeEmployeeRepo) UpdatePushToken(_ context.Context, id string, token string) error {
	emp, ok := f.byID[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.PushToken = &token
	f.byID[id] = emp
	f.byEmail[emp.Email] = emp
	return nil
}

func newTestService(repo *fakeEmployeeRepo) *Service {
	return NewService(repo, jwt.NewJWTService("test-secret-key-for-jwt", "1h"), "Asia/Kolkata")
}

func registerRequest() employee.RegisterRequest {
	return employee.RegisterRequest{
		FullName:      "Asha Rao",
		Email:         "asha@clinic.example",
		Password:      "password123",
		Department:    "Nursing",
		Role:          "staff",
		MonthlySalary: "8000",
	}
}

func TestRegister_HashesPasswordAndAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEmployeeRepo()
	svc := newTestService(repo)

	emp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, emp.ID)
	assert.Equal(t, "Asia/Kolkata", emp.Timezone)
	assert.NotEqual(t, "password123", emp.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte("password123")))
	assert.Equal(t, "8000", emp.MonthlySalary.String())
}

func TestRegister_ParsesScheduleAndTimezone(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEmployeeRepo()
	svc := newTestService(repo)

	req := registerRequest()
	in, out, tz := "09:00", "19:00", "Asia/Tokyo"
	req.ScheduleIn, req.ScheduleOut, req.Timezone = &in, &out, &tz

	emp, err := svc.Register(ctx, req)
	require.NoError(t, err)

	require.NotNil(t, emp.ScheduleIn)
	require.NotNil(t, emp.ScheduleOut)
	assert.Equal(t, "09:00", emp.ScheduleIn.String())
	assert.Equal(t, "19:00", emp.ScheduleOut.String())
	assert.Equal(t, "Asia/Tokyo", emp.Timezone)
}

func TestRegister_RejectsUnknownTimezone(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeEmployeeRepo())

	req := registerRequest()
	tz := "Mars/Olympus"
	req.Timezone = &tz

	_, err := svc.Register(ctx, req)
	assert.Error(t, err)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeEmployeeRepo())

	req := registerRequest()
	req.Password = "short"

	_, err := svc.Register(ctx, req)
	assert.Error(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeEmployeeRepo())

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeEmployeeRepo())

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, employee.LoginRequest{
		Email:    "asha@clinic.example",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "asha@clinic.example", resp.Employee.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeEmployeeRepo())

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(ctx, employee.LoginRequest{
		Email:    "asha@clinic.example",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, employee.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeEmployeeRepo())

	_, err := svc.Login(ctx, employee.LoginRequest{
		Email:    "nobody@clinic.example",
		Password: "password123",
	})
	assert.ErrorIs(t, err, employee.ErrInvalidCredentials)
}

func TestUpdateSchedule_ClearsBounds(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEmployeeRepo()
	svc := newTestService(repo)

	req := registerRequest()
	in := "09:00"
	req.ScheduleIn = &in
	emp, err := svc.Register(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateSchedule(ctx, emp.ID, employee.UpdateScheduleRequest{}))

	got, err := svc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ScheduleIn)
	assert.Nil(t, got.ScheduleOut)
}

func TestUpdateSchedule_RejectsMalformedTime(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeEmployeeRepo())

	bad := "9 o'clock"
	err := svc.UpdateSchedule(ctx, "emp-1", employee.UpdateScheduleRequest{ScheduleIn: &bad})
	assert.Error(t, err)
}

func TestUpdatePushToken(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEmployeeRepo()
	svc := newTestService(repo)

	emp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	err = svc.UpdatePushToken(ctx, emp.ID, employee.UpdatePushTokenRequest{
		PushToken: "ExponentPushToken[abc123]",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PushToken)
	assert.Equal(t, "ExponentPushToken[abc123]", *got.PushToken)
}
