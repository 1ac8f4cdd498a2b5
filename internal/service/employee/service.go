package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/jwt"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Service manages the employee master records and credential flow.
type Service struct {
	employeeRepo    employee.EmployeeRepository
	jwtService      jwt.Service
	defaultTimezone string
}

func NewService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service, defaultTimezone string) *Service {
	return &Service{
		employeeRepo:    employeeRepo,
		jwtService:      jwtService,
		defaultTimezone: defaultTimezone,
	}
}

// Register creates an employee record with a hashed password.
func (s *Service) Register(ctx context.Context, req employee.RegisterRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("hash password: %w", err)
	}

	salary, _ := decimal.NewFromString(req.MonthlySalary)

	emp := employee.Employee{
		FullName:      req.FullName,
		Email:         req.Email,
		PasswordHash:  string(hash),
		Department:    req.Department,
		Role:          req.Role,
		MonthlySalary: salary,
		Timezone:      s.defaultTimezone,
		ImageURL:      req.ImageURL,
	}
	if req.Timezone != nil && *req.Timezone != "" {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return employee.Employee{}, fmt.Errorf("invalid timezone %q: %w", *req.Timezone, err)
		}
		emp.Timezone = *req.Timezone
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return employee.Employee{}, fmt.Errorf("invalid date of birth: %w", err)
		}
		emp.DateOfBirth = &dob
	}
	if req.ScheduleIn != nil {
		t, err := employee.ParseTimeOfDay(*req.ScheduleIn)
		if err != nil {
			return employee.Employee{}, err
		}
		emp.ScheduleIn = &t
	}
	if req.ScheduleOut != nil {
		t, err := employee.ParseTimeOfDay(*req.ScheduleOut)
		if err != nil {
			return employee.Employee{}, err
		}
		emp.ScheduleOut = &t
	}

	return s.employeeRepo.Create(ctx, emp)
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, req employee.LoginRequest) (employee.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.LoginResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.LoginResponse{}, employee.ErrInvalidCredentials
		}
		return employee.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return employee.LoginResponse{}, employee.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return employee.LoginResponse{}, fmt.Errorf("generate access token: %w", err)
	}

	return employee.LoginResponse{
		AccessToken: token,
		Employee:    employee.ToResponse(emp),
	}, nil
}

// Get returns one employee record.
func (s *Service) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

// List returns every employee, ordered by name.
func (s *Service) List(ctx context.Context) ([]employee.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// UpdateSchedule replaces the contracted shift bounds. Passing nil for a
// bound clears it, which disables lateness checks on that employee.
func (s *Service) UpdateSchedule(ctx context.Context, id string, req employee.UpdateScheduleRequest) error {
	var in, out *employee.TimeOfDay
	if req.ScheduleIn != nil {
		t, err := employee.ParseTimeOfDay(*req.ScheduleIn)
		if err != nil {
			return err
		}
		in = &t
	}
	if req.ScheduleOut != nil {
		t, err := employee.ParseTimeOfDay(*req.ScheduleOut)
		if err != nil {
			return err
		}
		out = &t
	}
	return s.employeeRepo.UpdateSchedule(ctx, id, in, out)
}

// UpdatePushToken stores the device token used for shift reminders.
func (s *Service) UpdatePushToken(ctx context.Context, id string, req employee.UpdatePushTokenRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.employeeRepo.UpdatePushToken(ctx, id, req.PushToken)
}
