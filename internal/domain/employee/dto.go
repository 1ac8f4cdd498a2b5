package employee

import (
	"github.com/clinichr/clinic-hr-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Department    string  `json:"department"`
	Role          string  `json:"role"`
	DateOfBirth   *string `json:"dob,omitempty"`
	MonthlySalary string  `json:"monthly_salary"`
	ScheduleIn    *string `json:"schedule_in,omitempty"`
	ScheduleOut   *string `json:"schedule_out,omitempty"`
	Timezone      *string `json:"timezone,omitempty"`
	ImageURL      *string `json:"image,omitempty"`
}

func (r RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}
	if _, err := decimal.NewFromString(r.MonthlySalary); err != nil {
		errs = append(errs, validator.ValidationError{Field: "monthly_salary", Message: "monthly salary must be a decimal number"})
	}
	if r.ScheduleIn != nil {
		if _, err := ParseTimeOfDay(*r.ScheduleIn); err != nil {
			errs = append(errs, validator.ValidationError{Field: "schedule_in", Message: "expected HH:MM"})
		}
	}
	if r.ScheduleOut != nil {
		if _, err := ParseTimeOfDay(*r.ScheduleOut); err != nil {
			errs = append(errs, validator.ValidationError{Field: "schedule_out", Message: "expected HH:MM"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	Employee    EmployeeResponse `json:"employee"`
}

type UpdatePushTokenRequest struct {
	PushToken string `json:"push_token"`
}

func (r UpdatePushTokenRequest) Validate() error {
	if validator.IsEmpty(r.PushToken) {
		return validator.ValidationErrors{{Field: "push_token", Message: "push token is required"}}
	}
	return nil
}

type UpdateScheduleRequest struct {
	ScheduleIn  *string `json:"schedule_in,omitempty"`
	ScheduleOut *string `json:"schedule_out,omitempty"`
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Department    string  `json:"department"`
	Role          string  `json:"role"`
	MonthlySalary string  `json:"monthly_salary"`
	ScheduleIn    *string `json:"schedule_in,omitempty"`
	ScheduleOut   *string `json:"schedule_out,omitempty"`
	Timezone      string  `json:"timezone"`
	ImageURL      *string `json:"image,omitempty"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID,
		FullName:      e.FullName,
		Email:         e.Email,
		Department:    e.Department,
		Role:          e.Role,
		MonthlySalary: e.MonthlySalary.StringFixed(2),
		Timezone:      e.Timezone,
		ImageURL:      e.ImageURL,
	}
	if e.ScheduleIn != nil {
		s := e.ScheduleIn.String()
		resp.ScheduleIn = &s
	}
	if e.ScheduleOut != nil {
		s := e.ScheduleOut.String()
		resp.ScheduleOut = &s
	}
	return resp
}
