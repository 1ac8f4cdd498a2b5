package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrNoBaseSalary       = errors.New("employee has no monthly salary configured")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
