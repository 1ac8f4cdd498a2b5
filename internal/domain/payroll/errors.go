package payroll

import "errors"

var (
	ErrStatusNotFound = errors.New("payslip status not found")
	ErrInvalidPeriod  = errors.New("invalid payroll period")
	ErrInvalidStatus  = errors.New("invalid payslip status")
)
