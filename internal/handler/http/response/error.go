package response

import (
	"errors"
	"net/http"

	"github.com/clinichr/clinic-hr-backend/internal/domain/attendance"
	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/clinichr/clinic-hr-backend/internal/domain/leave"
	"github.com/clinichr/clinic-hr-backend/internal/domain/notification"
	"github.com/clinichr/clinic-hr-backend/internal/domain/payroll"
	"github.com/clinichr/clinic-hr-backend/internal/domain/task"
	"github.com/clinichr/clinic-hr-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, employee.ErrNoBaseSalary):
		BadRequest(w, "Employee has no monthly salary configured", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, "Location is outside the allowed office radius")
	case errors.Is(err, attendance.ErrFaceNotVerified):
		Forbidden(w, "Face verification failed")
	case errors.Is(err, attendance.ErrAlreadyOnDuty):
		Conflict(w, "Already on duty, clock out first")
	case errors.Is(err, attendance.ErrNotOnDuty):
		Conflict(w, "Not on duty, clock in first")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrPolicyNotFound):
		NotFound(w, "Leave policy not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidStatus):
		BadRequest(w, "Invalid leave status", nil)
	case errors.Is(err, leave.ErrInvalidDuration):
		BadRequest(w, "Invalid leave duration", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrInvalidStatus):
		BadRequest(w, "Invalid payslip status", nil)
	case errors.Is(err, payroll.ErrStatusNotFound):
		NotFound(w, "Payslip status not found")

	// Task and notification errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
