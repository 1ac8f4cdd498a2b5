package attendance

import "errors"

var (
	ErrOutsideAllowedRadius = errors.New("location is outside the allowed office radius")
	ErrFaceNotVerified      = errors.New("face verification failed")
	ErrAlreadyOnDuty        = errors.New("already on duty, clock out first")
	ErrNotOnDuty            = errors.New("not on duty, clock in first")
	ErrInvalidStatus        = errors.New("invalid attendance status")
	ErrNoEvents             = errors.New("no attendance events recorded")
)
