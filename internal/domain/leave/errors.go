package leave

import "errors"

var (
	ErrLeaveNotFound    = errors.New("leave request not found")
	ErrPolicyNotFound   = errors.New("leave policy not found")
	ErrInvalidStatus    = errors.New("invalid leave status")
	ErrInvalidDuration  = errors.New("invalid leave duration class")
	ErrAlreadyProcessed = errors.New("leave request already processed")
)
