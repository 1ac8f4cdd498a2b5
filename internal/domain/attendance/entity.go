package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the duty state recorded by a ledger event.
type Status string

const (
	StatusOnDuty  Status = "on_duty"
	StatusOffDuty Status = "off_duty"
	StatusAbsent  Status = "absent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOnDuty, StatusOffDuty, StatusAbsent:
		return true
	}
	return false
}

// Event is one append-only entry in the attendance ledger. Events are never
// edited; hours worked and lateness are derived by pairing OnDuty/OffDuty
// events at read time.
type Event struct {
	ID         string
	EmployeeID string
	Timestamp  time.Time
	Status     Status

	// SessionHours is an optional device-reported session length. The payroll
	// engine derives hours from event pairing and ignores this field; it is
	// kept for audit display.
	SessionHours *decimal.Decimal

	Latitude  *float64
	Longitude *float64

	FaceVerified   *bool
	FaceConfidence *float64

	CreatedAt time.Time
}
