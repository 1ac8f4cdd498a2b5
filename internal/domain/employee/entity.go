package employee

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the HR master record. MonthlySalary is the base figure the
// payroll engine works from; ScheduleIn/ScheduleOut are the contracted
// time-of-day bounds used for lateness checks.
type Employee struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Department   string
	Role         string
	DateOfBirth  *time.Time

	MonthlySalary decimal.Decimal
	ScheduleIn    *TimeOfDay
	ScheduleOut   *TimeOfDay
	Timezone      string

	PushToken *string
	ImageURL  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location resolves the employee home timezone, falling back to UTC when the
// stored name is empty or invalid.
func (e Employee) Location() *time.Location {
	if e.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TimeOfDay is a wall-clock time without a date, stored as "HH:MM".
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return t, nil
}

// MinutesFromMidnight is used when comparing an arrival timestamp against the
// scheduled start.
func (t TimeOfDay) MinutesFromMidnight() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
