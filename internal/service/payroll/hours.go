package payroll

import (
	"log/slog"
	"sort"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/attendance"
	"github.com/clinichr/clinic-hr-backend/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// LateDay is one calendar day on which the employee arrived after the
// scheduled start. Blocks may be zero when the tardiness was shorter than a
// full block; the day still consumes grace.
type LateDay struct {
	Day    time.Time
	Blocks int
}

// HoursReport is the output of the hours and lateness aggregation for one
// employee and period.
type HoursReport struct {
	HoursWorked decimal.Decimal
	LateDays    []LateDay
}

// PenaltyBlocks sums the blocks of every late day past the grace count. Late
// days are ordered chronologically, so grace always forgives the earliest.
func (r HoursReport) PenaltyBlocks(forgivenDays int) int {
	blocks := 0
	for i, d := range r.LateDays {
		if i < forgivenDays {
			continue
		}
		blocks += d.Blocks
	}
	return blocks
}

// aggregateHours derives worked hours and lateness from the ordered ledger
// slice. Events are partitioned by calendar day in loc; within a day each
// OnDuty pairs with the next strictly-later OffDuty. Unmatched OnDuty events
// contribute zero duration, never negative.
//
// A nil scheduleIn disables lateness detection entirely (fail soft).
func aggregateHours(events []attendance.Event, scheduleIn *employee.TimeOfDay, loc *time.Location, blockMinutes int) HoursReport {
	byDay := make(map[string][]attendance.Event)
	var dayKeys []string
	for _, ev := range events {
		key := ev.Timestamp.In(loc).Format("2006-01-02")
		if _, seen := byDay[key]; !seen {
			dayKeys = append(dayKeys, key)
		}
		byDay[key] = append(byDay[key], ev)
	}
	sort.Strings(dayKeys)

	report := HoursReport{HoursWorked: decimal.Zero}

	for _, key := range dayKeys {
		dayEvents := byDay[key]
		sort.Slice(dayEvents, func(i, j int) bool {
			return dayEvents[i].Timestamp.Before(dayEvents[j].Timestamp)
		})

		var pendingOn *time.Time
		var firstArrival *time.Time

		for _, ev := range dayEvents {
			ts := ev.Timestamp.In(loc)
			switch ev.Status {
			case attendance.StatusOnDuty:
				if firstArrival == nil {
					t := ts
					firstArrival = &t
				}
				// A repeated OnDuty abandons the previous session.
				t := ts
				pendingOn = &t
			case attendance.StatusOffDuty:
				if pendingOn == nil {
					continue
				}
				seconds := ts.Sub(*pendingOn).Seconds()
				if seconds < 0 {
					// Pairing guarantees off >= on; a negative span means the
					// ledger is inconsistent. Zero the day's contribution
					// rather than poisoning the total.
					slog.Error("negative attendance session, zeroing contribution",
						"employee_id", ev.EmployeeID, "day", key)
					seconds = 0
				}
				report.HoursWorked = report.HoursWorked.Add(
					decimal.NewFromFloat(seconds / 3600.0))
				pendingOn = nil
			case attendance.StatusAbsent:
				// Absent markers carry no duration.
			}
		}

		if scheduleIn == nil || firstArrival == nil {
			continue
		}

		schedSeconds := scheduleIn.MinutesFromMidnight() * 60
		arrivalSeconds := firstArrival.Hour()*3600 + firstArrival.Minute()*60 + firstArrival.Second()
		if arrivalSeconds <= schedSeconds {
			continue // on time or early
		}

		lateMinutes := (arrivalSeconds - schedSeconds) / 60
		day, _ := time.ParseInLocation("2006-01-02", key, loc)
		report.LateDays = append(report.LateDays, LateDay{
			Day:    day,
			Blocks: lateMinutes / blockMinutes,
		})
	}

	return report
}
