package payroll

import (
	"log/slog"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/attendance"
	"github.com/clinichr/clinic-hr-backend/internal/domain/leave"
	"github.com/clinichr/clinic-hr-backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// LeaveReport is the output of the leave-to-penalty conversion for one
// employee and period.
type LeaveReport struct {
	LeavesUsed          decimal.Decimal
	UnpaidLeaveDays     decimal.Decimal
	LeaveDeduction      decimal.Decimal
	UnauthorizedCount   decimal.Decimal
	UnauthorizedPenalty decimal.Decimal
	Degraded            []string
}

// EquivalentDays converts a leave's duration class into a decimal day count.
// Hourly spans divide by the configured working hours per day; half days are
// exactly 0.5; full and multi day leaves count dates inclusively, ignoring
// time of day.
func EquivalentDays(req leave.Request, workingHoursPerDay decimal.Decimal) (decimal.Decimal, error) {
	switch req.Duration {
	case leave.DurationHourly:
		hours := req.EndDate.Sub(req.StartDate).Hours()
		if hours < 0 {
			hours = 0
		}
		return decimal.NewFromFloat(hours).Div(workingHoursPerDay), nil
	case leave.DurationHalfDay:
		return decimal.NewFromFloat(0.5), nil
	case leave.DurationFullDay, leave.DurationMultiDay:
		return decimal.NewFromInt(inclusiveDays(req.StartDate, req.EndDate)), nil
	default:
		return decimal.Zero, leave.ErrInvalidDuration
	}
}

// inclusiveDays counts calendar dates between start and end, both ends
// included, ignoring time of day. A reversed range counts as zero.
func inclusiveDays(start, end time.Time) int64 {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int64(e.Sub(s).Hours()/24) + 1
}

// convertLeaves runs the leave ledger through the deduction and
// unauthorized-absence rules.
//
// A leave belongs to the period iff its start date falls inside it: a
// multi-day leave spanning a month boundary is attributed entirely to the
// month it starts in. Cancelled leaves never consume allowance; instead any
// absence recorded inside their window is penalized as unauthorized.
// Malformed records are skipped and the affected category flagged degraded.
func convertLeaves(
	requests []leave.Request,
	events []attendance.Event,
	baseSalary decimal.Decimal,
	paidLeavesAllowed decimal.Decimal,
	period payroll.Period,
	rules payroll.Rules,
	loc *time.Location,
) LeaveReport {
	report := LeaveReport{
		LeavesUsed:          decimal.Zero,
		UnpaidLeaveDays:     decimal.Zero,
		LeaveDeduction:      decimal.Zero,
		UnauthorizedCount:   decimal.Zero,
		UnauthorizedPenalty: decimal.Zero,
	}

	days := indexAbsenceDays(events, loc)
	degraded := make(map[string]bool)

	for _, req := range requests {
		if !period.Contains(req.StartDate.In(loc)) {
			continue
		}

		if req.Status == leave.StatusCancelled {
			count, err := unauthorizedDays(req, days, loc)
			if err != nil {
				slog.Warn("skipping malformed cancelled leave",
					"leave_id", req.ID, "duration", req.Duration, "error", err)
				degraded[payroll.DegradedUnauthorizedPenalty] = true
				continue
			}
			report.UnauthorizedCount = report.UnauthorizedCount.Add(count)
			continue
		}

		eq, err := EquivalentDays(req, rules.WorkingHoursPerDay)
		if err != nil {
			slog.Warn("skipping malformed leave record",
				"leave_id", req.ID, "duration", req.Duration, "error", err)
			degraded[payroll.DegradedLeaveDeduction] = true
			continue
		}
		report.LeavesUsed = report.LeavesUsed.Add(eq)
	}

	unpaid := report.LeavesUsed.Sub(paidLeavesAllowed)
	if unpaid.IsNegative() {
		unpaid = decimal.Zero
	}
	report.UnpaidLeaveDays = unpaid

	band := rules.Slabs.Band(baseSalary)
	if band != nil {
		report.LeaveDeduction = unpaid.Mul(band.LeaveDeductionPerDay)
		report.UnauthorizedPenalty = report.UnauthorizedCount.Mul(band.UnauthorizedPerLeave)
	}

	// Fixed emission order keeps the breakdown identical across runs.
	for _, category := range []string{payroll.DegradedLeaveDeduction, payroll.DegradedUnauthorizedPenalty} {
		if degraded[category] {
			report.Degraded = append(report.Degraded, category)
		}
	}
	return report
}

// dayRecord summarizes one calendar day of the ledger for absence checks.
type dayRecord struct {
	absent       bool
	unmatchedOff bool
}

// indexAbsenceDays classifies each ledger day: an explicit Absent event, or
// an OffDuty with no earlier OnDuty the same day, marks the day absent for
// unauthorized-leave purposes.
func indexAbsenceDays(events []attendance.Event, loc *time.Location) map[string]dayRecord {
	onDutySeen := make(map[string]bool)
	days := make(map[string]dayRecord)

	for _, ev := range events {
		key := ev.Timestamp.In(loc).Format("2006-01-02")
		rec := days[key]
		switch ev.Status {
		case attendance.StatusAbsent:
			rec.absent = true
		case attendance.StatusOnDuty:
			onDutySeen[key] = true
		case attendance.StatusOffDuty:
			if !onDutySeen[key] {
				rec.unmatchedOff = true
			}
		}
		days[key] = rec
	}
	return days
}

// unauthorizedDays counts penalizable days inside a cancelled leave's window.
// A cancelled half day is a flat 0.5; otherwise each date in the window with
// an absence marker counts as one.
func unauthorizedDays(req leave.Request, days map[string]dayRecord, loc *time.Location) (decimal.Decimal, error) {
	switch req.Duration {
	case leave.DurationHalfDay:
		return decimal.NewFromFloat(0.5), nil
	case leave.DurationHourly, leave.DurationFullDay, leave.DurationMultiDay:
		// fall through to the day scan
	default:
		return decimal.Zero, leave.ErrInvalidDuration
	}

	start := req.StartDate.In(loc)
	end := req.EndDate.In(loc)
	count := decimal.Zero
	for d := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc); !d.After(end); d = d.AddDate(0, 0, 1) {
		rec := days[d.Format("2006-01-02")]
		if rec.absent || rec.unmatchedOff {
			count = count.Add(decimal.NewFromInt(1))
		}
	}
	return count, nil
}
