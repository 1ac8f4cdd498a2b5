package payroll

import (
	"testing"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/leave"
	"github.com/clinichr/clinic-hr-backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tenHoursPerDay = decimal.NewFromInt(10)

func TestEquivalentDays(t *testing.T) {
	loc := time.UTC
	start := time.Date(2026, 6, 10, 9, 0, 0, 0, loc)

	cases := []struct {
		name string
		req  leave.Request
		want string
	}{
		{
			name: "hourly divides by working hours per day",
			req: leave.Request{
				Duration:  leave.DurationHourly,
				StartDate: start,
				EndDate:   start.Add(5 * time.Hour),
			},
			want: "0.5",
		},
		{
			name: "half day is exactly half",
			req: leave.Request{
				Duration:  leave.DurationHalfDay,
				StartDate: start,
				EndDate:   start,
			},
			want: "0.5",
		},
		{
			name: "full day single date",
			req: leave.Request{
				Duration:  leave.DurationFullDay,
				StartDate: start,
				EndDate:   start,
			},
			want: "1",
		},
		{
			name: "multi day counts dates inclusively",
			req: leave.Request{
				Duration:  leave.DurationMultiDay,
				StartDate: start,
				EndDate:   start.AddDate(0, 0, 4),
			},
			want: "5",
		},
		{
			name: "time of day never changes the date count",
			req: leave.Request{
				Duration:  leave.DurationMultiDay,
				StartDate: time.Date(2026, 6, 10, 23, 0, 0, 0, loc),
				EndDate:   time.Date(2026, 6, 12, 1, 0, 0, 0, loc),
			},
			want: "3",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EquivalentDays(tc.req, tenHoursPerDay)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestEquivalentDays_UnknownDuration(t *testing.T) {
	_, err := EquivalentDays(leave.Request{Duration: leave.Duration("weekly")}, tenHoursPerDay)
	assert.ErrorIs(t, err, leave.ErrInvalidDuration)
}

func TestEquivalentDays_ReversedRangeIsZero(t *testing.T) {
	start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	got, err := EquivalentDays(leave.Request{
		Duration:  leave.DurationMultiDay,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -2),
	}, tenHoursPerDay)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestConvertLeaves_StartMonthAttribution(t *testing.T) {
	loc := time.UTC
	period := payroll.Period{Year: 2026, Month: time.June}
	rules := payroll.DefaultRules()

	requests := []leave.Request{
		{
			ID:        "in-period",
			Duration:  leave.DurationFullDay,
			StartDate: time.Date(2026, 6, 5, 0, 0, 0, 0, loc),
			EndDate:   time.Date(2026, 6, 5, 0, 0, 0, 0, loc),
			Status:    leave.StatusApproved,
		},
		{
			ID:        "prior-month-spillover",
			Duration:  leave.DurationMultiDay,
			StartDate: time.Date(2026, 5, 29, 0, 0, 0, 0, loc),
			EndDate:   time.Date(2026, 6, 3, 0, 0, 0, 0, loc),
			Status:    leave.StatusApproved,
		},
	}

	report := convertLeaves(requests, nil, decimal.NewFromInt(8000), decimal.Zero, period, rules, loc)
	assert.Equal(t, "1", report.LeavesUsed.String(), "only the leave starting in June counts")
}

func TestConvertLeaves_SalaryBelowEveryBandHasNoDeduction(t *testing.T) {
	loc := time.UTC
	period := payroll.Period{Year: 2026, Month: time.June}
	requests := []leave.Request{{
		ID:        "lv",
		Duration:  leave.DurationFullDay,
		StartDate: time.Date(2026, 6, 5, 0, 0, 0, 0, loc),
		EndDate:   time.Date(2026, 6, 5, 0, 0, 0, 0, loc),
		Status:    leave.StatusApproved,
	}}

	report := convertLeaves(requests, nil, decimal.NewFromInt(3000), decimal.Zero, period, payroll.DefaultRules(), loc)
	assert.Equal(t, "1", report.UnpaidLeaveDays.String())
	assert.True(t, report.LeaveDeduction.IsZero(), "3000 sits below the lowest band")
}

func TestConvertLeaves_MalformedCancelledFlagsUnauthorized(t *testing.T) {
	loc := time.UTC
	period := payroll.Period{Year: 2026, Month: time.June}
	requests := []leave.Request{{
		ID:        "lv-bad",
		Duration:  leave.Duration("sabbatical"),
		StartDate: time.Date(2026, 6, 5, 0, 0, 0, 0, loc),
		EndDate:   time.Date(2026, 6, 6, 0, 0, 0, 0, loc),
		Status:    leave.StatusCancelled,
	}}

	report := convertLeaves(requests, nil, decimal.NewFromInt(8000), decimal.Zero, period, payroll.DefaultRules(), loc)
	assert.True(t, report.UnauthorizedCount.IsZero())
	assert.Contains(t, report.Degraded, payroll.DegradedUnauthorizedPenalty)
}

func TestSlabTable_BandBoundaries(t *testing.T) {
	slabs := payroll.DefaultRules().Slabs

	cases := []struct {
		salary   int64
		wantRate string // leave deduction per day; "" means no band
	}{
		{4499, ""},
		{4500, "700"},
		{7500, "700"},
		{7501, "1400"},
		{9500, "1400"},
		{9501, "2800"},
		{50000, "2800"},
	}
	for _, tc := range cases {
		band := slabs.Band(decimal.NewFromInt(tc.salary))
		if tc.wantRate == "" {
			assert.Nil(t, band, "salary %d", tc.salary)
			continue
		}
		if assert.NotNil(t, band, "salary %d", tc.salary) {
			assert.Equal(t, tc.wantRate, band.LeaveDeductionPerDay.String(), "salary %d", tc.salary)
		}
	}
}
