package budget_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

func balances(points []budget.DailyPoint, planned bool) []string {
	out := make([]string, len(points))
	for i, p := range points {
		if planned {
			out[i] = p.PlannedBalance.String()
		} else {
			out[i] = p.ActualBalance.String()
		}
	}

	return out
}

func TestBuildSeries_DailyRecurringIncome(t *testing.T) {
	planned := []budget.Entry{recurring(budget.KindIncome, "10", date(2024, 1, 1), budget.PeriodicityDaily)}

	points := budget.BuildSeries(planned, nil, "0", date(2024, 1, 1), date(2024, 1, 3))
	require.Len(t, points, 3)

	assert.Equal(t, []string{"10", "20", "30"}, balances(points, true))
	assert.Equal(t, []string{"0", "0", "0"}, balances(points, false))

	for i, p := range points {
		assert.Equal(t, date(2024, 1, 1+i), p.Date)
		assert.Equal(t, "10", p.PlannedIncome.String())
		assert.True(t, p.PlannedExpense.IsZero())
	}
}

func TestBuildSeries_DailyWaitsForStart(t *testing.T) {
	planned := []budget.Entry{recurring(budget.KindExpense, "5", date(2024, 1, 3), budget.PeriodicityDaily)}

	points := budget.BuildSeries(planned, nil, "100", date(2024, 1, 1), date(2024, 1, 4))
	assert.Equal(t, []string{"100", "100", "95", "90"}, balances(points, true))
}

func TestBuildSeries_WeeklyFiresOnStartWeekday(t *testing.T) {
	// 2024-01-01 is a Monday.
	planned := []budget.Entry{recurring(budget.KindExpense, "25", date(2024, 1, 1), budget.PeriodicityWeekly)}

	points := budget.BuildSeries(planned, nil, "0", date(2024, 1, 1), date(2024, 1, 21))
	require.Len(t, points, 21)

	for _, p := range points {
		if p.Date.Weekday() == time.Monday {
			assert.Equal(t, "25", p.PlannedExpense.String(), p.Date)
			continue
		}

		assert.True(t, p.PlannedExpense.IsZero(), p.Date)
	}

	assert.Equal(t, "-75", points[len(points)-1].PlannedBalance.String())
}

func TestBuildSeries_MonthlyAndYearly(t *testing.T) {
	planned := []budget.Entry{
		recurring(budget.KindIncome, "1000", date(2024, 1, 15), budget.PeriodicityMonthly),
		recurring(budget.KindExpense, "120", date(2023, 3, 1), budget.PeriodicityYearly),
	}

	points := budget.BuildSeries(planned, nil, "0", date(2024, 1, 1), date(2024, 3, 31))
	require.Len(t, points, 91)

	var incomeDays, expenseDays []string

	for _, p := range points {
		if !p.PlannedIncome.IsZero() {
			incomeDays = append(incomeDays, p.Date.Format(time.DateOnly))
		}

		if !p.PlannedExpense.IsZero() {
			expenseDays = append(expenseDays, p.Date.Format(time.DateOnly))
		}
	}

	assert.Equal(t, []string{"2024-01-15", "2024-02-15", "2024-03-15"}, incomeDays)
	assert.Equal(t, []string{"2024-03-01"}, expenseDays)
	assert.Equal(t, "2880", points[len(points)-1].PlannedBalance.String())
}

func TestBuildSeries_OneTimeAndActual(t *testing.T) {
	planned := []budget.Entry{oneTime(budget.KindIncome, "200", date(2024, 1, 2))}
	actual := []budget.Entry{
		oneTime(budget.KindIncome, "180", time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)),
		oneTime(budget.KindExpense, "30", date(2024, 1, 3)),
		// actual entries never repeat, even if flagged as recurring
		recurring(budget.KindExpense, "1", date(2024, 1, 1), budget.PeriodicityDaily),
	}

	points := budget.BuildSeries(planned, actual, "50", date(2024, 1, 1), date(2024, 1, 3))
	require.Len(t, points, 3)

	assert.Equal(t, []string{"50", "250", "250"}, balances(points, true))
	assert.Equal(t, []string{"49", "229", "199"}, balances(points, false))
	assert.Equal(t, "180", points[1].ActualIncome.String())
	assert.Equal(t, "30", points[2].ActualExpense.String())
}

func TestBuildSeries_Length(t *testing.T) {
	type testCase struct {
		name       string
		start, end time.Time
		wantLen    int
	}

	tests := []testCase{
		{name: "SingleDay", start: date(2024, 1, 1), end: date(2024, 1, 1), wantLen: 1},
		{name: "LeapFebruary", start: date(2024, 2, 1), end: date(2024, 2, 29), wantLen: 29},
		{name: "FullYear", start: date(2024, 1, 1), end: date(2024, 12, 31), wantLen: 366},
		{name: "TimeOfDayIgnored", start: time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), end: date(2024, 1, 2), wantLen: 2},
		{name: "StartAfterEnd", start: date(2024, 1, 2), end: date(2024, 1, 1), wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := budget.BuildSeries(nil, nil, "0", tt.start, tt.end)
			assert.Len(t, points, tt.wantLen)
			assert.Equal(t, tt.wantLen, budget.DaysInRange(tt.start, tt.end))
		})
	}
}

func TestBuildSeries_Idempotent(t *testing.T) {
	planned := []budget.Entry{
		recurring(budget.KindIncome, "10", date(2024, 1, 1), budget.PeriodicityDaily),
		recurring(budget.KindExpense, "70", date(2024, 1, 3), budget.PeriodicityWeekly),
		oneTime(budget.KindExpense, "15.75", date(2024, 1, 9)),
	}
	actual := []budget.Entry{oneTime(budget.KindIncome, "8", date(2024, 1, 4))}

	render := func(points []budget.DailyPoint) []string {
		out := make([]string, 0, len(points))
		for _, p := range points {
			out = append(out, p.Date.Format(time.DateOnly)+" "+p.PlannedIncome.String()+" "+p.PlannedExpense.String()+" "+
				p.ActualIncome.String()+" "+p.ActualExpense.String()+" "+p.PlannedBalance.String()+" "+p.ActualBalance.String())
		}

		return out
	}

	first := budget.BuildSeries(planned, actual, "3", date(2024, 1, 1), date(2024, 2, 1))
	second := budget.BuildSeries(planned, actual, "3", date(2024, 1, 1), date(2024, 2, 1))

	assert.Equal(t, render(first), render(second))
}
