package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuildSeries produces one point per calendar day in [start, end], ascending.
//
// Planned entries contribute on the days they fire: one-time entries on their own
// date, recurring entries on every matching day from their start date onwards.
// Actual entries are always treated as one-time events. Balances on each point are
// the running balances after that day's entries. The result is empty when start
// is after end.
func BuildSeries(planned, actual []Entry, initialAmount string, start, end time.Time) []DailyPoint {
	n := DaysInRange(start, end)
	points := make([]DailyPoint, 0, n)

	var (
		plannedBalance = ParseInitialAmount(initialAmount)
		actualBalance  = plannedBalance
		first          = calendarDay(start)
	)

	for i := 0; i < n; i++ {
		point := DailyPoint{
			Date:           first.AddDate(0, 0, i),
			PlannedIncome:  decimal.Zero,
			PlannedExpense: decimal.Zero,
			ActualIncome:   decimal.Zero,
			ActualExpense:  decimal.Zero,
		}

		for _, e := range planned {
			if !firesOn(e, point.Date) {
				continue
			}

			amount := ParseAmount(e.Amount)

			switch e.Kind {
			case KindIncome:
				point.PlannedIncome = point.PlannedIncome.Add(amount)
				plannedBalance = plannedBalance.Add(amount)
			case KindExpense:
				point.PlannedExpense = point.PlannedExpense.Add(amount)
				plannedBalance = plannedBalance.Sub(amount)
			}
		}

		for _, e := range actual {
			if !calendarDay(e.Date).Equal(point.Date) {
				continue
			}

			amount := ParseAmount(e.Amount)

			switch e.Kind {
			case KindIncome:
				point.ActualIncome = point.ActualIncome.Add(amount)
				actualBalance = actualBalance.Add(amount)
			case KindExpense:
				point.ActualExpense = point.ActualExpense.Add(amount)
				actualBalance = actualBalance.Sub(amount)
			}
		}

		point.PlannedBalance = plannedBalance
		point.ActualBalance = actualBalance
		points = append(points, point)
	}

	return points
}

// firesOn reports whether planned entry e contributes on the calendar day d.
// This is an exact per-day test and differs from the bucket count in ProjectedTotal.
func firesOn(e Entry, d time.Time) bool {
	start := calendarDay(e.Date)
	if d.Before(start) {
		return false
	}

	if !e.IsRecurring {
		return d.Equal(start)
	}

	switch e.Periodicity {
	case PeriodicityDaily:
		return true
	case PeriodicityWeekly:
		return d.Weekday() == start.Weekday()
	case PeriodicityYearly:
		return d.Day() == start.Day() && d.Month() == start.Month()
	}

	// monthly, and the fallback for a recurring entry missing its periodicity
	return d.Day() == start.Day()
}
