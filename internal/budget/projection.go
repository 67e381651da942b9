package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectedTotal sums the entries of the given kind that have taken place by asOf.
//
// A one-time entry counts once if its date is on or before asOf. A recurring entry
// counts once per elapsed period since its start date, where months and years are
// fixed 30 and 365 day buckets rather than calendar months and years. Existing
// totals were computed that way, so a monthly entry over a full year yields 13
// occurrences, not 12.
func ProjectedTotal(entries []Entry, kind Kind, asOf time.Time) decimal.Decimal {
	total := decimal.Zero

	for _, e := range entries {
		if e.Kind != kind {
			continue
		}

		elapsed := daysBetween(e.Date, asOf)
		if elapsed < 0 {
			continue
		}

		n := occurrences(e, elapsed)
		total = total.Add(ParseAmount(e.Amount).Mul(decimal.NewFromInt(int64(n))))
	}

	return total
}

// ProjectedBalance is initialAmount plus projected income minus projected expenses as of asOf.
func ProjectedBalance(entries []Entry, initialAmount string, asOf time.Time) decimal.Decimal {
	return ParseInitialAmount(initialAmount).
		Add(ProjectedTotal(entries, KindIncome, asOf)).
		Sub(ProjectedTotal(entries, KindExpense, asOf))
}

// occurrences counts how many times e has happened elapsed days after its start.
func occurrences(e Entry, elapsed int) int {
	if !e.IsRecurring {
		return 1
	}

	switch e.Periodicity {
	case PeriodicityDaily:
		return elapsed + 1
	case PeriodicityWeekly:
		return elapsed/7 + 1
	case PeriodicityMonthly:
		return elapsed/30 + 1
	case PeriodicityYearly:
		return elapsed/365 + 1
	}

	return 1
}
