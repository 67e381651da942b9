package budget

import "time"

const day = 24 * time.Hour

// calendarDay truncates t to midnight UTC of the date t shows in its own location.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from one date to another; negative when to is earlier.
func daysBetween(from, to time.Time) int {
	return int(calendarDay(to).Sub(calendarDay(from)) / day)
}

// DaysInRange is the number of calendar days in the inclusive range, zero when start is after end.
func DaysInRange(start, end time.Time) int {
	n := daysBetween(start, end) + 1
	if n < 0 {
		return 0
	}

	return n
}
