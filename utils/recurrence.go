package utils

import (
	"time"
)

// MaxRecurrenceDays bounds how far a recurring series may reach
const MaxRecurrenceDays = 366

// ExpandWeekly returns start's clock time on every calendar day from start to end
// (inclusive, compared by date) whose weekday is in days. 0 is Sunday.
func ExpandWeekly(start, end time.Time, days []int) []time.Time {
	wanted := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			wanted[time.Weekday(d)] = true
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	end = end.In(start.Location())
	lastDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, start.Location())

	var out []time.Time
	for i := 0; i <= MaxRecurrenceDays; i++ {
		current := start.AddDate(0, 0, i)
		day := time.Date(current.Year(), current.Month(), current.Day(), 0, 0, 0, 0, start.Location())
		if day.After(lastDay) {
			break
		}
		if wanted[current.Weekday()] {
			out = append(out, current)
		}
	}
	return out
}
