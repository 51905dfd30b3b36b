package period

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultHoursPerDay is the working-hour baseline for one weekday.
var DefaultHoursPerDay = decimal.NewFromInt(8)

// MonthBounds returns the first and last day of the calendar month
// containing ref, in ref's location.
func MonthBounds(ref time.Time) (monthStart, monthEnd time.Time) {
	year, month, _ := ref.Date()
	monthStart = time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	monthEnd = monthStart.AddDate(0, 1, -1)
	return monthStart, monthEnd
}

// WeeksInMonth returns the ordered week-start dates of every week
// overlapping the calendar month containing ref. The first week may start
// before the 1st and the last may end after the last day of the month,
// boundary weeks still have to render and aggregate.
func WeeksInMonth(ref time.Time, weekStart time.Weekday) []time.Time {
	monthStart, monthEnd := MonthBounds(ref)

	first := StartOfWeek(monthStart, weekStart)
	weeks := []time.Time{}
	for week := first; !week.After(monthEnd); week = week.AddDate(0, 0, 7) {
		weeks = append(weeks, week)
	}
	return weeks
}

// StartOfWeek returns the weekStart-day on or before d.
func StartOfWeek(d time.Time, weekStart time.Weekday) time.Time {
	year, month, day := d.Date()
	d = time.Date(year, month, day, 0, 0, 0, 0, d.Location())
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// EndOfWeek returns the last day of the week containing d.
func EndOfWeek(d time.Time, weekStart time.Weekday) time.Time {
	return StartOfWeek(d, weekStart).AddDate(0, 0, 6)
}

// ExpectedWorkingHours counts the Mon-Fri dates within [monthStart, monthEnd]
// and multiplies by hoursPerDay. Weekends contribute zero; public holidays
// are out of scope.
func ExpectedWorkingHours(monthStart, monthEnd time.Time, hoursPerDay decimal.Decimal) decimal.Decimal {
	weekdays := 0
	for d := monthStart; !d.After(monthEnd); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			weekdays++
		}
	}
	return hoursPerDay.Mul(decimal.NewFromInt(int64(weekdays)))
}
