package period

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeeksInMonth(t *testing.T) {
	t.Run(`march 2024 starts friday, five monday weeks`, func(t *testing.T) {
		weeks := WeeksInMonth(date(2024, time.March, 15), time.Monday)
		expected := []time.Time{
			date(2024, time.February, 26),
			date(2024, time.March, 4),
			date(2024, time.March, 11),
			date(2024, time.March, 18),
			date(2024, time.March, 25),
		}
		require.Equal(t, expected, weeks)
	})

	t.Run(`first week may begin in previous month`, func(t *testing.T) {
		weeks := WeeksInMonth(date(2024, time.March, 1), time.Monday)
		require.True(t, weeks[0].Before(date(2024, time.March, 1)))
	})

	t.Run(`december spills into next year`, func(t *testing.T) {
		weeks := WeeksInMonth(date(2025, time.December, 31), time.Monday)
		last := weeks[len(weeks)-1]
		require.Equal(t, date(2025, time.December, 29), last)
		require.Equal(t, 2026, EndOfWeek(last, time.Monday).Year())
	})

	t.Run(`any reference day in the month gives the same weeks`, func(t *testing.T) {
		a := WeeksInMonth(date(2024, time.March, 1), time.Monday)
		b := WeeksInMonth(date(2024, time.March, 31), time.Monday)
		require.Equal(t, a, b)
	})
}

func TestStartEndOfWeek(t *testing.T) {
	t.Run(`monday is its own week start`, func(t *testing.T) {
		require.Equal(t, date(2024, time.March, 4), StartOfWeek(date(2024, time.March, 4), time.Monday))
	})
	t.Run(`sunday belongs to the preceding monday week`, func(t *testing.T) {
		require.Equal(t, date(2024, time.March, 4), StartOfWeek(date(2024, time.March, 10), time.Monday))
		require.Equal(t, date(2024, time.March, 10), EndOfWeek(date(2024, time.March, 4), time.Monday))
	})
}

func TestExpectedWorkingHours(t *testing.T) {
	t.Run(`february 2024 leap month has 21 weekdays`, func(t *testing.T) {
		start, end := MonthBounds(date(2024, time.February, 10))
		got := ExpectedWorkingHours(start, end, DefaultHoursPerDay)
		require.True(t, decimal.NewFromInt(168).Equal(got), "got %s", got)
	})

	t.Run(`february 2023 has 20 weekdays too`, func(t *testing.T) {
		start, end := MonthBounds(date(2023, time.February, 1))
		got := ExpectedWorkingHours(start, end, DefaultHoursPerDay)
		require.True(t, decimal.NewFromInt(160).Equal(got), "got %s", got)
	})

	t.Run(`august 2026 has 21 weekdays`, func(t *testing.T) {
		start, end := MonthBounds(date(2026, time.August, 20))
		got := ExpectedWorkingHours(start, end, DefaultHoursPerDay)
		require.True(t, decimal.NewFromInt(168).Equal(got), "got %s", got)
	})

	t.Run(`weekend-only range is zero`, func(t *testing.T) {
		got := ExpectedWorkingHours(date(2024, time.March, 2), date(2024, time.March, 3), DefaultHoursPerDay)
		require.True(t, got.IsZero())
	})
}
