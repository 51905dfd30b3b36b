package timesheetsummary

import (
	"testing"
	"time"
	"wfm-tools-backend/models"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func rec(id string, status models.TimesheetStatus, weekEnding time.Time, hours map[string]string) dbmodels.Timesheet {
	daily := dbmodels.DailyHours{}
	for day, h := range hours {
		daily[day] = decimal.RequireFromString(h)
	}
	return dbmodels.Timesheet{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
		},
		Status:     status,
		WeekEnding: weekEnding,
		DailyHours: daily,
	}
}

var week1 = time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
var week2 = time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC)

func TestRecordHours(t *testing.T) {
	t.Run(`sum is order independent and exact`, func(t *testing.T) {
		r := rec("a", models.TSStatusSubmitted, week1, map[string]string{
			"2024-03-04": "7.5",
			"2024-03-05": "8",
			"2024-03-06": "0.5",
		})
		got, ok := RecordHours(r)
		require.True(t, ok)
		require.True(t, decimal.RequireFromString("16").Equal(got), "got %s", got)
	})

	t.Run(`many small additions stay exact`, func(t *testing.T) {
		daily := dbmodels.DailyHours{}
		for i := 1; i <= 28; i++ {
			daily[time.Date(2024, time.February, i, 0, 0, 0, 0, time.UTC).Format("2006-01-02")] = decimal.RequireFromString("0.1")
		}
		got, ok := RecordHours(dbmodels.Timesheet{DailyHours: daily})
		require.True(t, ok)
		require.True(t, decimal.RequireFromString("2.8").Equal(got), "got %s", got)
	})

	t.Run(`missing daily hours is malformed`, func(t *testing.T) {
		_, ok := RecordHours(dbmodels.Timesheet{})
		require.False(t, ok)
	})

	t.Run(`hours above 24 are malformed`, func(t *testing.T) {
		r := rec("a", models.TSStatusSubmitted, week1, map[string]string{"2024-03-04": "25"})
		_, ok := RecordHours(r)
		require.False(t, ok)
	})

	t.Run(`negative hours are malformed`, func(t *testing.T) {
		r := rec("a", models.TSStatusSubmitted, week1, map[string]string{"2024-03-04": "-1"})
		_, ok := RecordHours(r)
		require.False(t, ok)
	})

	t.Run(`non-date key is malformed`, func(t *testing.T) {
		r := rec("a", models.TSStatusSubmitted, week1, map[string]string{"monday": "8"})
		_, ok := RecordHours(r)
		require.False(t, ok)
	})
}

func TestComputeTotals(t *testing.T) {
	records := []dbmodels.Timesheet{
		rec("a", models.TSStatusSubmitted, week1, map[string]string{"2024-03-04": "8", "2024-03-05": "7.5"}),
		rec("b", models.TSStatusApproved, week2, map[string]string{"2024-03-11": "8"}),
		rec("c", models.TSStatusRejected, week2, map[string]string{"2024-03-12": "4"}),
	}

	t.Run(`partitions by status`, func(t *testing.T) {
		got := ComputeTotals(records)
		require.True(t, decimal.RequireFromString("27.5").Equal(got.TotalHours), "total %s", got.TotalHours)
		require.True(t, decimal.RequireFromString("15.5").Equal(got.PendingHours), "pending %s", got.PendingHours)
		require.True(t, decimal.NewFromInt(8).Equal(got.ApprovedHours), "approved %s", got.ApprovedHours)
		require.Equal(t, 1, got.Submitted)
		require.Equal(t, 1, got.Approved)
		require.Equal(t, 1, got.Rejected)
		require.Equal(t, 0, got.Skip.Skipped)
	})

	t.Run(`one malformed record is skipped, the rest still counted`, func(t *testing.T) {
		withBroken := append([]dbmodels.Timesheet{
			rec("broken", models.TSStatusSubmitted, week1, map[string]string{"2024-03-04": "99"}),
		}, records...)
		got := ComputeTotals(withBroken)
		require.True(t, decimal.RequireFromString("27.5").Equal(got.TotalHours), "total %s", got.TotalHours)
		require.Equal(t, 1, got.Skip.Skipped)
		require.Equal(t, []string{"broken"}, got.Skip.SkippedIDs)
	})
}

func TestStatusScopedHours(t *testing.T) {
	records := []dbmodels.Timesheet{
		rec("a", models.TSStatusSubmitted, week1, map[string]string{"2024-03-04": "8"}),
		rec("b", models.TSStatusApproved, week2, map[string]string{"2024-03-11": "6"}),
	}
	approved, skip := ApprovedHours(records)
	require.True(t, decimal.NewFromInt(6).Equal(approved), "approved %s", approved)
	require.Equal(t, 0, skip.Skipped)

	pending, skip := PendingHours(records)
	require.True(t, decimal.NewFromInt(8).Equal(pending), "pending %s", pending)
	require.Equal(t, 0, skip.Skipped)
}

func TestBucketByWeek(t *testing.T) {
	t.Run(`one bucket per week`, func(t *testing.T) {
		buckets, conflicts, skip := BucketByWeek([]dbmodels.Timesheet{
			rec("a", models.TSStatusSubmitted, week1, map[string]string{"2024-03-04": "8"}),
			rec("b", models.TSStatusApproved, week2, map[string]string{"2024-03-11": "6"}),
		})
		require.Len(t, buckets, 2)
		require.Equal(t, 0, conflicts)
		require.Equal(t, 0, skip.Skipped)
		require.Equal(t, "a", buckets["2024-03-10"].ID)
		require.Equal(t, "b", buckets["2024-03-17"].ID)
	})

	t.Run(`duplicates collapse to the most recently updated`, func(t *testing.T) {
		older := rec("old", models.TSStatusSubmitted, week1, map[string]string{"2024-03-04": "8"})
		older.UpdatedAt = time.Date(2024, time.March, 8, 10, 0, 0, 0, time.UTC)
		newer := rec("new", models.TSStatusSubmitted, week1, map[string]string{"2024-03-04": "4"})
		newer.UpdatedAt = time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC)

		buckets, conflicts, _ := BucketByWeek([]dbmodels.Timesheet{older, newer})
		require.Len(t, buckets, 1)
		require.Equal(t, 1, conflicts)
		require.Equal(t, "new", buckets["2024-03-10"].ID)

		// insertion order must not matter
		buckets, conflicts, _ = BucketByWeek([]dbmodels.Timesheet{newer, older})
		require.Equal(t, 1, conflicts)
		require.Equal(t, "new", buckets["2024-03-10"].ID)
	})

	t.Run(`malformed record neither buckets nor conflicts`, func(t *testing.T) {
		buckets, conflicts, skip := BucketByWeek([]dbmodels.Timesheet{
			rec("a", models.TSStatusSubmitted, week1, map[string]string{"2024-03-04": "8"}),
			rec("broken", models.TSStatusSubmitted, week1, nil),
		})
		require.Len(t, buckets, 1)
		require.Equal(t, 0, conflicts)
		require.Equal(t, 1, skip.Skipped)
	})
}
