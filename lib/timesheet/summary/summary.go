package timesheetsummary

import (
	"time"
	"wfm-tools-backend/models"
	dbmodels "wfm-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"
)

var maxDayHours = decimal.NewFromInt(24)

// SkipReport counts records that could not take part in an aggregation.
// A malformed record never aborts the computation for the others, the
// caller decides whether to warn.
type SkipReport struct {
	Skipped    int
	SkippedIDs []string
}

func (r *SkipReport) add(id string) {
	r.Skipped++
	r.SkippedIDs = append(r.SkippedIDs, id)
}

// RecordHours returns the derived total of a record's per-day entries.
// ok is false when the record is malformed: missing daily hours or an entry
// outside [0,24].
func RecordHours(rec dbmodels.Timesheet) (total decimal.Decimal, ok bool) {
	if len(rec.DailyHours) == 0 {
		return decimal.Zero, false
	}
	total = decimal.Zero
	for day, h := range rec.DailyHours {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return decimal.Zero, false
		}
		if h.IsNegative() || h.GreaterThan(maxDayHours) {
			return decimal.Zero, false
		}
		total = total.Add(h)
	}
	return total, true
}

// Totals is the status-partitioned rollup over a record set.
type Totals struct {
	TotalHours    decimal.Decimal
	ApprovedHours decimal.Decimal
	PendingHours  decimal.Decimal
	Submitted     int
	Approved      int
	Rejected      int
	Skip          SkipReport
}

// ComputeTotals aggregates hours across all statuses, partitioned by status.
// Malformed records are skipped and reported, never summed.
func ComputeTotals(records []dbmodels.Timesheet) Totals {
	t := Totals{
		TotalHours:    decimal.Zero,
		ApprovedHours: decimal.Zero,
		PendingHours:  decimal.Zero,
	}
	for _, rec := range records {
		hours, ok := RecordHours(rec)
		if !ok {
			t.Skip.add(rec.ID)
			continue
		}
		t.TotalHours = t.TotalHours.Add(hours)
		switch rec.Status {
		case models.TSStatusSubmitted:
			t.PendingHours = t.PendingHours.Add(hours)
			t.Submitted++
		case models.TSStatusApproved:
			t.ApprovedHours = t.ApprovedHours.Add(hours)
			t.Approved++
		case models.TSStatusRejected:
			t.Rejected++
		}
	}
	return t
}

// ApprovedHours sums approved records only. Kept as its own operation, some
// dashboard views want approved-only totals and must not get an overloaded
// flag on ComputeTotals.
func ApprovedHours(records []dbmodels.Timesheet) (decimal.Decimal, SkipReport) {
	total := decimal.Zero
	skip := SkipReport{}
	for _, rec := range records {
		if rec.Status != models.TSStatusApproved {
			continue
		}
		hours, ok := RecordHours(rec)
		if !ok {
			skip.add(rec.ID)
			continue
		}
		total = total.Add(hours)
	}
	return total, skip
}

// PendingHours sums submitted records only.
func PendingHours(records []dbmodels.Timesheet) (decimal.Decimal, SkipReport) {
	total := decimal.Zero
	skip := SkipReport{}
	for _, rec := range records {
		if rec.Status != models.TSStatusSubmitted {
			continue
		}
		hours, ok := RecordHours(rec)
		if !ok {
			skip.add(rec.ID)
			continue
		}
		total = total.Add(hours)
	}
	return total, skip
}

// BucketByWeek groups records by week-ending date, at most one record per
// week. The store's unique index guarantees one record per employee per
// week; duplicates can still show up in historical data, so the bucketing
// collapses them by most recent update and flags the conflict instead of
// silently summing.
func BucketByWeek(records []dbmodels.Timesheet) (buckets map[string]dbmodels.Timesheet, conflicts int, skip SkipReport) {
	buckets = map[string]dbmodels.Timesheet{}
	for _, rec := range records {
		if _, ok := RecordHours(rec); !ok {
			skip.add(rec.ID)
			continue
		}
		key := rec.WeekEnding.Format("2006-01-02")
		existing, exist := buckets[key]
		if !exist {
			buckets[key] = rec
			continue
		}
		conflicts++
		if rec.UpdatedAt.After(existing.UpdatedAt) {
			buckets[key] = rec
		}
		log.
			WithField("week_ending", key).
			WithField("rec_id", rec.ID).
			WithField("kept_rec_id", buckets[key].ID).
			Warn("duplicate timesheet for one week, keeping the most recently updated")
	}
	return buckets, conflicts, skip
}
