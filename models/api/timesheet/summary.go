package timesheetapimodels

import (
	"wfm-tools-backend/models"

	"github.com/shopspring/decimal"
)

// PeriodBucketView is one calendar week of the monthly summary. Derived,
// never persisted.
type PeriodBucketView struct {
	WeekStarting string                    `json:"week_starting"`
	WeekEnding   string                    `json:"week_ending"`
	TotalHours   decimal.Decimal           `json:"total_hours"`
	Status       models.TimesheetStatus    `json:"status,omitempty"`
	StatusName   string                    `json:"status_name,omitempty"`
	Description  string                    `json:"description,omitempty"`
	TimesheetID  string                    `json:"timesheet_id,omitempty"`
	Documents    int                       `json:"documents"`
}

type MonthlySummaryView struct {
	Month          string             `json:"month"`
	Weeks          []PeriodBucketView `json:"weeks"`
	ExpectedHours  decimal.Decimal    `json:"expected_hours"`
	TotalHours     decimal.Decimal    `json:"total_hours"`
	ApprovedHours  decimal.Decimal    `json:"approved_hours"`
	PendingHours   decimal.Decimal    `json:"pending_hours"`
	SkippedRecords int                `json:"skipped_records,omitempty"`
}

type DashboardView struct {
	TotalHours     decimal.Decimal `json:"total_hours"`
	ApprovedHours  decimal.Decimal `json:"approved_hours"`
	PendingHours   decimal.Decimal `json:"pending_hours"`
	ExpectedHours  decimal.Decimal `json:"expected_hours"`
	Submitted      int             `json:"submitted"`
	Approved       int             `json:"approved"`
	Rejected       int             `json:"rejected"`
	SkippedRecords int             `json:"skipped_records,omitempty"`
}
