package timesheetapimodels

import (
	"fmt"
	"strings"
	"time"
	"wfm-tools-backend/models"
	apimodels "wfm-tools-backend/models/api"
	filesapimodels "wfm-tools-backend/models/api/files"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/shopspring/decimal"
)

const DateFormat = "2006-01-02"

var maxDayHours = decimal.NewFromInt(24)

type TimesheetData struct {
	WeekEnding  string                     `json:"week_ending"`
	DailyHours  map[string]decimal.Decimal `json:"daily_hours"`
	Description string                     `json:"description"`
}

// Validate checks the draft-level constraints only: dates must parse and
// hours must stay within [0,24]. Submission constraints are checked by
// ValidateForSubmit.
func (r TimesheetData) Validate() error {
	violations := r.baseViolations()
	if len(violations) != 0 {
		return models.NewValidationError(violations...)
	}
	return nil
}

// ValidateForSubmit collects every violated submission constraint instead of
// stopping at the first one.
func (r TimesheetData) ValidateForSubmit() error {
	violations := r.baseViolations()
	if strings.TrimSpace(r.WeekEnding) == "" {
		violations = append(violations, "week_ending is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		violations = append(violations, "description is required")
	}
	hasHours := false
	for _, h := range r.DailyHours {
		if h.IsPositive() {
			hasHours = true
			break
		}
	}
	if !hasHours {
		violations = append(violations, "at least one daily hours entry greater than zero is required")
	}
	if len(violations) != 0 {
		return models.NewValidationError(violations...)
	}
	return nil
}

func (r TimesheetData) baseViolations() []string {
	violations := []string{}
	if r.WeekEnding != "" {
		if _, err := time.Parse(DateFormat, r.WeekEnding); err != nil {
			violations = append(violations, fmt.Sprintf("week_ending %q is not a valid date", r.WeekEnding))
		}
	}
	for day, hours := range r.DailyHours {
		if _, err := time.Parse(DateFormat, day); err != nil {
			violations = append(violations, fmt.Sprintf("daily_hours key %q is not a valid date", day))
		}
		if hours.IsNegative() || hours.GreaterThan(maxDayHours) {
			violations = append(violations, fmt.Sprintf("hours for %s must be within [0,24]", day))
		}
	}
	return violations
}

func (r TimesheetData) GetWeekEnding() (time.Time, error) {
	return time.Parse(DateFormat, r.WeekEnding)
}

type RejectData struct {
	Reason string `json:"reason"`
}

func (r RejectData) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return models.NewValidationError("rejection reason is required")
	}
	return nil
}

type TsFilter struct {
	Month      string                 `json:"month"` // any date within the target month, 2006-01-02
	Status     models.TimesheetStatus `json:"status"`
	EmployeeID string                 `json:"employee_id"`
	apimodels.Pagination
}

type TimesheetView struct {
	ID              string                     `json:"id"`
	EmployeeID      string                     `json:"employee_id"`
	EmployeeName    string                     `json:"employee_name,omitempty"`
	WeekStarting    string                     `json:"week_starting"`
	WeekEnding      string                     `json:"week_ending"`
	DailyHours      map[string]decimal.Decimal `json:"daily_hours"`
	TotalHours      decimal.Decimal            `json:"total_hours"`
	Description     string                     `json:"description"`
	Status          models.TimesheetStatus     `json:"status"`
	StatusName      string                     `json:"status_name"`
	RejectionReason string                     `json:"rejection_reason,omitempty"`
	Documents       []filesapimodels.FileView  `json:"documents,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

func TimesheetConvert(rec dbmodels.Timesheet) TimesheetView {
	view := TimesheetView{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		WeekStarting:    rec.WeekStarting.Format(DateFormat),
		WeekEnding:      rec.WeekEnding.Format(DateFormat),
		DailyHours:      rec.DailyHours,
		TotalHours:      rec.TotalHours().Round(2),
		Description:     rec.Description,
		Status:          rec.Status,
		StatusName:      rec.Status.ToHuman(),
		RejectionReason: rec.RejectionReason,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
	if rec.Employee != nil {
		view.EmployeeName = rec.Employee.GetFullName()
	}
	for _, doc := range rec.Documents {
		view.Documents = append(view.Documents, filesapimodels.FileConvert(doc))
	}
	return view
}
