package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"
	"wfm-tools-backend/models"

	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"
)

// DailyHours maps an ISO date (2006-01-02) to hours worked that day.
// Stored as a jsonb column.
type DailyHours map[string]decimal.Decimal

func (j DailyHours) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

// Scan tolerates malformed stored payloads: a record with broken hours data
// must not abort list queries, the aggregator skips it instead.
func (j *DailyHours) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		*j = nil
		return nil
	}
	if err := json.Unmarshal(raw, j); err != nil {
		log.WithError(err).Warn("broken daily_hours payload, record will be skipped by aggregation")
		*j = nil
	}
	return nil
}

type Timesheet struct {
	BaseSpaceModel
	EmployeeID      string `gorm:"uniqueIndex:idx_timesheet_period"`
	Employee        *SpaceUser `gorm:"foreignKey:EmployeeID"`
	WeekStarting    time.Time  `gorm:"type:date"`
	WeekEnding      time.Time  `gorm:"type:date;uniqueIndex:idx_timesheet_period"`
	DailyHours      DailyHours `gorm:"type:jsonb"`
	Description     string     `gorm:"type:varchar(2000)"`
	Status          models.TimesheetStatus `gorm:"type:varchar(20);index"`
	RejectionReason string     `gorm:"type:varchar(2000)"`
	Documents       []FileStorage `gorm:"foreignKey:TimesheetID"`
}

// TotalHours is always derived from the per-day entries, never persisted.
func (t Timesheet) TotalHours() decimal.Decimal {
	total := decimal.Zero
	for _, h := range t.DailyHours {
		total = total.Add(h)
	}
	return total
}
