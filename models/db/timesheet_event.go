package dbmodels

import (
	"wfm-tools-backend/models"
)

// TimesheetEvent is the persisted audit trail of lifecycle transitions.
// One row per status change, written in the same transaction as the change.
type TimesheetEvent struct {
	BaseSpaceModel
	TimesheetID string `gorm:"index"`
	EmployeeID  string `gorm:"index"`
	ActorID     string
	FromStatus  models.TimesheetStatus `gorm:"type:varchar(20)"`
	ToStatus    models.TimesheetStatus `gorm:"type:varchar(20)"`
	Reason      string                 `gorm:"type:varchar(2000)"`
}
