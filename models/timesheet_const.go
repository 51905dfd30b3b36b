package models

type TimesheetStatus string

const (
	TSStatusDraft     TimesheetStatus = "draft"
	TSStatusSubmitted TimesheetStatus = "submitted"
	TSStatusApproved  TimesheetStatus = "approved"
	TSStatusRejected  TimesheetStatus = "rejected"
)

var tsStatusHumanName = map[TimesheetStatus]string{
	TSStatusDraft:     "Draft",
	TSStatusSubmitted: "Submitted",
	TSStatusApproved:  "Approved",
	TSStatusRejected:  "Rejected",
}

func (s TimesheetStatus) ToHuman() string {
	if human, exist := tsStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// tsAllowedTransitions lists every permitted status change. Approved is
// terminal: approved timesheets are immutable audit records.
var tsAllowedTransitions = map[TimesheetStatus][]TimesheetStatus{
	TSStatusDraft:     {TSStatusSubmitted},
	TSStatusSubmitted: {TSStatusApproved, TSStatusRejected},
	TSStatusRejected:  {TSStatusSubmitted},
	TSStatusApproved:  {},
}

func (s TimesheetStatus) IsAllowChange(to TimesheetStatus) bool {
	for _, allowed := range tsAllowedTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsEditable reports whether the owning employee may still change the
// timesheet content.
func (s TimesheetStatus) IsEditable() bool {
	return s == TSStatusDraft || s == TSStatusRejected
}

func (s TimesheetStatus) IsTerminal() bool {
	return s == TSStatusApproved
}
