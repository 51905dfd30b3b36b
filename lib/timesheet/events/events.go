package timesheetevents

import (
	"fmt"
	"time"
	"wfm-tools-backend/lib/smtp"
	"wfm-tools-backend/models"

	log "github.com/sirupsen/logrus"
)

// Event describes one timesheet status transition. Consumed by the
// notification dispatcher; delivery is best-effort and never rolls back the
// transition that produced it.
type Event struct {
	TimesheetID string
	SpaceID     string
	EmployeeID  string
	ActorID     string
	FromStatus  models.TimesheetStatus
	ToStatus    models.TimesheetStatus
	Reason      string
	WeekEnding  time.Time
	Timestamp   time.Time
}

type Dispatcher interface {
	Dispatch(event Event, recipients []string)
}

var Instance Dispatcher

func NewHandler() {
	Instance = impl{
		sender: smtp.Instance,
	}
}

type impl struct {
	sender smtp.Provider
}

func (i impl) Dispatch(event Event, recipients []string) {
	logger := log.
		WithField("timesheet_id", event.TimesheetID).
		WithField("from_status", event.FromStatus).
		WithField("to_status", event.ToStatus)
	subject, message := buildMail(event)
	for _, to := range recipients {
		if to == "" {
			continue
		}
		if err := i.sender.SendEMail(models.SystemUser, to, message, subject); err != nil {
			// best-effort: the status transition already happened
			logger.WithError(err).WithField("recipient", to).Error("failed to send lifecycle notification")
		}
	}
	logger.Info("lifecycle event dispatched")
}

func buildMail(event Event) (subject, message string) {
	week := event.WeekEnding.Format("2006-01-02")
	switch event.ToStatus {
	case models.TSStatusSubmitted:
		subject = "Timesheet submitted"
		message = fmt.Sprintf("A timesheet for the week ending %s was submitted and awaits review.", week)
	case models.TSStatusApproved:
		subject = "Timesheet approved"
		message = fmt.Sprintf("Your timesheet for the week ending %s was approved.", week)
	case models.TSStatusRejected:
		subject = "Timesheet rejected"
		message = fmt.Sprintf("Your timesheet for the week ending %s was rejected: %s", week, event.Reason)
	default:
		subject = "Timesheet updated"
		message = fmt.Sprintf("Timesheet for the week ending %s changed status to %s.", week, event.ToStatus.ToHuman())
	}
	return subject, message
}
