package timesheethandler

import (
	"bytes"
	"fmt"
	"time"
	"wfm-tools-backend/db"
	xlsexport "wfm-tools-backend/lib/export/xls"
	"wfm-tools-backend/lib/period"
	timesheetevents "wfm-tools-backend/lib/timesheet/events"
	timesheetstore "wfm-tools-backend/lib/timesheet/store"
	timesheetsummary "wfm-tools-backend/lib/timesheet/summary"
	spaceusersstore "wfm-tools-backend/lib/space/users/store"
	"wfm-tools-backend/models"
	timesheetapimodels "wfm-tools-backend/models/api/timesheet"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(spaceID, employeeID string, data timesheetapimodels.TimesheetData, submit bool) (id string, err error)
	GetByID(spaceID, id string) (view timesheetapimodels.TimesheetView, err error)
	Update(spaceID, employeeID, id string, data timesheetapimodels.TimesheetData) error
	Delete(spaceID, employeeID, id string) error
	List(spaceID string, filter timesheetapimodels.TsFilter) (list []timesheetapimodels.TimesheetView, rowCount int64, err error)
	Submit(spaceID, employeeID, id string) error
	Approve(spaceID, id, reviewerID string) error
	Reject(spaceID, id, reviewerID, reason string) error
	MonthlySummary(spaceID, employeeID string, month time.Time) (view timesheetapimodels.MonthlySummaryView, err error)
	Dashboard(spaceID, employeeID string, month time.Time) (view timesheetapimodels.DashboardView, err error)
	Export(spaceID, employeeID string, month time.Time) (file *bytes.Buffer, fileName string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      timesheetstore.NewInstance(db.DB),
		userStore:  spaceusersstore.NewInstance(db.DB),
		dispatcher: timesheetevents.Instance,
	}
}

type impl struct {
	store      timesheetstore.Provider
	userStore  spaceusersstore.Provider
	dispatcher timesheetevents.Dispatcher
}

func (i impl) Create(spaceID, employeeID string, data timesheetapimodels.TimesheetData, submit bool) (id string, err error) {
	logger := log.WithField("space_id", spaceID).WithField("user_id", employeeID)
	if submit {
		err = data.ValidateForSubmit()
	} else {
		err = data.Validate()
	}
	if err != nil {
		return "", err
	}
	if data.WeekEnding == "" {
		return "", models.NewValidationError("week_ending is required")
	}
	weekEnding, err := data.GetWeekEnding()
	if err != nil {
		return "", models.NewValidationError("week_ending is not a valid date")
	}
	// normalize to the canonical Monday..Sunday reporting week
	weekEnding = period.EndOfWeek(weekEnding, time.Monday)
	weekStarting := period.StartOfWeek(weekEnding, time.Monday)

	// pre-flight duplicate check; the DB unique index remains authoritative
	existing, err := i.store.GetByPeriod(spaceID, employeeID, weekEnding)
	if err != nil {
		logger.WithError(err).Error("failed to check for an existing timesheet")
		return "", err
	}
	if existing != nil {
		return "", &models.DuplicatePeriodError{
			EmployeeID: employeeID,
			WeekEnding: weekEnding.Format(timesheetapimodels.DateFormat),
		}
	}

	status := models.TSStatusDraft
	if submit {
		status = models.TSStatusSubmitted
	}
	rec := dbmodels.Timesheet{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		EmployeeID:   employeeID,
		WeekStarting: weekStarting,
		WeekEnding:   weekEnding,
		DailyHours:   dbmodels.DailyHours(data.DailyHours),
		Description:  data.Description,
		Status:       status,
	}
	err = i.store.Transaction(func(store timesheetstore.Provider) error {
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		if !submit {
			return nil
		}
		return store.SaveEvent(dbmodels.TimesheetEvent{
			BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
			TimesheetID:    id,
			EmployeeID:     employeeID,
			ActorID:        employeeID,
			FromStatus:     models.TSStatusDraft,
			ToStatus:       models.TSStatusSubmitted,
		})
	})
	if err != nil {
		if isDomainError(err) {
			return "", err
		}
		logger.WithError(err).Error("failed to create timesheet")
		return "", err
	}
	logger.WithField("rec_id", id).Info("timesheet created")
	if submit {
		i.notify(timesheetevents.Event{
			TimesheetID: id,
			SpaceID:     spaceID,
			EmployeeID:  employeeID,
			ActorID:     employeeID,
			FromStatus:  models.TSStatusDraft,
			ToStatus:    models.TSStatusSubmitted,
			WeekEnding:  weekEnding,
			Timestamp:   time.Now(),
		})
	}
	return id, nil
}

func (i impl) GetByID(spaceID, id string) (timesheetapimodels.TimesheetView, error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return timesheetapimodels.TimesheetView{}, err
	}
	return timesheetapimodels.TimesheetConvert(*rec), nil
}

func (i impl) Update(spaceID, employeeID, id string, data timesheetapimodels.TimesheetData) error {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	if err := data.Validate(); err != nil {
		return err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.EmployeeID != employeeID {
		return models.NewDomainError("timesheet belongs to another employee")
	}
	if !rec.Status.IsEditable() {
		return models.NewDomainError("timesheet in status %v cannot be edited", rec.Status.ToHuman())
	}
	updMap := map[string]interface{}{
		"DailyHours":  dbmodels.DailyHours(data.DailyHours),
		"Description": data.Description,
	}
	if data.WeekEnding != "" {
		weekEnding, err := data.GetWeekEnding()
		if err != nil {
			return models.NewValidationError("week_ending is not a valid date")
		}
		weekEnding = period.EndOfWeek(weekEnding, time.Monday)
		if !weekEnding.Equal(rec.WeekEnding) {
			existing, err := i.store.GetByPeriod(spaceID, employeeID, weekEnding)
			if err != nil {
				return err
			}
			if existing != nil {
				return &models.DuplicatePeriodError{
					EmployeeID: employeeID,
					WeekEnding: weekEnding.Format(timesheetapimodels.DateFormat),
				}
			}
			updMap["WeekEnding"] = weekEnding
			updMap["WeekStarting"] = period.StartOfWeek(weekEnding, time.Monday)
		}
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to update timesheet")
		return err
	}
	logger.Info("timesheet updated")
	return nil
}

// Delete removes draft timesheets only. Once submitted a timesheet is an
// audit record and stays forever.
func (i impl) Delete(spaceID, employeeID, id string) error {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.EmployeeID != employeeID {
		return models.NewDomainError("timesheet belongs to another employee")
	}
	if rec.Status != models.TSStatusDraft {
		return models.NewDomainError("only draft timesheets can be deleted")
	}
	err = i.store.Delete(spaceID, id)
	if err != nil {
		logger.WithError(err).Error("failed to delete timesheet")
		return err
	}
	logger.Info("timesheet deleted")
	return nil
}

func (i impl) List(spaceID string, filter timesheetapimodels.TsFilter) (list []timesheetapimodels.TimesheetView, rowCount int64, err error) {
	logger := log.WithField("space_id", spaceID)
	rowCount, err = i.store.ListCount(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []timesheetapimodels.TimesheetView{}, rowCount, nil
	}
	recList, err := i.store.List(spaceID, filter)
	if err != nil {
		logger.WithError(err).Error("failed to list timesheets")
		return nil, 0, err
	}
	result := make([]timesheetapimodels.TimesheetView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, timesheetapimodels.TimesheetConvert(rec))
	}
	return result, rowCount, nil
}

// Submit moves a draft or rejected timesheet to submitted. Resubmission is
// validated like a fresh submission and clears the stored rejection reason.
func (i impl) Submit(spaceID, employeeID, id string) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.EmployeeID != employeeID {
		return models.NewDomainError("timesheet belongs to another employee")
	}
	data := timesheetapimodels.TimesheetData{
		WeekEnding:  rec.WeekEnding.Format(timesheetapimodels.DateFormat),
		DailyHours:  rec.DailyHours,
		Description: rec.Description,
	}
	if err := data.ValidateForSubmit(); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"RejectionReason": "",
	}
	return i.transition(rec, employeeID, models.TSStatusSubmitted, "", updMap)
}

func (i impl) Approve(spaceID, id, reviewerID string) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	return i.transition(rec, reviewerID, models.TSStatusApproved, "", nil)
}

func (i impl) Reject(spaceID, id, reviewerID, reason string) error {
	data := timesheetapimodels.RejectData{Reason: reason}
	if err := data.Validate(); err != nil {
		return err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"RejectionReason": reason,
	}
	return i.transition(rec, reviewerID, models.TSStatusRejected, reason, updMap)
}

// transition applies a status change atomically with its audit event and
// dispatches the notification afterwards. Notification failures never roll
// back the transition.
func (i impl) transition(rec *dbmodels.Timesheet, actorID string, to models.TimesheetStatus, reason string, extraUpd map[string]interface{}) error {
	logger := log.
		WithField("space_id", rec.SpaceID).
		WithField("rec_id", rec.ID).
		WithField("new_status", to)
	from := rec.Status
	if !from.IsAllowChange(to) {
		return models.NewDomainError("status change from %v to %v is not allowed", from.ToHuman(), to.ToHuman())
	}
	updMap := map[string]interface{}{
		"Status": to,
	}
	for k, v := range extraUpd {
		updMap[k] = v
	}
	err := i.store.Transaction(func(store timesheetstore.Provider) error {
		if err := store.Update(rec.SpaceID, rec.ID, updMap); err != nil {
			return err
		}
		return store.SaveEvent(dbmodels.TimesheetEvent{
			BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: rec.SpaceID},
			TimesheetID:    rec.ID,
			EmployeeID:     rec.EmployeeID,
			ActorID:        actorID,
			FromStatus:     from,
			ToStatus:       to,
			Reason:         reason,
		})
	})
	if err != nil {
		logger.WithError(err).Error("failed to change timesheet status")
		return err
	}
	logger.Info("timesheet status changed")
	i.notify(timesheetevents.Event{
		TimesheetID: rec.ID,
		SpaceID:     rec.SpaceID,
		EmployeeID:  rec.EmployeeID,
		ActorID:     actorID,
		FromStatus:  from,
		ToStatus:    to,
		Reason:      reason,
		WeekEnding:  rec.WeekEnding,
		Timestamp:   time.Now(),
	})
	return nil
}

// notify resolves recipients and hands the event to the dispatcher:
// the submitting employee hears about review outcomes, reviewers hear
// about submissions.
func (i impl) notify(event timesheetevents.Event) {
	logger := log.WithField("timesheet_id", event.TimesheetID)
	recipients := []string{}
	switch event.ToStatus {
	case models.TSStatusSubmitted:
		reviewers, err := i.userStore.ListReviewers(event.SpaceID)
		if err != nil {
			logger.WithError(err).Error("failed to resolve reviewer recipients")
			return
		}
		for _, reviewer := range reviewers {
			recipients = append(recipients, reviewer.Email)
		}
	case models.TSStatusApproved, models.TSStatusRejected:
		employee, err := i.userStore.FindByID(event.EmployeeID)
		if err != nil || employee == nil {
			logger.WithError(err).Error("failed to resolve employee recipient")
			return
		}
		recipients = append(recipients, employee.Email)
	}
	i.dispatcher.Dispatch(event, recipients)
}

func (i impl) MonthlySummary(spaceID, employeeID string, month time.Time) (timesheetapimodels.MonthlySummaryView, error) {
	logger := log.WithField("space_id", spaceID).WithField("user_id", employeeID)
	weeks := period.WeeksInMonth(month, time.Monday)
	firstEnd := period.EndOfWeek(weeks[0], time.Monday)
	lastEnd := period.EndOfWeek(weeks[len(weeks)-1], time.Monday)
	records, err := i.store.ListByDateRange(spaceID, employeeID, firstEnd, lastEnd)
	if err != nil {
		logger.WithError(err).Error("failed to load timesheets for summary")
		return timesheetapimodels.MonthlySummaryView{}, err
	}
	buckets, _, _ := timesheetsummary.BucketByWeek(records)
	totals := timesheetsummary.ComputeTotals(records)
	monthStart, monthEnd := period.MonthBounds(month)

	view := timesheetapimodels.MonthlySummaryView{
		Month:          monthStart.Format("2006-01"),
		ExpectedHours:  period.ExpectedWorkingHours(monthStart, monthEnd, period.DefaultHoursPerDay),
		TotalHours:     totals.TotalHours.Round(2),
		ApprovedHours:  totals.ApprovedHours.Round(2),
		PendingHours:   totals.PendingHours.Round(2),
		SkippedRecords: totals.Skip.Skipped,
	}
	for _, week := range weeks {
		weekEnd := period.EndOfWeek(week, time.Monday)
		bucket := timesheetapimodels.PeriodBucketView{
			WeekStarting: week.Format(timesheetapimodels.DateFormat),
			WeekEnding:   weekEnd.Format(timesheetapimodels.DateFormat),
		}
		if rec, exist := buckets[weekEnd.Format(timesheetapimodels.DateFormat)]; exist {
			hours, _ := timesheetsummary.RecordHours(rec)
			bucket.TotalHours = hours.Round(2)
			bucket.Status = rec.Status
			bucket.StatusName = rec.Status.ToHuman()
			bucket.Description = rec.Description
			bucket.TimesheetID = rec.ID
			bucket.Documents = len(rec.Documents)
		}
		view.Weeks = append(view.Weeks, bucket)
	}
	return view, nil
}

func (i impl) Dashboard(spaceID, employeeID string, month time.Time) (timesheetapimodels.DashboardView, error) {
	logger := log.WithField("space_id", spaceID)
	monthStart, monthEnd := period.MonthBounds(month)
	records, err := i.store.ListByDateRange(spaceID, employeeID, monthStart, monthEnd)
	if err != nil {
		logger.WithError(err).Error("failed to load timesheets for dashboard")
		return timesheetapimodels.DashboardView{}, err
	}
	totals := timesheetsummary.ComputeTotals(records)
	return timesheetapimodels.DashboardView{
		TotalHours:     totals.TotalHours.Round(2),
		ApprovedHours:  totals.ApprovedHours.Round(2),
		PendingHours:   totals.PendingHours.Round(2),
		ExpectedHours:  period.ExpectedWorkingHours(monthStart, monthEnd, period.DefaultHoursPerDay),
		Submitted:      totals.Submitted,
		Approved:       totals.Approved,
		Rejected:       totals.Rejected,
		SkippedRecords: totals.Skip.Skipped,
	}, nil
}

// Export renders one month of timesheets into a spreadsheet. An empty
// employeeID exports the whole space.
func (i impl) Export(spaceID, employeeID string, month time.Time) (*bytes.Buffer, string, error) {
	logger := log.WithField("space_id", spaceID)
	monthStart, monthEnd := period.MonthBounds(month)
	records, err := i.store.ListByDateRange(spaceID, employeeID, monthStart, monthEnd)
	if err != nil {
		logger.WithError(err).Error("failed to load timesheets for export")
		return nil, "", err
	}
	file, err := xlsexport.Instance.ExportTimesheetList(records)
	if err != nil {
		logger.WithError(err).Error("failed to export timesheets")
		return nil, "", err
	}
	fileName := fmt.Sprintf("timesheets-%s.xlsx", monthStart.Format("2006-01"))
	return file, fileName, nil
}

func (i impl) getRec(spaceID, id string) (*dbmodels.Timesheet, error) {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		logger.WithError(err).Error("failed to get timesheet")
		return nil, err
	}
	if rec == nil {
		return nil, models.NewDomainError("timesheet not found")
	}
	return rec, nil
}

func isDomainError(err error) bool {
	var validationErr *models.ValidationError
	var duplicateErr *models.DuplicatePeriodError
	var domainErr *models.DomainError
	return errors.As(err, &validationErr) || errors.As(err, &duplicateErr) ||
		errors.As(err, &domainErr)
}
