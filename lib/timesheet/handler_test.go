package timesheethandler

import (
	"testing"
	"time"
	timesheetevents "wfm-tools-backend/lib/timesheet/events"
	timesheetstore "wfm-tools-backend/lib/timesheet/store"
	"wfm-tools-backend/models"
	timesheetapimodels "wfm-tools-backend/models/api/timesheet"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	records map[string]*dbmodels.Timesheet
	events  []dbmodels.TimesheetEvent
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]*dbmodels.Timesheet{}}
}

func (f *fakeStore) Create(rec dbmodels.Timesheet) (string, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == rec.EmployeeID && existing.WeekEnding.Equal(rec.WeekEnding) {
			return "", &models.DuplicatePeriodError{
				EmployeeID: rec.EmployeeID,
				WeekEnding: rec.WeekEnding.Format("2006-01-02"),
			}
		}
	}
	f.nextID++
	rec.ID = string(rune('a' + f.nextID - 1))
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	f.records[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeStore) GetByID(spaceID, id string) (*dbmodels.Timesheet, error) {
	rec, ok := f.records[id]
	if !ok || rec.SpaceID != spaceID {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStore) GetByPeriod(spaceID, employeeID string, weekEnding time.Time) (*dbmodels.Timesheet, error) {
	for _, rec := range f.records {
		if rec.SpaceID == spaceID && rec.EmployeeID == employeeID && rec.WeekEnding.Equal(weekEnding) {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	rec, ok := f.records[id]
	if !ok || rec.SpaceID != spaceID {
		return errors.New("record not found")
	}
	for field, value := range updMap {
		switch field {
		case "Status":
			rec.Status = value.(models.TimesheetStatus)
		case "RejectionReason":
			rec.RejectionReason = value.(string)
		case "Description":
			rec.Description = value.(string)
		case "DailyHours":
			rec.DailyHours = value.(dbmodels.DailyHours)
		case "WeekEnding":
			rec.WeekEnding = value.(time.Time)
		case "WeekStarting":
			rec.WeekStarting = value.(time.Time)
		}
	}
	rec.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) Delete(spaceID, id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakeStore) List(spaceID string, filter timesheetapimodels.TsFilter) ([]dbmodels.Timesheet, error) {
	list := []dbmodels.Timesheet{}
	for _, rec := range f.records {
		if rec.SpaceID == spaceID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeStore) ListCount(spaceID string, filter timesheetapimodels.TsFilter) (int64, error) {
	list, _ := f.List(spaceID, filter)
	return int64(len(list)), nil
}

func (f *fakeStore) ListByDateRange(spaceID, employeeID string, from, to time.Time) ([]dbmodels.Timesheet, error) {
	list := []dbmodels.Timesheet{}
	for _, rec := range f.records {
		if rec.SpaceID != spaceID {
			continue
		}
		if employeeID != "" && rec.EmployeeID != employeeID {
			continue
		}
		if rec.WeekEnding.Before(from) || rec.WeekEnding.After(to) {
			continue
		}
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeStore) SaveEvent(rec dbmodels.TimesheetEvent) error {
	f.events = append(f.events, rec)
	return nil
}

func (f *fakeStore) Transaction(fn func(store timesheetstore.Provider) error) error {
	return fn(f)
}

type fakeUserStore struct{}

func (fakeUserStore) Create(rec dbmodels.SpaceUser) (string, error) { return "", nil }
func (fakeUserStore) GetByID(spaceID, id string) (*dbmodels.SpaceUser, error) {
	return nil, nil
}
func (fakeUserStore) FindByEmail(email string) (*dbmodels.SpaceUser, error) { return nil, nil }
func (fakeUserStore) FindByID(id string) (*dbmodels.SpaceUser, error) {
	return &dbmodels.SpaceUser{Email: "employee@example.com"}, nil
}
func (fakeUserStore) Update(spaceID, id string, updMap map[string]interface{}) error { return nil }
func (fakeUserStore) Delete(spaceID, id string) error                                { return nil }
func (fakeUserStore) List(spaceID string) ([]dbmodels.SpaceUser, error)              { return nil, nil }
func (fakeUserStore) ListReviewers(spaceID string) ([]dbmodels.SpaceUser, error) {
	return []dbmodels.SpaceUser{{Email: "manager@example.com"}}, nil
}
func (fakeUserStore) SetLastLogin(id string, at time.Time) error { return nil }

type fakeDispatcher struct {
	events []timesheetevents.Event
}

func (f *fakeDispatcher) Dispatch(event timesheetevents.Event, recipients []string) {
	f.events = append(f.events, event)
}

func newTestHandler() (impl, *fakeStore, *fakeDispatcher) {
	store := newFakeStore()
	dispatcher := &fakeDispatcher{}
	return impl{
		store:      store,
		userStore:  fakeUserStore{},
		dispatcher: dispatcher,
	}, store, dispatcher
}

func validData() timesheetapimodels.TimesheetData {
	return timesheetapimodels.TimesheetData{
		WeekEnding: "2024-03-10",
		DailyHours: map[string]decimal.Decimal{
			"2024-03-04": decimal.NewFromInt(8),
			"2024-03-05": decimal.RequireFromString("7.5"),
		},
		Description: "worked on the reporting module",
	}
}

func TestCreate(t *testing.T) {
	t.Run(`direct submission creates submitted record and emits event`, func(t *testing.T) {
		h, store, dispatcher := newTestHandler()
		id, err := h.Create("s1", "u1", validData(), true)
		require.Nil(t, err)
		rec := store.records[id]
		require.Equal(t, models.TSStatusSubmitted, rec.Status)
		require.Equal(t, "2024-03-04", rec.WeekStarting.Format("2006-01-02"))
		require.Equal(t, "2024-03-10", rec.WeekEnding.Format("2006-01-02"))
		require.Len(t, dispatcher.events, 1)
		require.Equal(t, models.TSStatusSubmitted, dispatcher.events[0].ToStatus)
		require.Len(t, store.events, 1)
	})

	t.Run(`week ending normalized to sunday`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		data := validData()
		data.WeekEnding = "2024-03-06" // a wednesday
		id, err := h.Create("s1", "u1", data, false)
		require.Nil(t, err)
		require.Equal(t, "2024-03-10", store.records[id].WeekEnding.Format("2006-01-02"))
	})

	t.Run(`second submission for same week fails with duplicate error`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		firstID, err := h.Create("s1", "u1", validData(), true)
		require.Nil(t, err)

		_, err = h.Create("s1", "u1", validData(), true)
		var dupErr *models.DuplicatePeriodError
		require.ErrorAs(t, err, &dupErr)
		require.Equal(t, "2024-03-10", dupErr.WeekEnding)
		// first record untouched
		require.Equal(t, models.TSStatusSubmitted, store.records[firstID].Status)
		require.Len(t, store.records, 1)
	})

	t.Run(`same week for a different employee is fine`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		_, err := h.Create("s1", "u1", validData(), true)
		require.Nil(t, err)
		_, err = h.Create("s1", "u2", validData(), true)
		require.Nil(t, err)
	})

	t.Run(`submission without description and hours reports every violation`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		data := timesheetapimodels.TimesheetData{
			WeekEnding: "2024-03-10",
			DailyHours: map[string]decimal.Decimal{"2024-03-04": decimal.Zero},
		}
		_, err := h.Create("s1", "u1", data, true)
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Violations, 2)
	})

	t.Run(`draft allows missing description`, func(t *testing.T) {
		h, store, dispatcher := newTestHandler()
		data := timesheetapimodels.TimesheetData{WeekEnding: "2024-03-10"}
		id, err := h.Create("s1", "u1", data, false)
		require.Nil(t, err)
		require.Equal(t, models.TSStatusDraft, store.records[id].Status)
		require.Empty(t, dispatcher.events)
		require.Empty(t, store.events)
	})

	t.Run(`hours above 24 rejected even for draft`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		data := validData()
		data.DailyHours["2024-03-06"] = decimal.NewFromInt(25)
		_, err := h.Create("s1", "u1", data, false)
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestLifecycleTransitions(t *testing.T) {
	t.Run(`reject requires a reason`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		id, err := h.Create("s1", "u1", validData(), true)
		require.Nil(t, err)

		err = h.Reject("s1", id, "boss", "")
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run(`reject stores the reason verbatim`, func(t *testing.T) {
		h, store, dispatcher := newTestHandler()
		id, err := h.Create("s1", "u1", validData(), true)
		require.Nil(t, err)

		err = h.Reject("s1", id, "boss", "missing receipts")
		require.Nil(t, err)
		rec := store.records[id]
		require.Equal(t, models.TSStatusRejected, rec.Status)
		require.Equal(t, "missing receipts", rec.RejectionReason)
		last := dispatcher.events[len(dispatcher.events)-1]
		require.Equal(t, models.TSStatusRejected, last.ToStatus)
		require.Equal(t, "missing receipts", last.Reason)
	})

	t.Run(`approved is terminal`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		id, err := h.Create("s1", "u1", validData(), true)
		require.Nil(t, err)
		require.Nil(t, h.Approve("s1", id, "boss"))
		require.Equal(t, models.TSStatusApproved, store.records[id].Status)

		require.NotNil(t, h.Approve("s1", id, "boss"))
		require.NotNil(t, h.Reject("s1", id, "boss", "too late"))
		require.NotNil(t, h.Submit("s1", "u1", id))
		require.Equal(t, models.TSStatusApproved, store.records[id].Status)
	})

	t.Run(`resubmission clears the rejection reason`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		id, err := h.Create("s1", "u1", validData(), true)
		require.Nil(t, err)
		require.Nil(t, h.Reject("s1", id, "boss", "missing receipts"))

		require.Nil(t, h.Submit("s1", "u1", id))
		rec := store.records[id]
		require.Equal(t, models.TSStatusSubmitted, rec.Status)
		require.Empty(t, rec.RejectionReason)
	})

	t.Run(`draft submit validates content`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		id, err := h.Create("s1", "u1", timesheetapimodels.TimesheetData{WeekEnding: "2024-03-10"}, false)
		require.Nil(t, err)

		err = h.Submit("s1", "u1", id)
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run(`only the owner may submit`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		id, err := h.Create("s1", "u1", validData(), false)
		require.Nil(t, err)
		require.NotNil(t, h.Submit("s1", "other", id))
	})

	t.Run(`every transition is audited`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		id, err := h.Create("s1", "u1", validData(), true)
		require.Nil(t, err)
		require.Nil(t, h.Reject("s1", id, "boss", "redo"))
		require.Nil(t, h.Submit("s1", "u1", id))
		require.Nil(t, h.Approve("s1", id, "boss"))
		require.Len(t, store.events, 4)
		require.Equal(t, models.TSStatusApproved, store.events[3].ToStatus)
	})
}

func TestDeleteRules(t *testing.T) {
	t.Run(`draft can be deleted`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		id, err := h.Create("s1", "u1", validData(), false)
		require.Nil(t, err)
		require.Nil(t, h.Delete("s1", "u1", id))
		require.Empty(t, store.records)
	})

	t.Run(`submitted records survive delete attempts`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		id, err := h.Create("s1", "u1", validData(), true)
		require.Nil(t, err)
		require.NotNil(t, h.Delete("s1", "u1", id))
		require.Len(t, store.records, 1)
	})
}

func TestMonthlySummary(t *testing.T) {
	t.Run(`buckets cover every week of the month`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		_, err := h.Create("s1", "u1", validData(), true)
		require.Nil(t, err)

		view, err := h.MonthlySummary("s1", "u1", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
		require.Nil(t, err)
		require.Equal(t, "2024-03", view.Month)
		require.Len(t, view.Weeks, 5)
		require.Equal(t, "2024-02-26", view.Weeks[0].WeekStarting)
		require.True(t, decimal.NewFromInt(168).Equal(view.ExpectedHours), "expected %s", view.ExpectedHours)

		filled := view.Weeks[1]
		require.Equal(t, "2024-03-10", filled.WeekEnding)
		require.True(t, decimal.RequireFromString("15.5").Equal(filled.TotalHours), "got %s", filled.TotalHours)
		require.Equal(t, models.TSStatusSubmitted, filled.Status)
		// untouched weeks stay empty
		require.True(t, view.Weeks[2].TotalHours.IsZero())
		require.Empty(t, view.Weeks[2].Status)
	})
}

func TestDashboard(t *testing.T) {
	h, store, _ := newTestHandler()
	id, err := h.Create("s1", "u1", validData(), true)
	require.Nil(t, err)
	require.Nil(t, h.Approve("s1", id, "boss"))

	data := validData()
	data.WeekEnding = "2024-03-17"
	data.DailyHours = map[string]decimal.Decimal{"2024-03-11": decimal.NewFromInt(6)}
	_, err = h.Create("s1", "u1", data, true)
	require.Nil(t, err)

	// a malformed historical record must not break the dashboard
	store.records["broken"] = &dbmodels.Timesheet{
		BaseSpaceModel: dbmodels.BaseSpaceModel{BaseModel: dbmodels.BaseModel{ID: "broken"}, SpaceID: "s1"},
		EmployeeID:     "u1",
		WeekEnding:     time.Date(2024, time.March, 24, 0, 0, 0, 0, time.UTC),
		Status:         models.TSStatusSubmitted,
	}

	view, err := h.Dashboard("s1", "u1", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.Nil(t, err)
	require.True(t, decimal.RequireFromString("21.5").Equal(view.TotalHours), "total %s", view.TotalHours)
	require.True(t, decimal.RequireFromString("15.5").Equal(view.ApprovedHours), "approved %s", view.ApprovedHours)
	require.True(t, decimal.NewFromInt(6).Equal(view.PendingHours), "pending %s", view.PendingHours)
	require.Equal(t, 1, view.Approved)
	require.Equal(t, 1, view.Submitted)
	require.Equal(t, 1, view.SkippedRecords)
}
