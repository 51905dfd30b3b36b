package timesheetstore

import (
	"strings"
	"time"
	"wfm-tools-backend/models"
	timesheetapimodels "wfm-tools-backend/models/api/timesheet"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Timesheet) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.Timesheet, err error)
	GetByPeriod(spaceID, employeeID string, weekEnding time.Time) (rec *dbmodels.Timesheet, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
	List(spaceID string, filter timesheetapimodels.TsFilter) (list []dbmodels.Timesheet, err error)
	ListCount(spaceID string, filter timesheetapimodels.TsFilter) (count int64, err error)
	ListByDateRange(spaceID, employeeID string, from, to time.Time) (list []dbmodels.Timesheet, err error)
	SaveEvent(rec dbmodels.TimesheetEvent) error
	// Transaction runs fn against a store bound to one database transaction.
	Transaction(fn func(store Provider) error) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Timesheet) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		// the unique index on (employee_id, week_ending) is the source of
		// truth for the one-timesheet-per-week invariant; the handler's
		// pre-flight check is only a UX optimization
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "idx_timesheet_period") {
			return "", &models.DuplicatePeriodError{
				EmployeeID: rec.EmployeeID,
				WeekEnding: rec.WeekEnding.Format("2006-01-02"),
			}
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Timesheet, error) {
	rec := dbmodels.Timesheet{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Employee").
		Preload("Documents").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByPeriod(spaceID, employeeID string, weekEnding time.Time) (*dbmodels.Timesheet, error) {
	rec := dbmodels.Timesheet{}
	err := i.db.
		Where("space_id = ?", spaceID).
		Where("employee_id = ?", employeeID).
		Where("week_ending = ?", weekEnding).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Timesheet{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("record not found")
	}
	err := tx.Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.Timesheet{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) listQuery(spaceID string, filter timesheetapimodels.TsFilter) (*gorm.DB, error) {
	tx := i.db.
		Model(&dbmodels.Timesheet{}).
		Where("space_id = ?", spaceID)
	if filter.EmployeeID != "" {
		tx = tx.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Month != "" {
		ref, err := time.Parse(timesheetapimodels.DateFormat, filter.Month)
		if err != nil {
			return nil, errors.New("month is not a valid date")
		}
		monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)
		// filter on week_ending: boundary weeks belong to the month they end in
		tx = tx.Where("week_ending >= ? AND week_ending < ?", monthStart, monthEnd)
	}
	return tx, nil
}

func (i impl) List(spaceID string, filter timesheetapimodels.TsFilter) (list []dbmodels.Timesheet, err error) {
	tx, err := i.listQuery(spaceID, filter)
	if err != nil {
		return nil, err
	}
	page, limit := filter.GetPage()
	list = []dbmodels.Timesheet{}
	err = tx.
		Preload("Employee").
		Preload("Documents").
		Order("week_ending desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(spaceID string, filter timesheetapimodels.TsFilter) (count int64, err error) {
	tx, err := i.listQuery(spaceID, filter)
	if err != nil {
		return 0, err
	}
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListByDateRange(spaceID, employeeID string, from, to time.Time) (list []dbmodels.Timesheet, err error) {
	list = []dbmodels.Timesheet{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Where("week_ending >= ? AND week_ending <= ?", from, to)
	if employeeID != "" {
		tx = tx.Where("employee_id = ?", employeeID)
	}
	err = tx.
		Preload("Employee").
		Preload("Documents").
		Order("week_ending asc").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) SaveEvent(rec dbmodels.TimesheetEvent) error {
	return i.db.Create(&rec).Error
}

func (i impl) Transaction(fn func(store Provider) error) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewInstance(tx))
	})
}
