package xlsexport

import (
	"bytes"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportTimesheetList(list []dbmodels.Timesheet) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var timesheetHeaders = []string{"Employee", "Week starting", "Week ending", "Total hours", "Status", "Description", "Rejection reason"}

const dateFormat = "2006-01-02"

func (i impl) ExportTimesheetList(list []dbmodels.Timesheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, timesheetHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		_, err = writeTimesheetData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Timesheets")
	return f.WriteToBuffer()
}

func writeTimesheetData(f *excelize.File, sheet string, list []dbmodels.Timesheet, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(timesheetHeaders), len(list)+1); err != nil {
		return row, err
	}
	totalHours := decimal.Zero
	for _, item := range list {
		row++
		// "Employee"
		col := 1
		if item.Employee != nil {
			if err := writeColumn(f, sheet, col, row, item.Employee.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Week starting"
		col++
		if err := writeColumn(f, sheet, col, row, item.WeekStarting.Format(dateFormat)); err != nil {
			return row, err
		}

		// "Week ending"
		col++
		if err := writeColumn(f, sheet, col, row, item.WeekEnding.Format(dateFormat)); err != nil {
			return row, err
		}

		// "Total hours"
		col++
		hours := item.TotalHours()
		totalHours = totalHours.Add(hours)
		if err := writeColumn(f, sheet, col, row, hours.StringFixed(2)); err != nil {
			return row, err
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Description"
		col++
		if err := writeColumn(f, sheet, col, row, item.Description); err != nil {
			return row, err
		}

		// "Rejection reason"
		col++
		if item.RejectionReason != "" {
			if err := writeColumn(f, sheet, col, row, item.RejectionReason); err != nil {
				return row, err
			}
		}
	}
	row++
	if err := writeColumn(f, sheet, 3, row, "Total"); err != nil {
		return row, err
	}
	if err := writeColumn(f, sheet, 4, row, totalHours.StringFixed(2)); err != nil {
		return row, err
	}
	return row, nil
}
