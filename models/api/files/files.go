package filesapimodels

import (
	dbmodels "wfm-tools-backend/models/db"
)

type FileView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TimesheetID string `json:"timesheet_id"`
	SpaceID     string `json:"space_id"`
	ContentType string `json:"content_type"`
}

func FileConvert(rec dbmodels.FileStorage) FileView {
	return FileView{
		ID:          rec.ID,
		Name:        rec.Name,
		TimesheetID: rec.TimesheetID,
		SpaceID:     rec.SpaceID,
		ContentType: rec.ContentType,
	}
}
