package db

import (
	dbmodels "wfm-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.Space{}); err != nil {
		return errors.Wrap(err, "failed to migrate Space")
	}
	if err := DB.AutoMigrate(&dbmodels.SpaceUser{}); err != nil {
		return errors.Wrap(err, "failed to migrate SpaceUser")
	}
	if err := DB.AutoMigrate(&dbmodels.Client{}); err != nil {
		return errors.Wrap(err, "failed to migrate Client")
	}
	if err := DB.AutoMigrate(&dbmodels.Timesheet{}); err != nil {
		return errors.Wrap(err, "failed to migrate Timesheet")
	}
	if err := DB.AutoMigrate(&dbmodels.TimesheetEvent{}); err != nil {
		return errors.Wrap(err, "failed to migrate TimesheetEvent")
	}
	if err := DB.AutoMigrate(&dbmodels.Invoice{}); err != nil {
		return errors.Wrap(err, "failed to migrate Invoice")
	}
	if err := DB.AutoMigrate(&dbmodels.InvoiceItem{}); err != nil {
		return errors.Wrap(err, "failed to migrate InvoiceItem")
	}
	if err := DB.AutoMigrate(&dbmodels.FileStorage{}); err != nil {
		return errors.Wrap(err, "failed to migrate FileStorage")
	}
	log.Info("migrations finished")
	return nil
}
