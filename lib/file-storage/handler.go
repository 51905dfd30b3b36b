package filestorage

import (
	"context"
	"wfm-tools-backend/db"
	filesdbstorage "wfm-tools-backend/lib/file-storage/storage"
	"wfm-tools-backend/models"
	filesapimodels "wfm-tools-backend/models/api/files"
	dbmodels "wfm-tools-backend/models/db"
	s3client "wfm-tools-backend/s3"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	UploadTimesheetDoc(ctx context.Context, info dbmodels.UploadFileInfo, file []byte) (id string, err error)
	GetFile(ctx context.Context, spaceID, fileID string) (file []byte, rec *dbmodels.FileStorage, err error)
	GetTimesheetDocList(timesheetID string) (list []filesapimodels.FileView, err error)
	DeleteFile(ctx context.Context, spaceID, fileID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		objects: s3store{s3client: s3client.Client},
		store:   filesdbstorage.NewInstance(db.DB),
	}
}

type impl struct {
	objects objectStore
	store   filesdbstorage.Provider
}

func (i impl) UploadTimesheetDoc(ctx context.Context, info dbmodels.UploadFileInfo, file []byte) (id string, err error) {
	logger := log.
		WithField("space_id", info.SpaceID).
		WithField("timesheet_id", info.TimesheetID)
	if len(file) == 0 {
		return "", models.NewDomainError("file is empty")
	}
	rec := dbmodels.FileStorage{
		BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: info.SpaceID},
		Name:           info.FileName,
		TimesheetID:    info.TimesheetID,
		Type:           info.FileType,
		ContentType:    info.ContentType,
	}
	id, err = i.store.SaveFile(rec)
	if err != nil {
		logger.WithError(err).Error("failed to save file record")
		return "", err
	}
	err = i.objects.PutFile(ctx, info.SpaceID, id, info.ContentType, file)
	if err != nil {
		logger.WithError(err).Error("failed to upload file to object storage")
		// keep db and object storage consistent
		if delErr := i.store.DeleteFile(info.SpaceID, id); delErr != nil {
			logger.WithError(delErr).Error("failed to remove orphaned file record")
		}
		return "", err
	}
	logger.WithField("file_id", id).Info("file uploaded")
	return id, nil
}

func (i impl) GetFile(ctx context.Context, spaceID, fileID string) ([]byte, *dbmodels.FileStorage, error) {
	rec, err := i.store.GetFile(spaceID, fileID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, models.NewDomainError("file not found")
	}
	file, err := i.objects.GetFile(ctx, spaceID, fileID)
	if err != nil {
		return nil, nil, err
	}
	return file, rec, nil
}

func (i impl) GetTimesheetDocList(timesheetID string) ([]filesapimodels.FileView, error) {
	recList, err := i.store.GetFileListByType(timesheetID, dbmodels.TimesheetDocument)
	if err != nil {
		return nil, err
	}
	list := make([]filesapimodels.FileView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, filesapimodels.FileConvert(rec))
	}
	return list, nil
}

func (i impl) DeleteFile(ctx context.Context, spaceID, fileID string) error {
	logger := log.WithField("space_id", spaceID).WithField("file_id", fileID)
	rec, err := i.store.GetFile(spaceID, fileID)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.NewDomainError("file not found")
	}
	if err := i.store.DeleteFile(spaceID, fileID); err != nil {
		logger.WithError(err).Error("failed to delete file record")
		return err
	}
	if err := i.objects.DeleteFile(ctx, spaceID, fileID); err != nil {
		logger.WithError(err).Error("failed to delete file from object storage")
	}
	return nil
}
