package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"wfm-tools-backend/config"

	"github.com/minio/minio-go/v7"
)

// objectStore is the S3 side of the file storage: one object per stored
// file, keyed by space and file id.
type objectStore interface {
	PutFile(ctx context.Context, spaceID, fileID, contentType string, file []byte) error
	GetFile(ctx context.Context, spaceID, fileID string) ([]byte, error)
	DeleteFile(ctx context.Context, spaceID, fileID string) error
}

type s3store struct {
	s3client *minio.Client
}

func (s s3store) PutFile(ctx context.Context, spaceID, fileID, contentType string, file []byte) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.s3client.PutObject(ctx,
		config.Conf.S3.BucketName,
		objectName(spaceID, fileID),
		bytes.NewReader(file),
		int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	return err
}

func (s s3store) GetFile(ctx context.Context, spaceID, fileID string) ([]byte, error) {
	object, err := s.s3client.GetObject(ctx,
		config.Conf.S3.BucketName,
		objectName(spaceID, fileID),
		minio.GetObjectOptions{},
	)
	if err != nil {
		return nil, err
	}
	defer object.Close()
	return io.ReadAll(object)
}

func (s s3store) DeleteFile(ctx context.Context, spaceID, fileID string) error {
	return s.s3client.RemoveObject(ctx,
		config.Conf.S3.BucketName,
		objectName(spaceID, fileID),
		minio.RemoveObjectOptions{},
	)
}

func objectName(spaceID, fileID string) string {
	return fmt.Sprintf("%s/%s", spaceID, fileID)
}
