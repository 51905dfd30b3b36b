package initializers

import (
	"context"
	s3client "wfm-tools-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	_, err := s3client.NewClient(ctx)
	if err != nil {
		log.WithError(err).Error("failed to initialize the S3 client")
		return
	}
	log.Info("S3 client initialized")
}
