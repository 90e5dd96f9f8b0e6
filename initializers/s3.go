package initializers

import (
	"context"

	"cvforge-backend/config"
	"cvforge-backend/lib/capture/store"
	s3client "cvforge-backend/s3"

	log "github.com/sirupsen/logrus"
)

// InitImageStore picks MinIO when S3 is enabled and reachable, memory otherwise.
func InitImageStore(ctx context.Context) store.ImageStore {
	if config.Conf.S3.Enabled == nil || !*config.Conf.S3.Enabled {
		log.Info("S3 disabled, captured images are kept in memory")
		return store.NewMemory()
	}
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("failed to init S3 client, captured images are kept in memory")
		return store.NewMemory()
	}
	if err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName); err != nil {
		log.WithError(err).Error("S3 bucket check failed, captured images are kept in memory")
		return store.NewMemory()
	}
	s3client.Client = minioClient
	log.WithField("bucket", config.Conf.S3.BucketName).Info("S3 client initialized")
	return store.NewMinio(minioClient, config.Conf.S3.BucketName)
}
