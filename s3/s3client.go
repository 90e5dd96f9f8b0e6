package s3client

import (
	"context"

	"cvforge-backend/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

var Client *minio.Client

const location = "us-east-1"

func NewClient() (*minio.Client, error) {
	useSSL := config.Conf.S3.UseSSL != nil && *config.Conf.S3.UseSSL
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}
	return minioClient, nil
}

// MakeBucket creates the bucket unless it already exists.
func MakeBucket(ctx context.Context, client *minio.Client, bucketName string) error {
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return errors.Wrapf(err, "check bucket %s", bucketName)
	}
	if exists {
		return nil
	}
	err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return errors.Wrapf(err, "make bucket %s", bucketName)
	}
	return nil
}
