package store

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

const objectPrefix = "captures/"

type Minio struct {
	client *minio.Client
	bucket string
}

func NewMinio(client *minio.Client, bucket string) *Minio {
	return &Minio{client: client, bucket: bucket}
}

func (m *Minio) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectPrefix+key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "put capture object")
	}
	return nil
}

func (m *Minio) Get(ctx context.Context, key string) ([]byte, string, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, objectPrefix+key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", errors.Wrap(err, "get capture object")
	}
	defer obj.Close()
	info, err := obj.Stat()
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", ErrImageNotFound
		}
		return nil, "", errors.Wrap(err, "stat capture object")
	}
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", errors.Wrap(err, "read capture object")
	}
	return data, info.ContentType, nil
}

func (m *Minio) Remove(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectPrefix+key, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "remove capture object")
	}
	return nil
}
