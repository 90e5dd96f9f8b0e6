// Package store keeps the single image a capture session holds.
package store

import (
	"context"

	"github.com/pkg/errors"
)

var ErrImageNotFound = errors.New("image not found")

type ImageStore interface {
	// Put replaces whatever is stored under key.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (data []byte, contentType string, err error)
	// Remove is a no-op for missing keys.
	Remove(ctx context.Context, key string) error
}
