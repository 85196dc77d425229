// Package storage signs download URLs for product images kept in object
// storage. S3 and MinIO are supported.
package storage

import (
	"context"
	"io"
	"time"
)

// Storage signs object URLs.
type Storage interface {
	io.Closer
	// PresignGet returns a time-limited URL for downloading bucket/key.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}
