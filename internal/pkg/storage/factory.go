package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	DriverNone  = "none"
	DriverS3    = "s3"
	DriverMinIO = "minio"
)

var ErrUnknownDriver = errors.New("storage: unknown driver")

type FactoryOptions struct {
	S3    S3Options
	MinIO MinIOOptions
}

// NewFromDriver builds the adapter named by driver. DriverNone and an empty
// driver return a nil Storage, meaning image keys are served unsigned.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverNone, "":
		return nil, nil //nolint:nilnil // storage is optional
	case DriverS3:
		return NewS3(ctx, opts.S3)
	case DriverMinIO:
		return NewMinIO(opts.MinIO)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
