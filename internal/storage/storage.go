package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	cfg "github.com/templui/docportal/internal/config"
)

var ErrNotRegularFile = errors.New("not a regular file")

// Storage holds document payloads. Paths are the values recorded in
// files.filepath: filesystem paths for local storage, object keys for S3.
type Storage interface {
	// Copy stores the local file src at dst. A failed copy leaves nothing at dst.
	Copy(src, dst string) error

	// Open streams the payload at path
	Open(path string) (io.ReadCloser, error)

	// Stat returns the payload size in bytes
	Stat(path string) (int64, error)

	// Exists reports whether something is stored at path
	Exists(path string) bool

	// Delete removes the payload at path. Missing payloads are not an error.
	Delete(path string) error

	// Join builds a storage path below the storage root
	Join(elem ...string) string
}

// New returns the storage backend selected in config
func New(c *cfg.Config) (Storage, error) {
	switch c.StorageDriver {
	case cfg.StorageLocal, "":
		slog.Info("initializing local storage", "root", c.UploadDir)
		return NewLocalStorage(c.UploadDir)
	case cfg.StorageS3:
		slog.Info("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Storage(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
			PathStyle: c.S3PathStyle,
			Timeout:   c.S3Timeout,
		})
	}
	return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
}
