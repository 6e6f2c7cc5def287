// Package storage provides blob storage for archived artifacts such as simulation runs.
// The filesystem implementation suits development and single-node deployments;
// the S3 implementation targets any S3-compatible object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/ems-backend/pkg/lifecycle"
)

var (
	ErrNotFound         = errors.New("storage: key not found")
	ErrPermissionDenied = errors.New("storage: permission denied")
	// ErrInvalidKey covers empty keys, absolute keys, and path traversal.
	ErrInvalidKey = errors.New("storage: invalid key")
	// ErrTooLarge is returned when a blob exceeds the configured max_upload_size.
	ErrTooLarge = errors.New("storage: blob exceeds size limit")
)

// System stores opaque blobs under slash-separated keys.
type System interface {
	// Store writes data at key atomically, replacing any existing blob.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the blob at key or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes the blob at key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob is present at key.
	Exists(ctx context.Context, key string) (bool, error)

	Start(lc *lifecycle.Coordinator) error
}

// Open builds the store selected by cfg.Backend.
func Open(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendS3:
		return NewS3(NewS3Client(&cfg.S3), cfg.S3.Bucket, cfg.S3.Prefix, cfg.MaxUploadSizeBytes(), logger), nil
	case BackendFilesystem, "":
		return New(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
