package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/ems-backend/pkg/lifecycle"
	"github.com/docker/go-units"
)

type filesystem struct {
	root    string
	maxSize int64
	logger  *slog.Logger
}

// New creates a filesystem store rooted at cfg.BasePath.
// The directory is created when the lifecycle starts.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	root, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	return &filesystem{
		root:    root,
		maxSize: cfg.MaxUploadSizeBytes(),
		logger:  logger.With("system", "storage"),
	}, nil
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting storage system", "base_path", f.root)

	lc.OnStartup(func() {
		if err := os.MkdirAll(f.root, 0755); err != nil {
			f.logger.Error("storage initialization failed", "error", err)
			return
		}
		f.logger.Info("storage directory initialized")
	})

	return nil
}

func (f *filesystem) Store(ctx context.Context, key string, data []byte) error {
	path, err := f.resolve(key)
	if err != nil {
		return err
	}

	if f.maxSize > 0 && int64(len(data)) > f.maxSize {
		return fmt.Errorf("%w: %s > %s", ErrTooLarge,
			units.HumanSize(float64(len(data))), units.HumanSize(float64(f.maxSize)))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return mapFSError(err, "create directory")
	}

	tmp, err := os.CreateTemp(dir, ".blob-*")
	if err != nil {
		return mapFSError(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return mapFSError(err, "rename temp file")
	}

	f.logger.Debug("blob stored", "key", key, "size", units.HumanSize(float64(len(data))))
	return nil
}

func (f *filesystem) Retrieve(ctx context.Context, key string) ([]byte, error) {
	path, err := f.resolve(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mapFSError(err, "read file")
	}
	return data, nil
}

func (f *filesystem) Delete(ctx context.Context, key string) error {
	path, err := f.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return mapFSError(err, "remove file")
	}

	f.pruneEmpty(filepath.Dir(path))
	return nil
}

func (f *filesystem) Exists(ctx context.Context, key string) (bool, error) {
	path, err := f.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, mapFSError(err, "stat file")
	}
	return true, nil
}

// pruneEmpty removes empty parent directories up to, but excluding, the root.
func (f *filesystem) pruneEmpty(dir string) {
	for dir != f.root && strings.HasPrefix(dir, f.root+string(filepath.Separator)) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			f.logger.Warn("failed to remove empty directory", "dir", dir, "error", err)
			return
		}
		dir = filepath.Dir(dir)
	}
}

func (f *filesystem) resolve(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	cleaned := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}

	full := filepath.Join(f.root, cleaned)
	if !strings.HasPrefix(full, f.root+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return full, nil
}

func mapFSError(err error, op string) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
