package storage_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/ems-backend/pkg/lifecycle"
	"github.com/JaimeStill/ems-backend/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newStore(t *testing.T, cfg *storage.Config) storage.System {
	t.Helper()

	if cfg.BasePath == "" {
		cfg.BasePath = t.TempDir()
	}

	sys, err := storage.New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()

	return sys
}

func TestNew_EmptyBasePath(t *testing.T) {
	if _, err := storage.New(&storage.Config{}, testLogger()); err == nil {
		t.Fatal("New() succeeded with empty BasePath, want error")
	}
}

func TestStart_CreatesDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "blobs")
	newStore(t, &storage.Config{BasePath: target})

	if _, err := os.Stat(target); err != nil {
		t.Errorf("Start() did not create storage directory: %v", err)
	}
}

func TestStore_Retrieve_RoundTrip(t *testing.T) {
	sys := newStore(t, &storage.Config{})
	ctx := context.Background()

	data := []byte(`{"cost":[1,2,3]}`)
	if err := sys.Store(ctx, "simulations/run-1.json", data); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	got, err := sys.Retrieve(ctx, "simulations/run-1.json")
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}

	if string(got) != string(data) {
		t.Errorf("Retrieve() = %q, want %q", got, data)
	}

	exists, err := sys.Exists(ctx, "simulations/run-1.json")
	if err != nil || !exists {
		t.Errorf("Exists() = %v, %v, want true", exists, err)
	}
}

func TestRetrieve_NotFound(t *testing.T) {
	sys := newStore(t, &storage.Config{})

	_, err := sys.Retrieve(context.Background(), "missing.json")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() error = %v, want ErrNotFound", err)
	}
}

func TestInvalidKeys(t *testing.T) {
	sys := newStore(t, &storage.Config{})
	ctx := context.Background()

	keys := []string{"", "../escape", "/etc/passwd", "a/../../b"}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			if err := sys.Store(ctx, key, []byte("x")); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) error = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestStore_TooLarge(t *testing.T) {
	cfg := &storage.Config{BasePath: t.TempDir(), MaxUploadSize: "1KB"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	sys := newStore(t, cfg)

	err := sys.Store(context.Background(), "big.bin", make([]byte, 2000))
	if !errors.Is(err, storage.ErrTooLarge) {
		t.Errorf("Store() error = %v, want ErrTooLarge", err)
	}
}

func TestDelete_PrunesEmptyDirectories(t *testing.T) {
	base := t.TempDir()
	sys := newStore(t, &storage.Config{BasePath: base})
	ctx := context.Background()

	if err := sys.Store(ctx, "a/b/blob.json", []byte("x")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	if err := sys.Delete(ctx, "a/b/blob.json"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, "a")); !os.IsNotExist(err) {
		t.Error("empty parent directories were not pruned")
	}

	if _, err := os.Stat(base); err != nil {
		t.Error("storage root was removed")
	}

	if err := sys.Delete(ctx, "a/b/blob.json"); err != nil {
		t.Errorf("Delete() of missing key = %v, want nil", err)
	}
}

func TestConfig_Finalize(t *testing.T) {
	cfg := &storage.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.BasePath != ".data/blobs" {
		t.Errorf("BasePath = %q", cfg.BasePath)
	}

	if cfg.MaxUploadSizeBytes() != 10_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 10000000", cfg.MaxUploadSizeBytes())
	}

	bad := &storage.Config{MaxUploadSize: "lots"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() accepted invalid size")
	}
}
