package simulations_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/JaimeStill/ems-backend/internal/simulations"
	"github.com/JaimeStill/ems-backend/pkg/storage"
	"github.com/google/uuid"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newArchive(t *testing.T) (simulations.System, storage.System) {
	t.Helper()
	store, err := storage.New(&storage.Config{BasePath: t.TempDir()}, discard())
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	return simulations.New(store, discard()), store
}

func TestArchive_SimulateAndFind(t *testing.T) {
	sys, store := newArchive(t)
	ctx := context.Background()
	p := simulations.Params{PVCurtail: 10, BatteryTarget: 30, GridPrice: 0.25}

	run, err := sys.Simulate(ctx, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if run.ID == uuid.Nil || len(run.Cost) != 24 {
		t.Fatalf("run = %+v", run)
	}

	exists, err := store.Exists(ctx, "simulations/"+run.ID.String()+".json")
	if err != nil || !exists {
		t.Fatalf("archived blob exists = %v, err = %v", exists, err)
	}

	got, err := sys.Find(ctx, run.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Params != p || !slices.Equal(got.Cost, run.Cost) || got.TotalCost != run.TotalCost {
		t.Errorf("archived run = %+v, want %+v", got, run)
	}
}

func TestArchive_Errors(t *testing.T) {
	sys, _ := newArchive(t)
	ctx := context.Background()

	if _, err := sys.Simulate(ctx, simulations.Params{PVCurtail: 200}); !errors.Is(err, simulations.ErrInvalidParams) {
		t.Errorf("Simulate err = %v, want ErrInvalidParams", err)
	}
	if _, err := sys.Find(ctx, uuid.New()); !errors.Is(err, simulations.ErrNotFound) {
		t.Errorf("Find err = %v, want ErrNotFound", err)
	}
}
