package simulations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/ems-backend/pkg/storage"
	"github.com/google/uuid"
)

type archive struct {
	store  storage.System
	logger *slog.Logger
	now    func() time.Time
}

// New creates a simulation System that archives every run as JSON in store.
func New(store storage.System, logger *slog.Logger) System {
	return &archive{
		store:  store,
		logger: logger.With("system", "simulations"),
		now:    time.Now,
	}
}

func key(id uuid.UUID) string {
	return fmt.Sprintf("simulations/%s.json", id)
}

func (a *archive) Simulate(ctx context.Context, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cost, emissions := Simulate(p)
	res := Result{
		ID:             uuid.New(),
		Params:         p,
		Cost:           cost,
		Emissions:      emissions,
		TotalCost:      sum(cost),
		TotalEmissions: sum(emissions),
		CreatedAt:      a.now().UTC(),
	}

	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("marshal simulation: %w", err)
	}
	if err := a.store.Store(ctx, key(res.ID), data); err != nil {
		return nil, fmt.Errorf("archive simulation: %w", err)
	}

	a.logger.Info(
		"simulation archived",
		"id", res.ID,
		"total_cost", res.TotalCost,
		"total_emissions", res.TotalEmissions,
	)
	return &res, nil
}

func (a *archive) Find(ctx context.Context, id uuid.UUID) (*Result, error) {
	data, err := a.store.Retrieve(ctx, key(id))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("retrieve simulation: %w", err)
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode simulation: %w", err)
	}
	return &res, nil
}
