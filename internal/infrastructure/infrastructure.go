// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies (logging, database, storage, metrics, tokens and the
// live telemetry hub) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/ems-backend/internal/auth"
	"github.com/JaimeStill/ems-backend/internal/config"
	"github.com/JaimeStill/ems-backend/internal/stream"
	"github.com/JaimeStill/ems-backend/pkg/database"
	"github.com/JaimeStill/ems-backend/pkg/lifecycle"
	"github.com/JaimeStill/ems-backend/pkg/logging"
	"github.com/JaimeStill/ems-backend/pkg/metrics"
	"github.com/JaimeStill/ems-backend/pkg/storage"
)

// MetricsNamespace prefixes every exported Prometheus series.
const MetricsNamespace = "ems"

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Metrics   *metrics.Metrics
	Tokens    *auth.Tokens
	Stream    *stream.Hub
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.Open(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	m := metrics.New(MetricsNamespace)
	tokens := auth.NewTokens([]byte(cfg.Auth.Secret), cfg.Auth.Issuer, cfg.Auth.TokenTTLDuration(), time.Now)

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Metrics:   m,
		Tokens:    tokens,
		Stream:    stream.New(&cfg.Stream, tokens, m.StreamClients, logger),
	}, nil
}

// Start initializes all infrastructure systems and registers them with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Stream.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("stream start failed: %w", err)
	}
	return nil
}
