package api

import (
	"github.com/JaimeStill/ems-backend/internal/assistant"
	"github.com/JaimeStill/ems-backend/internal/config"
	"github.com/JaimeStill/ems-backend/internal/infrastructure"
	"github.com/JaimeStill/ems-backend/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config

	// Assistant is nil when the language model assistant is disabled.
	Assistant assistant.System
}

// NewRuntime creates an API runtime with a module-scoped logger. When the assistant
// is enabled but cannot be configured, the error is returned rather than degrading silently.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	logger := infra.Logger.With("module", "api")

	var asst assistant.System
	if cfg.Assistant.Enabled {
		a, err := assistant.New(&cfg.Assistant, logger)
		if err != nil {
			return nil, err
		}
		asst = a
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
			Metrics:   infra.Metrics,
			Tokens:    infra.Tokens,
			Stream:    infra.Stream,
		},
		Pagination: cfg.API.Pagination,
		Assistant:  asst,
	}, nil
}
