package main

import (
	"time"

	"github.com/JaimeStill/ems-backend/internal/api"
	"github.com/JaimeStill/ems-backend/internal/config"
	"github.com/JaimeStill/ems-backend/internal/infrastructure"
	"github.com/JaimeStill/ems-backend/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra *infrastructure.Infrastructure
	http  server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	router.Mount(apiModule)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"api", apiModule.Prefix(),
		"assistant", cfg.Assistant.Enabled,
	)

	return &Server{
		infra: infra,
		http:  server.New(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns once the listener is running.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
