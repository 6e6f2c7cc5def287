// Package api assembles the versioned REST module: domain systems, the route
// mount table, the OpenAPI document and the middleware stack.
package api

import (
	"net/http"

	"github.com/JaimeStill/ems-backend/internal/auth"
	"github.com/JaimeStill/ems-backend/internal/config"
	"github.com/JaimeStill/ems-backend/internal/infrastructure"
	"github.com/JaimeStill/ems-backend/pkg/middleware"
	"github.com/JaimeStill/ems-backend/pkg/module"
	"github.com/JaimeStill/ems-backend/pkg/openapi"
)

// SpecPath serves the generated OpenAPI document, relative to the API base path.
const SpecPath = "/openapi.json"

// AuthPrefix is the mount prefix of the authentication routes.
const AuthPrefix = "/auth"

// TracerName names the tracer for API request spans.
const TracerName = "ems/api"

// PublicPaths are reachable without a bearer token.
var PublicPaths = []string{AuthPrefix + auth.TokenPath, AuthPrefix + auth.RegisterPath, SpecPath}

// NewModule builds the API module mounted at the configured base path.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime, err := NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}
	domain := NewDomain(runtime)
	table := NewTable(domain, runtime.Logger, runtime.Pagination)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)
	spec.RequireBearer()
	table.AddToSpec(cfg.API.BasePath, spec)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+SpecPath, openapi.ServeSpec(specBytes))
	mux.Handle("/", table)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.Trace(nil, TracerName))
	m.Use(runtime.Metrics.Middleware())
	m.Use(middleware.MaxBytes(cfg.API.MaxBodySizeBytes()))
	m.Use(auth.Middleware(runtime.Tokens, runtime.Logger, PublicPaths...))

	return m, nil
}
