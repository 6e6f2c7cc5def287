package api

import (
	"github.com/JaimeStill/ems-backend/internal/actions"
	"github.com/JaimeStill/ems-backend/internal/assets"
	"github.com/JaimeStill/ems-backend/internal/auth"
	"github.com/JaimeStill/ems-backend/internal/data"
	"github.com/JaimeStill/ems-backend/internal/simulations"
	"github.com/JaimeStill/ems-backend/internal/sites"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Auth        auth.System
	Sites       sites.System
	Assets      assets.System
	Data        data.System
	Actions     actions.System
	Simulations simulations.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	return &Domain{
		Auth:        auth.New(db, runtime.Tokens, runtime.Logger),
		Sites:       sites.New(db, runtime.Logger, runtime.Pagination),
		Assets:      assets.New(db, runtime.Logger),
		Data:        data.New(db, runtime.Logger, runtime.Stream, runtime.Metrics),
		Actions:     actions.New(db, runtime.Assistant, runtime.Logger),
		Simulations: simulations.New(runtime.Storage, runtime.Logger),
	}
}
