package api

import (
	"log/slog"

	"github.com/JaimeStill/ems-backend/internal/actions"
	"github.com/JaimeStill/ems-backend/internal/assets"
	"github.com/JaimeStill/ems-backend/internal/auth"
	"github.com/JaimeStill/ems-backend/internal/data"
	"github.com/JaimeStill/ems-backend/internal/simulations"
	"github.com/JaimeStill/ems-backend/internal/sites"
	"github.com/JaimeStill/ems-backend/pkg/pagination"
	"github.com/JaimeStill/ems-backend/pkg/routes"
)

// SitesPrefix is the mount prefix of the site CRUD routes.
const SitesPrefix = "/sites"

// BuildRouter composes the domain route groups into a single mount table.
//
// Registration order is match priority. Sites is mounted last because its
// "/sites/{site_id}" routes would otherwise capture the site-scoped paths
// served by assets, data and actions.
func BuildRouter(auth, sites, assets, data, actions, simulations routes.Group) *routes.Table {
	return routes.NewTable(
		routes.Mount{Prefix: AuthPrefix, Tags: []string{"Authentication"}, Group: auth},
		routes.Mount{Prefix: "", Tags: []string{"Assets"}, Group: assets},
		routes.Mount{Prefix: "", Tags: []string{"Data"}, Group: data},
		routes.Mount{Prefix: "", Tags: []string{"Actions"}, Group: actions},
		routes.Mount{Prefix: "", Tags: []string{"Simulations & Predictions"}, Group: simulations},
		routes.Mount{Prefix: SitesPrefix, Tags: []string{"Sites"}, Group: sites},
	)
}

// NewTable builds the handlers for each domain system and composes them with
// BuildRouter. Handlers only call their systems when serving, so a Domain with
// nil systems still yields a complete table for inspection.
func NewTable(domain *Domain, logger *slog.Logger, cfg pagination.Config) *routes.Table {
	return BuildRouter(
		auth.NewHandler(domain.Auth, logger).Routes(),
		sites.NewHandler(domain.Sites, logger, cfg).Routes(),
		assets.NewHandler(domain.Assets, logger).Routes(),
		data.NewHandler(domain.Data, logger).Routes(),
		actions.NewHandler(domain.Actions, logger).Routes(),
		simulations.NewHandler(domain.Simulations, logger).Routes(),
	)
}
