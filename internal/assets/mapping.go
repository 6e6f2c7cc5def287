package assets

import (
	"database/sql"

	"github.com/JaimeStill/ems-backend/internal/energy"
	"github.com/JaimeStill/ems-backend/pkg/query"
	"github.com/JaimeStill/ems-backend/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "assets", "a").
	Project("id", "ID").
	Project("site_id", "SiteID").
	Project("name", "Name").
	Project("type", "Type").
	Project("model", "Model").
	Project("install_date", "InstallDate").
	Project("failure_probability", "FailureProbability").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// rankedSelect selects one asset with its rank among the assets of its site.
const rankedSelect = `
	SELECT a.id, a.site_id, a.name, a.type, a.model, a.install_date, a.failure_probability,
		a.created_at, a.updated_at,
		(SELECT COUNT(*) + 1 FROM assets b
			WHERE b.site_id = a.site_id
			AND (b.failure_probability > a.failure_probability
				OR (b.failure_probability = a.failure_probability AND b.name < a.name))) AS rank
	FROM assets a
	WHERE a.id = $1`

func scanAsset(s repository.Scanner) (Asset, error) {
	var a Asset
	var installed sql.NullTime
	err := s.Scan(
		&a.ID,
		&a.SiteID,
		&a.Name,
		&a.Type,
		&a.Model,
		&installed,
		&a.FailureProbability,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	a.InstallDate = formatDate(installed)
	return a, err
}

func scanRankedAsset(s repository.Scanner) (Asset, error) {
	var a Asset
	var installed sql.NullTime
	err := s.Scan(
		&a.ID,
		&a.SiteID,
		&a.Name,
		&a.Type,
		&a.Model,
		&installed,
		&a.FailureProbability,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Rank,
	)
	a.InstallDate = formatDate(installed)
	return a, err
}

func scanSample(s repository.Scanner) (energy.Sample, error) {
	var sample energy.Sample
	err := s.Scan(&sample.At, &sample.Power)
	return sample, err
}

func formatDate(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := t.Time.Format(DateLayout)
	return &s
}
