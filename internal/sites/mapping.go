package sites

import (
	"net/url"

	"github.com/JaimeStill/ems-backend/pkg/query"
	"github.com/JaimeStill/ems-backend/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "sites", "s").
	Project("id", "ID").
	Project("name", "Name").
	Project("location", "Location").
	Project("capacity_kw", "CapacityKw").
	Project("battery_capacity_kwh", "BatteryCapacityKwh").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

const returning = "id, name, location, capacity_kw, battery_capacity_kwh, created_at, updated_at"

func scanSite(s repository.Scanner) (Site, error) {
	var site Site
	err := s.Scan(
		&site.ID,
		&site.Name,
		&site.Location,
		&site.CapacityKw,
		&site.BatteryCapacityKwh,
		&site.CreatedAt,
		&site.UpdatedAt,
	)
	return site, err
}

// Filters contains optional filtering criteria for site queries.
type Filters struct {
	Location *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var location *string
	if l := values.Get("location"); l != "" {
		location = &l
	}
	return Filters{Location: location}
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("Location", f.Location)
}
