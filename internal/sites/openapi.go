package sites

import "github.com/JaimeStill/ems-backend/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Create *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

// Spec contains OpenAPI operation definitions for site endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List sites",
		Description: "Returns all sites as an array. With page or page_size the response is a SitePageResult envelope.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search query (matches name and location)", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("location", "string", "Filter by location (contains)", false),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Sites",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Site")}},
				},
			},
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get site",
		Parameters: []*openapi.Parameter{openapi.PathParam("site_id", "Site UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Site", "Site"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create site",
		RequestBody: openapi.RequestBodyJSON("SiteCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Site created", "Site"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update site",
		Parameters:  []*openapi.Parameter{openapi.PathParam("site_id", "Site UUID")},
		RequestBody: openapi.RequestBodyJSON("SiteCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Site updated", "Site"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete site",
		Description: "Removes a site together with its assets, telemetry, alerts, and suggestions",
		Parameters:  []*openapi.Parameter{openapi.PathParam("site_id", "Site UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Site deleted", "Success"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the site domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	command := map[string]*openapi.Schema{
		"name":                 {Type: "string"},
		"location":             {Type: "string"},
		"capacity_kw":          {Type: "number", Description: "Rated PV capacity in kW"},
		"battery_capacity_kwh": {Type: "number", Description: "Usable battery capacity in kWh"},
	}

	site := map[string]*openapi.Schema{
		"id":         {Type: "string", Format: "uuid"},
		"created_at": {Type: "string", Format: "date-time"},
		"updated_at": {Type: "string", Format: "date-time"},
	}
	for k, v := range command {
		site[k] = v
	}

	return map[string]*openapi.Schema{
		"Site":        {Type: "object", Properties: site},
		"SiteCommand": {Type: "object", Required: []string{"name"}, Properties: command},
		"SitePageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Site")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
