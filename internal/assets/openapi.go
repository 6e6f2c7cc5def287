package assets

import "github.com/JaimeStill/ems-backend/pkg/openapi"

type spec struct {
	ListBySite  *openapi.Operation
	Find        *openapi.Operation
	Create      *openapi.Operation
	Update      *openapi.Operation
	Delete      *openapi.Operation
	DigitalTwin *openapi.Operation
}

// Spec contains OpenAPI operation definitions for asset endpoints.
var Spec = spec{
	ListBySite: &openapi.Operation{
		Summary:     "List site assets",
		Description: "Returns the assets of a site ranked by failure probability, highest first",
		Parameters:  []*openapi.Parameter{openapi.PathParam("site_id", "Site UUID")},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Ranked assets",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Asset")}},
				},
			},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get asset",
		Parameters: []*openapi.Parameter{openapi.PathParam("asset_id", "Asset UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Asset", "Asset"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create asset",
		Description: "Omitting failure_probability estimates it from type and install date",
		RequestBody: openapi.RequestBodyJSON("AssetCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Asset created", "Asset"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update asset",
		Parameters:  []*openapi.Parameter{openapi.PathParam("asset_id", "Asset UUID")},
		RequestBody: openapi.RequestBodyJSON("AssetCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Asset updated", "Asset"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete asset",
		Parameters: []*openapi.Parameter{openapi.PathParam("asset_id", "Asset UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Asset deleted", "Success"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	DigitalTwin: &openapi.Operation{
		Summary:     "Asset digital twin",
		Description: "Compares the last 24 hours of site PV output against a clear-sky model and flags deviations",
		Parameters:  []*openapi.Parameter{openapi.PathParam("asset_id", "Asset UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Modelled and measured output", "DigitalTwin"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the asset domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	assetType := &openapi.Schema{
		Type: "string",
		Enum: []any{"pv", "battery", "inverter", "ev_charger", "motor", "other"},
	}
	point := map[string]*openapi.Schema{
		"timestamp": {Type: "string", Format: "date-time"},
		"expected":  {Type: "number", Description: "Modelled output in kW"},
		"actual":    {Type: "number", Description: "Measured output in kW"},
	}

	return map[string]*openapi.Schema{
		"Asset": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                  {Type: "string", Format: "uuid"},
				"site_id":             {Type: "string", Format: "uuid"},
				"name":                {Type: "string"},
				"type":                assetType,
				"model":               {Type: "string"},
				"install_date":        {Type: "string", Format: "date"},
				"failure_probability": {Type: "number"},
				"rank":                {Type: "integer", Description: "1 is the most likely to fail"},
				"created_at":          {Type: "string", Format: "date-time"},
				"updated_at":          {Type: "string", Format: "date-time"},
			},
		},
		"AssetCommand": {
			Type:     "object",
			Required: []string{"site_id", "name", "type"},
			Properties: map[string]*openapi.Schema{
				"site_id":             {Type: "string", Format: "uuid"},
				"name":                {Type: "string"},
				"type":                assetType,
				"model":               {Type: "string"},
				"install_date":        {Type: "string", Format: "date"},
				"failure_probability": {Type: "number"},
			},
		},
		"DigitalTwin": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"asset_id":   {Type: "string", Format: "uuid"},
				"dataPoints": {Type: "array", Items: &openapi.Schema{Type: "object", Properties: point}},
				"anomalies": {Type: "array", Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"timestamp": point["timestamp"],
						"expected":  point["expected"],
						"actual":    point["actual"],
						"deviation": {Type: "number", Description: "Relative deviation from expected"},
						"severity":  {Type: "string", Enum: []any{"warning", "critical"}},
					},
				}},
			},
		},
	}
}
