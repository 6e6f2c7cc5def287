package data

import "github.com/JaimeStill/ems-backend/pkg/openapi"

type spec struct {
	Ingest       *openapi.Operation
	HealthStatus *openapi.Operation
	Alerts       *openapi.Operation
	Timeseries   *openapi.Operation
	Suggestions  *openapi.Operation
}

var siteParam = openapi.PathParam("site_id", "Site UUID")

func arrayOf(description, schema string) *openapi.Response {
	return &openapi.Response{
		Description: description,
		Content: map[string]*openapi.MediaType{
			"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef(schema)}},
		},
	}
}

// Spec contains OpenAPI operation definitions for data endpoints.
var Spec = spec{
	Ingest: &openapi.Operation{
		Summary:     "Ingest telemetry",
		Description: "Stores one reading, raises threshold alerts and proposes PV surplus suggestions",
		Parameters:  []*openapi.Parameter{siteParam},
		RequestBody: openapi.RequestBodyJSON("TelemetryCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Stored reading", "IngestResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	HealthStatus: &openapi.Operation{
		Summary:    "Site health status",
		Parameters: []*openapi.Parameter{siteParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Health summary", "HealthStatus"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Alerts: &openapi.Operation{
		Summary: "List site alerts",
		Parameters: []*openapi.Parameter{
			siteParam,
			openapi.QueryParam("status", "string", "active or acknowledged", false),
		},
		Responses: map[int]*openapi.Response{
			200: arrayOf("Alerts, newest first", "Alert"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Timeseries: &openapi.Operation{
		Summary:     "Site timeseries",
		Description: "Bucketed averages: 24h in hourly buckets, 7d in 6 hour buckets, 30d in daily buckets",
		Parameters: []*openapi.Parameter{
			siteParam,
			openapi.QueryParam("range", "string", "24h (default), 7d or 30d", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Timeseries", "Timeseries"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Suggestions: &openapi.Operation{
		Summary: "List dispatch suggestions",
		Parameters: []*openapi.Parameter{
			siteParam,
			openapi.QueryParam("status", "string", "pending, accepted or rejected", false),
		},
		Responses: map[int]*openapi.Response{
			200: arrayOf("Suggestions, newest first", "Suggestion"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the data domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	number := func(desc string) *openapi.Schema {
		return &openapi.Schema{Type: "number", Description: desc}
	}
	timestamp := &openapi.Schema{Type: "string", Format: "date-time"}
	id := &openapi.Schema{Type: "string", Format: "uuid"}

	metrics := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"pv_generation":     number("PV output in kW"),
			"net_load":          number("Site load in kW"),
			"battery_discharge": number("Battery discharge in kW, negative while charging"),
			"battery_soc":       number("Battery state of charge in percent"),
			"grid_draw":         number("Grid import in kW"),
		},
	}

	alert := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":              id,
			"site_id":         id,
			"severity":        {Type: "string", Enum: []any{"info", "warning", "critical"}},
			"metric":          {Type: "string"},
			"message":         {Type: "string"},
			"value":           {Type: "number"},
			"status":          {Type: "string", Enum: []any{"active", "acknowledged"}},
			"timestamp":       timestamp,
			"acknowledged_at": timestamp,
		},
	}

	suggestion := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":                id,
			"site_id":           id,
			"title":             {Type: "string"},
			"description":       {Type: "string"},
			"action":            {Type: "string", Enum: []any{ActionChargeBattery, ActionExportGrid}},
			"schedule":          {Type: "string"},
			"estimated_savings": {Type: "number"},
			"status":            {Type: "string", Enum: []any{"pending", "accepted", "rejected"}},
			"created_at":        timestamp,
			"decided_at":        timestamp,
		},
	}

	return map[string]*openapi.Schema{
		"TelemetryMetrics": metrics,
		"TelemetryCommand": {
			Type:     "object",
			Required: []string{"metrics"},
			Properties: map[string]*openapi.Schema{
				"recorded_at": timestamp,
				"metrics":     openapi.SchemaRef("TelemetryMetrics"),
			},
		},
		"Alert":      alert,
		"Suggestion": suggestion,
		"IngestResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          id,
				"site_id":     id,
				"recorded_at": timestamp,
				"metrics":     openapi.SchemaRef("TelemetryMetrics"),
				"alerts":      {Type: "array", Items: openapi.SchemaRef("Alert")},
				"suggestion":  openapi.SchemaRef("Suggestion"),
			},
		},
		"HealthStatus": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"site_health":         number("Mean of the subsystem scores"),
				"grid_draw":           number("Latest grid import in kW"),
				"battery_soc":         number("Latest battery state of charge"),
				"pv_generation_today": number("PV energy since UTC midnight in kWh"),
				"pv_health":           number("PV subsystem score 0-100"),
				"battery_soh":         number("Battery subsystem score 0-100"),
				"inverter_health":     number("Inverter subsystem score 0-100"),
				"ev_charger_health":   number("EV charger subsystem score 0-100"),
				"updated_at":          timestamp,
			},
		},
		"Timeseries": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"range":  {Type: "string"},
				"bucket": {Type: "string"},
				"points": {Type: "array", Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"timestamp":         timestamp,
						"samples":           {Type: "integer"},
						"pv_generation":     number(""),
						"net_load":          number(""),
						"battery_discharge": number(""),
						"battery_soc":       number(""),
						"grid_draw":         number(""),
					},
				}},
			},
		},
	}
}
