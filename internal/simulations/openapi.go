package simulations

import "github.com/JaimeStill/ems-backend/pkg/openapi"

type spec struct {
	Simulate   *openapi.Operation
	Find       *openapi.Operation
	Vibration  *openapi.Operation
	Solar      *openapi.Operation
	MotorFault *openapi.Operation
}

func optionalBody(schema string) *openapi.RequestBody {
	return openapi.RequestBodyJSON(schema, false)
}

// Spec contains OpenAPI operation definitions for simulation endpoints.
var Spec = spec{
	Simulate: &openapi.Operation{
		Summary:     "Run dispatch simulation",
		Description: "Simulates one day of the reference plant and archives the run",
		RequestBody: openapi.RequestBodyJSON("SimulationParams", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Hourly cost and emissions", "SimulationResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get archived simulation",
		Parameters: []*openapi.Parameter{openapi.PathParam("simulation_id", "Simulation UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Archived run", "SimulationResult"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Vibration: &openapi.Operation{
		Summary:     "Vibration diagnosis",
		Description: "Classifies an acceleration signal by RMS and crest factor. Without samples a nominal signal is used",
		RequestBody: optionalBody("VibrationRequest"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Diagnosis", "Diagnosis"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Solar: &openapi.Operation{
		Summary:     "Solar forecast",
		Description: "Hourly PV output forecast from the clear-sky curve and cloud cover",
		RequestBody: optionalBody("SolarRequest"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Forecast", "Forecast"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	MotorFault: &openapi.Operation{
		Summary:     "Motor fault diagnosis",
		RequestBody: optionalBody("MotorRequest"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Diagnosis", "Diagnosis"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

// Schemas returns the simulation domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	hourly := &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "number"}, Description: "24 hourly values"}
	params := &openapi.Schema{
		Type:     "object",
		Required: []string{"pvCurtail", "batteryTarget", "gridPrice"},
		Properties: map[string]*openapi.Schema{
			"pvCurtail":     {Type: "number", Description: "PV curtailment in percent"},
			"batteryTarget": {Type: "number", Description: "Battery reserve in percent of capacity"},
			"gridPrice":     {Type: "number", Description: "Grid price per kWh"},
		},
	}

	return map[string]*openapi.Schema{
		"SimulationParams": params,
		"SimulationResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "string", Format: "uuid"},
				"params":          openapi.SchemaRef("SimulationParams"),
				"cost":            hourly,
				"emissions":       hourly,
				"total_cost":      {Type: "number"},
				"total_emissions": {Type: "number", Description: "kg CO2"},
				"created_at":      {Type: "string", Format: "date-time"},
			},
		},
		"Diagnosis": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"prediction": {Type: "string"},
				"confidence": {Type: "number"},
				"features":   {Type: "object"},
			},
		},
		"VibrationRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"samples": {Type: "array", Items: &openapi.Schema{Type: "number"}, Description: "Acceleration in g"},
			},
		},
		"SolarRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"capacity_kw": {Type: "number"},
				"cloud_cover": {Type: "number", Description: "Fraction 0-1"},
			},
		},
		"Forecast": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"prediction": hourly},
		},
		"MotorRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"current_imbalance": {Type: "number", Description: "Percent"},
				"temperature":       {Type: "number", Description: "Degrees Celsius"},
				"vibration_rms":     {Type: "number", Description: "mm/s"},
			},
		},
	}
}
