package actions

import "github.com/JaimeStill/ems-backend/pkg/openapi"

type spec struct {
	AcknowledgeAlert    *openapi.Operation
	AcceptSuggestion    *openapi.Operation
	RejectSuggestion    *openapi.Operation
	ScheduleMaintenance *openapi.Operation
	SaveStrategy        *openapi.Operation
	AnalyzeRootCause    *openapi.Operation
	Ask                 *openapi.Operation
}

var (
	siteParam       = openapi.PathParam("site_id", "Site UUID")
	suggestionParam = openapi.PathParam("suggestion_id", "Suggestion UUID")
)

// Spec contains OpenAPI operation definitions for action endpoints.
var Spec = spec{
	AcknowledgeAlert: &openapi.Operation{
		Summary:    "Acknowledge alert",
		Parameters: []*openapi.Parameter{siteParam, openapi.PathParam("alert_id", "Alert UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Alert acknowledged", "Success"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	AcceptSuggestion: &openapi.Operation{
		Summary:    "Accept suggestion",
		Parameters: []*openapi.Parameter{siteParam, suggestionParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Suggestion accepted", "Decision"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	RejectSuggestion: &openapi.Operation{
		Summary:    "Reject suggestion",
		Parameters: []*openapi.Parameter{siteParam, suggestionParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Suggestion rejected", "Success"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	ScheduleMaintenance: &openapi.Operation{
		Summary:     "Schedule maintenance",
		Description: "Lead time is 1 day at failure probability 0.7 or above, 7 days at 0.4 or above, otherwise 30 days",
		Parameters:  []*openapi.Parameter{siteParam, openapi.PathParam("asset_id", "Asset UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Maintenance scheduled", "Maintenance"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	SaveStrategy: &openapi.Operation{
		Summary:     "Save dispatch strategy",
		Parameters:  []*openapi.Parameter{siteParam},
		RequestBody: openapi.RequestBodyJSON("Strategy", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Strategy saved", "Success"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	AnalyzeRootCause: &openapi.Operation{
		Summary:     "Analyze alert root cause",
		Description: "Uses the language model assistant when configured, otherwise rule based analysis",
		RequestBody: openapi.RequestBodyJSON("Incident", true),
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Analysis",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "string"}},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Ask: &openapi.Operation{
		Summary:     "Ask the assistant",
		RequestBody: openapi.RequestBodyJSON("Question", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseText("Answer"),
			400: openapi.ResponseRef("BadRequest"),
			502: {Description: "Assistant request failed"},
			503: {Description: "Assistant not configured"},
		},
	},
}

// Schemas returns the action domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	weight := &openapi.Schema{Type: "number", Description: "Objective weight between 0 and 1"}

	return map[string]*openapi.Schema{
		"Decision": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success":  {Type: "boolean"},
				"schedule": {Type: "string"},
			},
		},
		"Maintenance": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success":             {Type: "boolean"},
				"id":                  {Type: "string", Format: "uuid"},
				"asset_id":            {Type: "string", Format: "uuid"},
				"failure_probability": {Type: "number"},
				"scheduled_for":       {Type: "string", Format: "date-time"},
			},
		},
		"Strategy": {
			Type:     "object",
			Required: []string{"cost_weight", "emissions_weight", "battery_wear_weight"},
			Properties: map[string]*openapi.Schema{
				"cost_weight":         weight,
				"emissions_weight":    weight,
				"battery_wear_weight": weight,
			},
		},
		"Incident": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "string"},
				"site_id":   {Type: "string"},
				"severity":  {Type: "string"},
				"metric":    {Type: "string"},
				"message":   {Type: "string"},
				"value":     {Type: "number"},
				"timestamp": {Type: "string", Format: "date-time"},
			},
		},
		"Question": {
			Type:       "object",
			Required:   []string{"question"},
			Properties: map[string]*openapi.Schema{"question": {Type: "string"}},
		},
	}
}
