package auth

import "github.com/JaimeStill/ems-backend/pkg/openapi"

type spec struct {
	Token    *openapi.Operation
	Register *openapi.Operation
	Me       *openapi.Operation
}

// Spec contains OpenAPI operation definitions for authentication endpoints.
var Spec = spec{
	Token: &openapi.Operation{
		Summary:     "Log in",
		Description: "Exchanges form-encoded username (email) and password for a bearer token",
		RequestBody: openapi.RequestBodyForm("TokenForm"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Access token", "Token"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Register: &openapi.Operation{
		Summary:     "Register user",
		RequestBody: openapi.RequestBodyJSON("RegisterCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("User created", "User"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Me: &openapi.Operation{
		Summary: "Current user",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Authenticated user", "User"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"email":      {Type: "string", Format: "email"},
				"full_name":  {Type: "string"},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"RegisterCommand": {
			Type:     "object",
			Required: []string{"email", "password"},
			Properties: map[string]*openapi.Schema{
				"email":     {Type: "string", Format: "email"},
				"password":  {Type: "string", Description: "At least 8 characters"},
				"full_name": {Type: "string"},
			},
		},
		"TokenForm": {
			Type:     "object",
			Required: []string{"username", "password"},
			Properties: map[string]*openapi.Schema{
				"username": {Type: "string", Description: "Account email"},
				"password": {Type: "string"},
			},
		},
		"Token": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"access_token": {Type: "string"},
				"token_type":   {Type: "string", Example: "bearer"},
				"expires_in":   {Type: "integer", Description: "Lifetime in seconds"},
			},
		},
	}
}
