package openapi

import (
	"encoding/json"
	"net/http"
)

// NewSpec creates an OpenAPI 3.1 document with shared components pre-registered.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    "3.1.0",
		Info:       &Info{Title: title, Version: version},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

// SetDescription sets the API description.
func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// AddServer appends a server URL. Empty URLs are ignored.
func (s *Spec) AddServer(url string) {
	if url == "" {
		return
	}
	s.Servers = append(s.Servers, &Server{URL: url})
}

// RequireBearer marks bearerAuth as the document-wide security requirement.
func (s *Spec) RequireBearer() {
	s.Security = []map[string][]string{{"bearerAuth": {}}}
}

// AddOperation attaches op to the path item for path under the given HTTP method.
// Unsupported methods are ignored.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	if s.Paths[path] == nil {
		s.Paths[path] = &PathItem{}
	}

	switch method {
	case http.MethodGet:
		s.Paths[path].Get = op
	case http.MethodPost:
		s.Paths[path].Post = op
	case http.MethodPut:
		s.Paths[path].Put = op
	case http.MethodPatch:
		s.Paths[path].Patch = op
	case http.MethodDelete:
		s.Paths[path].Delete = op
	}
}

// NewComponents creates Components with the standard error responses and bearer auth scheme.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string"},
				},
			},
			"Success": {
				Type: "object",
				Properties: map[string]*Schema{
					"success": {Type: "boolean"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":   ResponseJSON("Invalid request", "Error"),
			"Unauthorized": ResponseJSON("Missing or invalid bearer token", "Error"),
			"NotFound":     ResponseJSON("Resource not found", "Error"),
			"Conflict":     ResponseJSON("Resource conflict", "Error"),
		},
		SecuritySchemes: map[string]*SecurityScheme{
			"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		},
	}
}

// AddSchemas merges schemas into the components.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// MarshalJSON renders the specification as indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec returns a handler that writes the pre-rendered specification.
func ServeSpec(spec []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(spec)
	}
}
