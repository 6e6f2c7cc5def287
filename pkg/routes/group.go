// Package routes defines route groups and the ordered mount table that composes them
// into a single http.Handler.
package routes

import (
	"net/http"

	"github.com/JaimeStill/ems-backend/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// Route represents an HTTP route with method, pattern, and handler.
// Pattern uses http.ServeMux wildcard syntax and is relative to its group prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// AddToSpec adds every documented route in the group, and its children, to spec
// under the given path prefix. Operations without explicit tags inherit the group tags.
func (g Group) AddToSpec(prefix string, spec *openapi.Spec) {
	g.addToSpec(prefix, spec, nil)
}

func (g Group) addToSpec(prefix string, spec *openapi.Spec, override []string) {
	fullPrefix := prefix + g.Prefix

	tags := g.Tags
	if len(override) > 0 {
		tags = override
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := *route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}

		spec.AddOperation(fullPrefix+route.Pattern, route.Method, &op)
	}

	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, child := range g.Children {
		child.addToSpec(fullPrefix, spec, override)
	}
}
