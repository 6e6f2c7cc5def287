// Package module provides prefix-mounted HTTP modules and a top-level router
// that dispatches to them.
package module

import (
	"net/http"
	"strings"
)

// Module is an http.Handler mounted under a fixed path prefix with its own middleware stack.
type Module struct {
	prefix     string
	router     http.Handler
	middleware []func(http.Handler) http.Handler
}

// New creates a module serving router beneath prefix.
// The prefix must start with "/" and must not end with "/". Every segment must be
// non-empty, so "/api" and "/api/v1" are valid while "", "api", and "/api//v1" panic.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != "" {
		panic("module: " + err + ": " + prefix)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: make([]func(http.Handler) http.Handler, 0),
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The first middleware added is the outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
}

// Handler returns the module router wrapped in its middleware.
func (m *Module) Handler() http.Handler {
	h := m.router
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Serve strips the module prefix from the request path and dispatches it.
// The module root is served as "/".
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r := req.Clone(req.Context())
	r.URL.Path = path
	if req.URL.RawPath != "" {
		r.URL.RawPath = strings.TrimPrefix(req.URL.RawPath, m.prefix)
		if r.URL.RawPath == "" {
			r.URL.RawPath = "/"
		}
	}

	m.Handler().ServeHTTP(w, r)
}

func (m *Module) matches(path string) bool {
	return path == m.prefix || strings.HasPrefix(path, m.prefix+"/")
}

func validatePrefix(prefix string) string {
	if prefix == "" {
		return "empty prefix"
	}
	if !strings.HasPrefix(prefix, "/") {
		return "prefix must start with /"
	}
	if strings.HasSuffix(prefix, "/") {
		return "prefix must not end with /"
	}
	for _, seg := range strings.Split(prefix[1:], "/") {
		if seg == "" {
			return "prefix contains an empty segment"
		}
	}
	return ""
}
