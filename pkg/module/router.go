package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests to mounted modules by prefix and falls back to a
// native ServeMux for top-level endpoints such as health probes.
type Router struct {
	native  *http.ServeMux
	modules []*Module
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		native:  http.NewServeMux(),
		modules: make([]*Module, 0),
	}
}

// HandleNative registers a handler on the native ServeMux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount adds a module. When prefixes overlap the longest one wins.
func (r *Router) Mount(m *Module) {
	r.modules = append(r.modules, m)
}

// Modules returns the mounted modules in registration order.
func (r *Router) Modules() []*Module {
	return r.modules
}

// ServeHTTP trims trailing slashes, then dispatches to the matching module or
// the native mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if path := req.URL.Path; len(path) > 1 && strings.HasSuffix(path, "/") {
		req = req.Clone(req.Context())
		req.URL.Path = trimSlashes(path)
		if req.URL.RawPath != "" {
			req.URL.RawPath = trimSlashes(req.URL.RawPath)
		}
	}

	if m := r.match(req.URL.Path); m != nil {
		m.Serve(w, req)
		return
	}

	r.native.ServeHTTP(w, req)
}

func (r *Router) match(path string) *Module {
	var best *Module
	for _, m := range r.modules {
		if m.matches(path) && (best == nil || len(m.prefix) > len(best.prefix)) {
			best = m
		}
	}
	return best
}

func trimSlashes(path string) string {
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}
