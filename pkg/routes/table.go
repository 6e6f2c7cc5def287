package routes

import (
	"net/http"
	"slices"
	"strings"

	"github.com/JaimeStill/ems-backend/pkg/openapi"
)

var dispatchMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// Mount binds a route group to a path prefix within a Table.
// The group is borrowed: the table registers its routes but never modifies it.
type Mount struct {
	Prefix string
	Tags   []string
	Group  Group
}

// Entry is a single route as registered in a Table, with all prefixes applied.
type Entry struct {
	Method string
	Path   string
	Mount  int
	Tags   []string
}

// Pattern returns the http.ServeMux pattern for the entry.
func (e Entry) Pattern() string {
	return e.Method + " " + e.Path
}

type compiled struct {
	mount    Mount
	mux      *http.ServeMux
	patterns map[string]Entry
}

// Table is an ordered, immutable routing table built from mounts.
//
// Registration order is match priority. A request is offered to each mount in the
// order the mounts were given to NewTable and the first mount with a matching route
// serves it, so a mount with specific literal paths must precede a mount whose
// wildcard patterns would also match them. Within a single mount the usual
// http.ServeMux precedence rules apply.
//
// A Table is safe for concurrent use once NewTable returns.
type Table struct {
	mounts  []compiled
	entries []Entry
}

// NewTable compiles the mounts in order. Malformed or conflicting patterns within a
// mount panic, exactly as they would when registered on an http.ServeMux.
func NewTable(mounts ...Mount) *Table {
	t := &Table{
		mounts:  make([]compiled, 0, len(mounts)),
		entries: make([]Entry, 0),
	}

	for i, m := range mounts {
		c := compiled{
			mount:    m,
			mux:      http.NewServeMux(),
			patterns: make(map[string]Entry),
		}

		tags := m.Tags
		if len(tags) == 0 {
			tags = m.Group.Tags
		}

		for _, fr := range flatten(m.Prefix, m.Group) {
			entry := Entry{
				Method: fr.method,
				Path:   fr.path,
				Mount:  i,
				Tags:   tags,
			}
			c.mux.HandleFunc(entry.Pattern(), fr.handler)
			c.patterns[entry.Pattern()] = entry
			t.entries = append(t.entries, entry)
		}

		t.mounts = append(t.mounts, c)
	}

	return t
}

// Mounts returns the mounts in priority order.
func (t *Table) Mounts() []Mount {
	mounts := make([]Mount, len(t.mounts))
	for i, c := range t.mounts {
		mounts[i] = c.mount
	}
	return mounts
}

// Entries returns every registered route in registration order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

// Resolve reports which entry would serve a request with the given method and path.
func (t *Table) Resolve(method, path string) (Entry, bool) {
	r, err := http.NewRequest(method, path, nil)
	if err != nil {
		return Entry{}, false
	}

	c, pattern := t.match(r)
	if c == nil {
		return Entry{}, false
	}

	entry, ok := c.patterns[pattern]
	return entry, ok
}

// ServeHTTP dispatches the request to the first mount with a matching route.
func (t *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c, _ := t.match(r); c != nil {
		c.mux.ServeHTTP(w, r)
		return
	}

	if allowed := t.allowed(r); len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	http.NotFound(w, r)
}

// AddToSpec documents every mount under basePath. Mount tags replace group tags on
// operations that carry no tags of their own.
func (t *Table) AddToSpec(basePath string, spec *openapi.Spec) {
	for _, c := range t.mounts {
		c.mount.Group.addToSpec(basePath+c.mount.Prefix, spec, c.mount.Tags)
	}
}

func (t *Table) match(r *http.Request) (*compiled, string) {
	for i := range t.mounts {
		if _, pattern := t.mounts[i].mux.Handler(r); pattern != "" {
			return &t.mounts[i], pattern
		}
	}
	return nil, ""
}

func (t *Table) allowed(r *http.Request) []string {
	allowed := make([]string, 0)
	for _, method := range dispatchMethods {
		if method == r.Method {
			continue
		}
		probe := r.Clone(r.Context())
		probe.Method = method
		if c, _ := t.match(probe); c != nil {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

type flatRoute struct {
	method  string
	path    string
	handler http.HandlerFunc
}

func flatten(prefix string, group Group) []flatRoute {
	fullPrefix := prefix + group.Prefix
	flat := make([]flatRoute, 0, len(group.Routes))

	for _, route := range group.Routes {
		path := fullPrefix + route.Pattern
		if path == "" {
			path = "/"
		}
		flat = append(flat, flatRoute{
			method:  route.Method,
			path:    path,
			handler: route.Handler,
		})
	}

	for _, child := range group.Children {
		flat = append(flat, flatten(fullPrefix, child)...)
	}

	return flat
}
