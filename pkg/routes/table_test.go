package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/ems-backend/pkg/openapi"
	"github.com/JaimeStill/ems-backend/pkg/routes"
)

func writes(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func serve(t *testing.T, h http.Handler, method, path string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func specificGroup() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/sites/{site_id}/assets", Handler: writes("assets")},
		},
	}
}

func genericGroup() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: writes("sites")},
			{Method: "GET", Pattern: "/{site_id}/{rest...}", Handler: writes("sites catch-all")},
		},
	}
}

func TestNewTable_EmptyServesNotFound(t *testing.T) {
	table := routes.NewTable()

	status, _ := serve(t, table, http.MethodGet, "/anything")
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", status, http.StatusNotFound)
	}
}

func TestTable_FirstMountWins(t *testing.T) {
	table := routes.NewTable(
		routes.Mount{Prefix: "", Group: specificGroup()},
		routes.Mount{Prefix: "/sites", Group: genericGroup()},
	)

	tests := []struct {
		path string
		want string
	}{
		{"/sites/42/assets", "assets"},
		{"/sites/42/alerts", "sites catch-all"},
		{"/sites", "sites"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := serve(t, table, http.MethodGet, tt.path)
			if status != http.StatusOK {
				t.Fatalf("status = %d, want %d", status, http.StatusOK)
			}
			if body != tt.want {
				t.Errorf("body = %q, want %q", body, tt.want)
			}
		})
	}
}

func TestTable_RegistrationOrderIsPriority(t *testing.T) {
	table := routes.NewTable(
		routes.Mount{Prefix: "/sites", Group: genericGroup()},
		routes.Mount{Prefix: "", Group: specificGroup()},
	)

	_, body := serve(t, table, http.MethodGet, "/sites/42/assets")
	if body != "sites catch-all" {
		t.Errorf("body = %q, want generic mount to shadow when registered first", body)
	}
}

func TestTable_PathValues(t *testing.T) {
	table := routes.NewTable(routes.Mount{
		Prefix: "/sites",
		Group: routes.Group{
			Routes: []routes.Route{
				{
					Method:  "GET",
					Pattern: "/{site_id}",
					Handler: func(w http.ResponseWriter, r *http.Request) {
						w.Write([]byte(r.PathValue("site_id")))
					},
				},
			},
		},
	})

	_, body := serve(t, table, http.MethodGet, "/sites/abc")
	if body != "abc" {
		t.Errorf("path value = %q, want %q", body, "abc")
	}
}

func TestTable_MethodNotAllowed(t *testing.T) {
	table := routes.NewTable(
		routes.Mount{Prefix: "", Group: specificGroup()},
		routes.Mount{Prefix: "/sites", Group: genericGroup()},
	)

	req := httptest.NewRequest(http.MethodDelete, "/sites/42/assets", nil)
	w := httptest.NewRecorder()
	table.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}

	if allow := w.Header().Get("Allow"); allow != "GET" {
		t.Errorf("Allow = %q, want %q", allow, "GET")
	}
}

func TestTable_Entries(t *testing.T) {
	table := routes.NewTable(
		routes.Mount{Prefix: "/auth", Tags: []string{"Authentication"}, Group: routes.Group{
			Routes: []routes.Route{{Method: "POST", Pattern: "/token", Handler: writes("token")}},
		}},
		routes.Mount{Prefix: "", Group: specificGroup()},
		routes.Mount{Prefix: "/sites", Group: genericGroup()},
	)

	got := make([]string, 0)
	for _, e := range table.Entries() {
		got = append(got, e.Pattern())
	}

	want := []string{
		"POST /auth/token",
		"GET /sites/{site_id}/assets",
		"GET /sites",
		"GET /sites/{site_id}/{rest...}",
	}

	if !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	if tags := table.Entries()[0].Tags; len(tags) != 1 || tags[0] != "Authentication" {
		t.Errorf("mount tags = %v, want [Authentication]", tags)
	}
}

func TestTable_EntriesReturnsCopy(t *testing.T) {
	table := routes.NewTable(routes.Mount{Prefix: "", Group: specificGroup()})

	entries := table.Entries()
	entries[0].Path = "/mutated"

	if table.Entries()[0].Path == "/mutated" {
		t.Error("Entries() exposed internal state")
	}
}

func TestTable_Resolve(t *testing.T) {
	table := routes.NewTable(
		routes.Mount{Prefix: "", Group: specificGroup()},
		routes.Mount{Prefix: "/sites", Group: genericGroup()},
	)

	entry, ok := table.Resolve(http.MethodGet, "/sites/7/assets")
	if !ok {
		t.Fatal("Resolve() found no entry")
	}

	if entry.Mount != 0 || entry.Path != "/sites/{site_id}/assets" {
		t.Errorf("Resolve() = %+v, want mount 0 assets route", entry)
	}

	if _, ok := table.Resolve(http.MethodGet, "/unknown"); ok {
		t.Error("Resolve() matched an unknown path")
	}
}

func TestTable_ConflictingPatternsPanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewTable() with duplicate patterns did not panic")
		}
	}()

	routes.NewTable(routes.Mount{Group: routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/a/{x}", Handler: writes("one")},
			{Method: "GET", Pattern: "/a/{y}", Handler: writes("two")},
		},
	}})
}

func TestTable_AddToSpec(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")

	table := routes.NewTable(routes.Mount{
		Prefix: "/sites",
		Tags:   []string{"Sites"},
		Group: routes.Group{
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: writes("sites"), OpenAPI: &openapi.Operation{Summary: "List sites"}},
			},
		},
	})

	table.AddToSpec("/api/v1", spec)

	item := spec.Paths["/api/v1/sites"]
	if item == nil || item.Get == nil {
		t.Fatal("mounted route missing from spec")
	}

	if len(item.Get.Tags) != 1 || item.Get.Tags[0] != "Sites" {
		t.Errorf("Tags = %v, want [Sites]", item.Get.Tags)
	}
}
