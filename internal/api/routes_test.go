package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/ems-backend/internal/api"
	"github.com/JaimeStill/ems-backend/pkg/openapi"
	"github.com/JaimeStill/ems-backend/pkg/pagination"
	"github.com/JaimeStill/ems-backend/pkg/routes"
)

func writes(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func serve(t *testing.T, h http.Handler, method, path string) (int, string) {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))

	body, _ := io.ReadAll(w.Result().Body)
	return w.Code, string(body)
}

func group(name string, rs ...routes.Route) routes.Group {
	for i := range rs {
		rs[i].Handler = writes(name)
	}
	return routes.Group{Routes: rs}
}

func route(method, pattern string) routes.Route {
	return routes.Route{Method: method, Pattern: pattern}
}

type doubles struct {
	auth, sites, assets, data, actions, simulations routes.Group
}

func newDoubles() doubles {
	return doubles{
		auth: group("auth",
			route("POST", "/token"),
			route("GET", "/me"),
		),
		sites: group("sites",
			route("GET", ""),
			route("GET", "/{site_id}"),
			route("GET", "/{site_id}/{rest...}"),
		),
		assets: group("assets",
			route("GET", "/sites/{site_id}/assets"),
			route("GET", "/assets/{asset_id}"),
		),
		data: group("data",
			route("POST", "/sites/{site_id}/telemetry"),
			route("GET", "/sites/{site_id}/alerts"),
		),
		actions: group("actions",
			route("POST", "/sites/{site_id}/alerts/{alert_id}/acknowledge"),
			route("POST", "/actions/ask-ai"),
		),
		simulations: group("simulations",
			route("POST", "/simulate"),
		),
	}
}

func (d doubles) build() *routes.Table {
	return api.BuildRouter(d.auth, d.sites, d.assets, d.data, d.actions, d.simulations)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var wildcard = regexp.MustCompile(`\{[^}]+\}`)

func concrete(path string) string {
	return wildcard.ReplaceAllString(path, "00000000-0000-0000-0000-000000000042")
}

func TestBuildRouter_MountOrder(t *testing.T) {
	mounts := newDoubles().build().Mounts()

	want := []struct {
		prefix string
		tag    string
	}{
		{"/auth", "Authentication"},
		{"", "Assets"},
		{"", "Data"},
		{"", "Actions"},
		{"", "Simulations & Predictions"},
		{"/sites", "Sites"},
	}

	if len(mounts) != len(want) {
		t.Fatalf("got %d mounts, want %d", len(mounts), len(want))
	}

	for i, w := range want {
		if mounts[i].Prefix != w.prefix {
			t.Errorf("mount %d prefix = %q, want %q", i, mounts[i].Prefix, w.prefix)
		}
		if len(mounts[i].Tags) != 1 || mounts[i].Tags[0] != w.tag {
			t.Errorf("mount %d tags = %v, want [%s]", i, mounts[i].Tags, w.tag)
		}
	}
}

func TestBuildRouter_Completeness(t *testing.T) {
	table := newDoubles().build()

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"POST", "/auth/token", "auth"},
		{"GET", "/auth/me", "auth"},
		{"GET", "/sites", "sites"},
		{"GET", "/sites/42", "sites"},
		{"GET", "/sites/42/anything/else", "sites"},
		{"GET", "/sites/42/assets", "assets"},
		{"GET", "/assets/7", "assets"},
		{"POST", "/sites/42/telemetry", "data"},
		{"GET", "/sites/42/alerts", "data"},
		{"POST", "/sites/42/alerts/9/acknowledge", "actions"},
		{"POST", "/actions/ask-ai", "actions"},
		{"POST", "/simulate", "simulations"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			status, body := serve(t, table, tt.method, tt.path)
			if status != http.StatusOK {
				t.Fatalf("status = %d, want 200", status)
			}
			if body != tt.want {
				t.Errorf("served by %q, want %q", body, tt.want)
			}
		})
	}

	if got := len(table.Entries()); got != 12 {
		t.Errorf("entries = %d, want 12", got)
	}
}

func TestBuildRouter_PrefixCorrectness(t *testing.T) {
	table := newDoubles().build()

	for _, e := range table.Entries() {
		switch e.Mount {
		case 0:
			if !strings.HasPrefix(e.Path, "/auth/") {
				t.Errorf("auth route %s not under /auth", e.Pattern())
			}
		case 5:
			if e.Path != "/sites" && !strings.HasPrefix(e.Path, "/sites/") {
				t.Errorf("sites route %s not under /sites", e.Pattern())
			}
		}
	}

	unprefixed := []struct {
		method string
		path   string
	}{
		{"POST", "/token"},
		{"GET", "/me"},
		{"GET", "/42"},
		{"GET", "/42/anything"},
	}

	for _, u := range unprefixed {
		if status, _ := serve(t, table, u.method, u.path); status != http.StatusNotFound {
			t.Errorf("%s %s status = %d, want 404", u.method, u.path, status)
		}
	}
}

func TestBuildRouter_SiteScopedRoutesNotShadowed(t *testing.T) {
	table := newDoubles().build()

	entry, ok := table.Resolve("GET", "/sites/42/assets")
	if !ok {
		t.Fatal("/sites/42/assets did not resolve")
	}
	if entry.Pattern() != "GET /sites/{site_id}/assets" {
		t.Errorf("resolved to %s, want the assets route", entry.Pattern())
	}

	if _, body := serve(t, table, "GET", "/sites/42/assets"); body != "assets" {
		t.Errorf("served by %q, want assets", body)
	}
}

func TestBuildRouter_Idempotent(t *testing.T) {
	d := newDoubles()

	first := d.build().Entries()
	second := d.build().Entries()

	same := slices.EqualFunc(first, second, func(a, b routes.Entry) bool {
		return a.Pattern() == b.Pattern() && a.Mount == b.Mount
	})
	if !same {
		t.Errorf("builds differ:\n%v\n%v", first, second)
	}
}

func TestBuildRouter_OrderSensitivity(t *testing.T) {
	d := newDoubles()

	misordered := routes.NewTable(
		routes.Mount{Prefix: "/auth", Group: d.auth},
		routes.Mount{Prefix: "/sites", Group: d.sites},
		routes.Mount{Prefix: "", Group: d.assets},
		routes.Mount{Prefix: "", Group: d.data},
		routes.Mount{Prefix: "", Group: d.actions},
		routes.Mount{Prefix: "", Group: d.simulations},
	)

	if _, body := serve(t, misordered, "GET", "/sites/42/assets"); body != "sites" {
		t.Errorf("misordered table served %q, want the sites catch-all to shadow assets", body)
	}
	if _, body := serve(t, d.build(), "GET", "/sites/42/assets"); body != "assets" {
		t.Errorf("ordered table served %q, want assets", body)
	}
}

func TestBuildRouter_MethodNotAllowed(t *testing.T) {
	table := newDoubles().build()

	status, _ := serve(t, table, "DELETE", "/simulate")
	if status != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", status)
	}
}

func TestNewTable_EveryRouteResolvesToItself(t *testing.T) {
	table := api.NewTable(&api.Domain{}, discard(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})

	entries := table.Entries()
	if len(entries) != 31 {
		t.Errorf("entries = %d, want 31", len(entries))
	}

	for _, e := range entries {
		got, ok := table.Resolve(e.Method, concrete(e.Path))
		if !ok {
			t.Errorf("%s does not resolve", e.Pattern())
			continue
		}
		if got.Pattern() != e.Pattern() {
			t.Errorf("%s resolved to %s", e.Pattern(), got.Pattern())
		}
	}
}

func TestNewTable_OpenAPI(t *testing.T) {
	table := api.NewTable(&api.Domain{}, discard(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})

	spec := openapi.NewSpec("EMS API", "test")
	table.AddToSpec("/api/v1", spec)

	tests := []struct {
		path string
		tag  string
	}{
		{"/api/v1/auth/token", "Authentication"},
		{"/api/v1/sites", "Sites"},
		{"/api/v1/sites/{site_id}/assets", "Assets"},
		{"/api/v1/sites/{site_id}/health-status", "Data"},
		{"/api/v1/actions/ask-ai", "Actions"},
		{"/api/v1/predict/solar", "Simulations & Predictions"},
	}

	for _, tt := range tests {
		item := spec.Paths[tt.path]
		if item == nil {
			t.Errorf("%s missing from document", tt.path)
			continue
		}

		var op *openapi.Operation
		for _, candidate := range []*openapi.Operation{item.Get, item.Post} {
			if candidate != nil {
				op = candidate
				break
			}
		}
		if op == nil || !slices.Contains(op.Tags, tt.tag) {
			t.Errorf("%s tags = %v, want %s", tt.path, op, tt.tag)
		}
	}
}
