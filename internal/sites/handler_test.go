package sites_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/ems-backend/internal/sites"
	"github.com/JaimeStill/ems-backend/pkg/pagination"
	"github.com/JaimeStill/ems-backend/pkg/routes"
	"github.com/google/uuid"
)

type fakeSystem struct {
	sites map[uuid.UUID]sites.Site
	last  pagination.PageRequest
}

func newFake(seed ...sites.Site) *fakeSystem {
	f := &fakeSystem{sites: make(map[uuid.UUID]sites.Site)}
	for _, s := range seed {
		f.sites[s.ID] = s
	}
	return f
}

func (f *fakeSystem) List(_ context.Context, page pagination.PageRequest, _ sites.Filters) (*pagination.PageResult[sites.Site], error) {
	f.last = page
	data := make([]sites.Site, 0, len(f.sites))
	for _, s := range f.sites {
		data = append(data, s)
	}
	result := pagination.NewPageResult(data, len(data), page.Page, page.PageSize)
	return &result, nil
}

func (f *fakeSystem) Find(_ context.Context, id uuid.UUID) (*sites.Site, error) {
	s, ok := f.sites[id]
	if !ok {
		return nil, sites.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSystem) Create(_ context.Context, cmd sites.CreateCommand) (*sites.Site, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	for _, s := range f.sites {
		if s.Name == cmd.Name {
			return nil, sites.ErrDuplicate
		}
	}
	s := sites.Site{ID: uuid.New(), Name: cmd.Name, Location: cmd.Location, CapacityKw: cmd.CapacityKw}
	f.sites[s.ID] = s
	return &s, nil
}

func (f *fakeSystem) Update(_ context.Context, id uuid.UUID, cmd sites.UpdateCommand) (*sites.Site, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	s, ok := f.sites[id]
	if !ok {
		return nil, sites.ErrNotFound
	}
	s.Name = cmd.Name
	s.CapacityKw = cmd.CapacityKw
	f.sites[id] = s
	return &s, nil
}

func (f *fakeSystem) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.sites[id]; !ok {
		return sites.ErrNotFound
	}
	delete(f.sites, id)
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mount(sys sites.System) *routes.Table {
	h := sites.NewHandler(sys, discard(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
	return routes.NewTable(routes.Mount{Prefix: "/sites", Group: h.Routes()})
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandler_List(t *testing.T) {
	sys := newFake(sites.Site{ID: uuid.New(), Name: "A"}, sites.Site{ID: uuid.New(), Name: "B"})
	table := mount(sys)

	w := do(table, http.MethodGet, "/sites?page=1&page_size=500&sort=-name", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var result pagination.PageResult[sites.Site]
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
	if !sys.last.Paged {
		t.Error("Paged = false, want true when page is given")
	}
	if sys.last.PageSize != 100 {
		t.Errorf("PageSize = %d, want clamped to 100", sys.last.PageSize)
	}
	if len(sys.last.Sort) != 1 || sys.last.Sort[0].Field != "Name" || !sys.last.Sort[0].Descending {
		t.Errorf("Sort = %+v, want Name desc", sys.last.Sort)
	}
}

func TestHandler_ListReturnsArray(t *testing.T) {
	sys := newFake(sites.Site{ID: uuid.New(), Name: "A"}, sites.Site{ID: uuid.New(), Name: "B"})
	table := mount(sys)

	tests := []struct {
		name  string
		query string
	}{
		{"no params", ""},
		{"search and sort", "?search=pune&sort=-name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(table, http.MethodGet, "/sites"+tt.query, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if body := strings.TrimSpace(w.Body.String()); !strings.HasPrefix(body, "[") {
				t.Fatalf("body = %s, want JSON array", body)
			}

			var list []sites.Site
			if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(list) != 2 {
				t.Errorf("len = %d, want 2", len(list))
			}
			if sys.last.Paged {
				t.Error("Paged = true, want false without page params")
			}
		})
	}
}

func TestHandler_ListEmptyIsArray(t *testing.T) {
	w := do(mount(newFake()), http.MethodGet, "/sites", "")
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestHandler_CRUD(t *testing.T) {
	existing := sites.Site{ID: uuid.New(), Name: "Existing"}
	table := mount(newFake(existing))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"create", http.MethodPost, "/sites", `{"name":"New","capacity_kw":50}`, http.StatusCreated},
		{"create duplicate", http.MethodPost, "/sites", `{"name":"Existing"}`, http.StatusConflict},
		{"create invalid", http.MethodPost, "/sites", `{"name":""}`, http.StatusBadRequest},
		{"create no body", http.MethodPost, "/sites", "", http.StatusBadRequest},
		{"find", http.MethodGet, "/sites/" + existing.ID.String(), "", http.StatusOK},
		{"find missing", http.MethodGet, "/sites/" + uuid.NewString(), "", http.StatusNotFound},
		{"find bad id", http.MethodGet, "/sites/42", "", http.StatusBadRequest},
		{"update", http.MethodPut, "/sites/" + existing.ID.String(), `{"name":"Renamed","capacity_kw":10}`, http.StatusOK},
		{"update negative", http.MethodPut, "/sites/" + existing.ID.String(), `{"name":"X","capacity_kw":-1}`, http.StatusBadRequest},
		{"delete missing", http.MethodDelete, "/sites/" + uuid.NewString(), "", http.StatusNotFound},
		{"delete", http.MethodDelete, "/sites/" + existing.ID.String(), "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(table, tt.method, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestHandler_DeleteRespondsSuccess(t *testing.T) {
	s := sites.Site{ID: uuid.New(), Name: "Gone"}
	table := mount(newFake(s))

	w := do(table, http.MethodDelete, "/sites/"+s.ID.String(), "")

	var body map[string]bool
	json.NewDecoder(w.Body).Decode(&body)
	if !body["success"] {
		t.Errorf("body = %v, want success true", body)
	}
}
