package query_test

import (
	"testing"

	"github.com/JaimeStill/ems-backend/pkg/query"
)

func TestNewProjectionMap(t *testing.T) {
	pm := query.NewProjectionMap("public", "assets", "a")

	if pm.Alias() != "a" {
		t.Errorf("Alias() = %q, want %q", pm.Alias(), "a")
	}

	if pm.Table() != "public.assets a" {
		t.Errorf("Table() = %q, want %q", pm.Table(), "public.assets a")
	}
}

func TestProjectionMap_Column(t *testing.T) {
	pm := query.NewProjectionMap("public", "assets", "a").
		Project("id", "ID").
		Project("failure_probability", "FailureProbability")

	tests := []struct {
		viewName string
		want     string
	}{
		{"ID", "a.id"},
		{"FailureProbability", "a.failure_probability"},
		{"Unknown", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.viewName, func(t *testing.T) {
			if got := pm.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}

	if !pm.Has("ID") || pm.Has("Unknown") {
		t.Error("Has() reported wrong membership")
	}
}

func TestProjectionMap_Columns(t *testing.T) {
	pm := query.NewProjectionMap("public", "assets", "a").
		Project("id", "ID").
		Project("name", "Name")

	if got := pm.Columns(); got != "a.id, a.name" {
		t.Errorf("Columns() = %q", got)
	}

	list := pm.ColumnList()
	list[0] = "mutated"

	if pm.ColumnList()[0] != "a.id" {
		t.Error("ColumnList() exposed internal state")
	}
}
