package simulations_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/ems-backend/internal/simulations"
	"github.com/JaimeStill/ems-backend/pkg/routes"
	"github.com/google/uuid"
)

func newTable(t *testing.T) *routes.Table {
	sys, _ := newArchive(t)
	return routes.NewTable(routes.Mount{Group: simulations.NewHandler(sys, discard()).Routes()})
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, r))
	return w
}

func TestHandler_Endpoints(t *testing.T) {
	table := newTable(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"simulate", http.MethodPost, "/simulate", `{"pvCurtail":10,"batteryTarget":20,"gridPrice":0.3}`, http.StatusOK},
		{"simulate invalid", http.MethodPost, "/simulate", `{"pvCurtail":-5,"batteryTarget":20,"gridPrice":0.3}`, http.StatusBadRequest},
		{"simulate no body", http.MethodPost, "/simulate", "", http.StatusBadRequest},
		{"find missing", http.MethodGet, "/simulations/" + uuid.NewString(), "", http.StatusNotFound},
		{"find bad id", http.MethodGet, "/simulations/latest", "", http.StatusBadRequest},
		{"vibration no body", http.MethodPost, "/predict/vibration", "", http.StatusOK},
		{"vibration samples", http.MethodPost, "/predict/vibration", `{"samples":[0.1,0.1,2.5,0.1]}`, http.StatusOK},
		{"vibration too few", http.MethodPost, "/predict/vibration", `{"samples":[1]}`, http.StatusBadRequest},
		{"vibration overflowing", http.MethodPost, "/predict/vibration", `{"samples":[1e200,-1e200,1e200]}`, http.StatusBadRequest},
		{"vibration malformed", http.MethodPost, "/predict/vibration", `{"samples":`, http.StatusBadRequest},
		{"solar no body", http.MethodPost, "/predict/solar", "", http.StatusOK},
		{"solar invalid", http.MethodPost, "/predict/solar", `{"cloud_cover":2}`, http.StatusBadRequest},
		{"solar huge capacity", http.MethodPost, "/predict/solar", `{"capacity_kw":1e307}`, http.StatusBadRequest},
		{"simulate huge price", http.MethodPost, "/simulate", `{"pvCurtail":0,"batteryTarget":50,"gridPrice":1e307}`, http.StatusBadRequest},
		{"motor no body", http.MethodPost, "/predict/motor-fault", "", http.StatusOK},
		{"motor hot", http.MethodPost, "/predict/motor-fault", `{"temperature":120}`, http.StatusOK},
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

func TestHandler_SimulateThenFind(t *testing.T) {
	table := newTable(t)

	w := do(table, http.MethodPost, "/simulate", `{"pvCurtail":0,"batteryTarget":50,"gridPrice":0.2}`)
	var run struct {
		ID        string    `json:"id"`
		Cost      []float64 `json:"cost"`
		Emissions []float64 `json:"emissions"`
	}
	if err := json.NewDecoder(w.Body).Decode(&run); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(run.Cost) != 24 || len(run.Emissions) != 24 {
		t.Fatalf("cost %d emissions %d, want 24 each", len(run.Cost), len(run.Emissions))
	}

	w = do(table, http.MethodGet, "/simulations/"+run.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("find status = %d", w.Code)
	}
}

func TestHandler_PredictionShape(t *testing.T) {
	table := newTable(t)

	w := do(table, http.MethodPost, "/predict/vibration", "")
	var diag map[string]any
	if err := json.NewDecoder(w.Body).Decode(&diag); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diag["prediction"] != "Normal" {
		t.Errorf("prediction = %v, want Normal", diag["prediction"])
	}
	if _, ok := diag["confidence"].(float64); !ok {
		t.Errorf("confidence missing: %v", diag)
	}

	w = do(table, http.MethodPost, "/predict/solar", "")
	var forecast simulations.Forecast
	if err := json.NewDecoder(w.Body).Decode(&forecast); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(forecast.Prediction) != 24 {
		t.Errorf("forecast length = %d", len(forecast.Prediction))
	}
}
