package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/ems-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_CountsRequests(t *testing.T) {
	m := metrics.New("ems")

	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	if !strings.Contains(body, `ems_http_requests_total{code="404",method="GET"} 3`) {
		t.Errorf("metrics output missing request counter:\n%s", body)
	}
}

func TestDomainCounters(t *testing.T) {
	m := metrics.New("ems")

	m.TelemetryIngested.Inc()
	m.AlertsRaised.WithLabelValues("critical").Inc()
	m.AlertsRaised.WithLabelValues("critical").Inc()

	if got := testutil.ToFloat64(m.TelemetryIngested); got != 1 {
		t.Errorf("TelemetryIngested = %v, want 1", got)
	}

	if got := testutil.ToFloat64(m.AlertsRaised.WithLabelValues("critical")); got != 2 {
		t.Errorf("AlertsRaised{critical} = %v, want 2", got)
	}
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := metrics.New("ems")
	b := metrics.New("ems")

	if a.Registry() == b.Registry() {
		t.Error("registries should be independent")
	}
}
