package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/JaimeStill/ems-backend/pkg/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordedSpan struct {
	name   string
	status codes.Code
	attrs  map[attribute.Key]attribute.Value
	ended  bool
}

type recordingProvider struct {
	noop.TracerProvider
	mu    sync.Mutex
	spans []*recordedSpan
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return &recordingTracer{provider: p}
}

type recordingTracer struct {
	noop.Tracer
	provider *recordingProvider
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	rec := &recordedSpan{name: name, attrs: make(map[attribute.Key]attribute.Value)}
	for _, kv := range trace.NewSpanStartConfig(opts...).Attributes() {
		rec.attrs[kv.Key] = kv.Value
	}

	t.provider.mu.Lock()
	t.provider.spans = append(t.provider.spans, rec)
	t.provider.mu.Unlock()

	span := &recordingSpan{rec: rec}
	return trace.ContextWithSpan(ctx, span), span
}

type recordingSpan struct {
	noop.Span
	rec *recordedSpan
}

func (s *recordingSpan) End(...trace.SpanEndOption) { s.rec.ended = true }

func (s *recordingSpan) SetStatus(code codes.Code, _ string) { s.rec.status = code }

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.rec.attrs[a.Key] = a.Value
	}
}

func TestTrace_RecordsSpan(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus codes.Code
	}{
		{"ok", http.StatusOK, codes.Unset},
		{"client error", http.StatusNotFound, codes.Unset},
		{"server error", http.StatusBadGateway, codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := &recordingProvider{}
			var inHandler trace.Span

			handler := middleware.Trace(tp, "ems")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inHandler = trace.SpanFromContext(r.Context())
				w.WriteHeader(tt.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/simulate", nil))

			if len(tp.spans) != 1 {
				t.Fatalf("spans = %d, want 1", len(tp.spans))
			}
			span := tp.spans[0]

			if span.name != "POST /simulate" {
				t.Errorf("name = %q", span.name)
			}
			if !span.ended {
				t.Error("span not ended")
			}
			if span.status != tt.wantStatus {
				t.Errorf("status = %v, want %v", span.status, tt.wantStatus)
			}
			if got := span.attrs["http.response.status_code"].AsInt64(); got != int64(tt.status) {
				t.Errorf("status_code attr = %d, want %d", got, tt.status)
			}
			if got := span.attrs["url.path"].AsString(); got != "/simulate" {
				t.Errorf("url.path attr = %q", got)
			}
			if _, ok := inHandler.(*recordingSpan); !ok {
				t.Errorf("handler context span = %T, want recording span", inHandler)
			}
		})
	}
}

func TestTrace_GlobalProvider(t *testing.T) {
	handler := middleware.Trace(nil, "ems")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sites", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
