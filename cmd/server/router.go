package main

import (
	"net/http"

	"github.com/JaimeStill/ems-backend/internal/infrastructure"
	"github.com/JaimeStill/ems-backend/internal/stream"
	"github.com/JaimeStill/ems-backend/pkg/module"
)

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	router.HandleNative("GET /metrics", infra.Metrics.Handler().ServeHTTP)
	router.HandleNative(stream.Pattern, infra.Stream.ServeHTTP)

	return router
}
