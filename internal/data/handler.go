package data

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/JaimeStill/ems-backend/pkg/handlers"
	"github.com/JaimeStill/ems-backend/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP handlers for telemetry and site analytics.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new data HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the route group for data endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Data"},
		Description: "Telemetry ingest and site analytics",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/sites/{site_id}/telemetry", Handler: h.Ingest, OpenAPI: Spec.Ingest},
			{Method: "GET", Pattern: "/sites/{site_id}/health-status", Handler: h.HealthStatus, OpenAPI: Spec.HealthStatus},
			{Method: "GET", Pattern: "/sites/{site_id}/alerts", Handler: h.Alerts, OpenAPI: Spec.Alerts},
			{Method: "GET", Pattern: "/sites/{site_id}/timeseries", Handler: h.Timeseries, OpenAPI: Spec.Timeseries},
			{Method: "GET", Pattern: "/sites/{site_id}/suggestions", Handler: h.Suggestions, OpenAPI: Spec.Suggestions},
		},
		Schemas: Spec.Schemas(),
	}
}

// Ingest handles POST /sites/{site_id}/telemetry.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	siteID, err := uuid.Parse(r.PathValue("site_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd IngestCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Ingest(r.Context(), siteID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HealthStatus handles GET /sites/{site_id}/health-status.
func (h *Handler) HealthStatus(w http.ResponseWriter, r *http.Request) {
	siteID, err := uuid.Parse(r.PathValue("site_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.HealthStatus(r.Context(), siteID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Alerts handles GET /sites/{site_id}/alerts.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	siteID, err := uuid.Parse(r.PathValue("site_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	status, err := statusParam(r, AlertActive, AlertAcknowledged)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Alerts(r.Context(), siteID, status)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Timeseries handles GET /sites/{site_id}/timeseries.
func (h *Handler) Timeseries(w http.ResponseWriter, r *http.Request) {
	siteID, err := uuid.Parse(r.PathValue("site_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rng, err := ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Timeseries(r.Context(), siteID, rng)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Suggestions handles GET /sites/{site_id}/suggestions.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	siteID, err := uuid.Parse(r.PathValue("site_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	status, err := statusParam(r, SuggestionPending, SuggestionAccepted, SuggestionRejected)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Suggestions(r.Context(), siteID, status)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func statusParam(r *http.Request, allowed ...string) (string, error) {
	status := r.URL.Query().Get("status")
	if status == "" || slices.Contains(allowed, status) {
		return status, nil
	}
	return "", ErrInvalidStatus
}
