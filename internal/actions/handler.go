package actions

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/ems-backend/internal/assistant"
	"github.com/JaimeStill/ems-backend/pkg/handlers"
	"github.com/JaimeStill/ems-backend/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP handlers for operator actions.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new actions HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the route group for action endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Actions"},
		Description: "Operator actions on alerts, suggestions and assets",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/sites/{site_id}/alerts/{alert_id}/acknowledge", Handler: h.AcknowledgeAlert, OpenAPI: Spec.AcknowledgeAlert},
			{Method: "POST", Pattern: "/sites/{site_id}/suggestions/{suggestion_id}/accept", Handler: h.AcceptSuggestion, OpenAPI: Spec.AcceptSuggestion},
			{Method: "POST", Pattern: "/sites/{site_id}/suggestions/{suggestion_id}/reject", Handler: h.RejectSuggestion, OpenAPI: Spec.RejectSuggestion},
			{Method: "POST", Pattern: "/sites/{site_id}/maintenance/{asset_id}/schedule", Handler: h.ScheduleMaintenance, OpenAPI: Spec.ScheduleMaintenance},
			{Method: "POST", Pattern: "/sites/{site_id}/rl-strategy", Handler: h.SaveStrategy, OpenAPI: Spec.SaveStrategy},
			{Method: "POST", Pattern: "/alerts/analyze-root-cause", Handler: h.AnalyzeRootCause, OpenAPI: Spec.AnalyzeRootCause},
			{Method: "POST", Pattern: "/actions/ask-ai", Handler: h.Ask, OpenAPI: Spec.Ask},
		},
		Schemas: Spec.Schemas(),
	}
}

func pathIDs(r *http.Request, names ...string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(names))
	for i, name := range names {
		id, err := uuid.Parse(r.PathValue(name))
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// AcknowledgeAlert handles POST /sites/{site_id}/alerts/{alert_id}/acknowledge.
func (h *Handler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "site_id", "alert_id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.AcknowledgeAlert(r.Context(), ids[0], ids[1]); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w)
}

// AcceptSuggestion handles POST /sites/{site_id}/suggestions/{suggestion_id}/accept.
func (h *Handler) AcceptSuggestion(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "site_id", "suggestion_id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	schedule, err := h.sys.AcceptSuggestion(r.Context(), ids[0], ids[1])
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Decision{Success: true, Schedule: schedule})
}

// RejectSuggestion handles POST /sites/{site_id}/suggestions/{suggestion_id}/reject.
func (h *Handler) RejectSuggestion(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "site_id", "suggestion_id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.RejectSuggestion(r.Context(), ids[0], ids[1]); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w)
}

// ScheduleMaintenance handles POST /sites/{site_id}/maintenance/{asset_id}/schedule.
func (h *Handler) ScheduleMaintenance(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "site_id", "asset_id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.ScheduleMaintenance(r.Context(), ids[0], ids[1])
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// SaveStrategy handles POST /sites/{site_id}/rl-strategy.
func (h *Handler) SaveStrategy(w http.ResponseWriter, r *http.Request) {
	siteID, err := uuid.Parse(r.PathValue("site_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var s Strategy
	if err := handlers.DecodeJSON(r, &s); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.SaveStrategy(r.Context(), siteID, s); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w)
}

// AnalyzeRootCause handles POST /alerts/analyze-root-cause. The analysis is
// returned as a JSON string.
func (h *Handler) AnalyzeRootCause(w http.ResponseWriter, r *http.Request) {
	var incident assistant.Incident
	if err := handlers.DecodeJSON(r, &incident); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	analysis, err := h.sys.AnalyzeRootCause(r.Context(), incident)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, analysis)
}

// Ask handles POST /actions/ask-ai. The answer is plain text.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var q Question
	if err := handlers.DecodeJSON(r, &q); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	answer, err := h.sys.Ask(r.Context(), q.Question)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondText(w, http.StatusOK, answer)
}
