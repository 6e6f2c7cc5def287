package assets

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/ems-backend/pkg/handlers"
	"github.com/JaimeStill/ems-backend/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP handlers for asset endpoints.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new assets HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the route group for asset endpoints. The group is mounted at the
// API root so the site-scoped listing sits beside the asset collection.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Assets"},
		Description: "Site equipment, maintenance ranking, and digital twin",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/sites/{site_id}/assets", Handler: h.ListBySite, OpenAPI: Spec.ListBySite},
			{Method: "POST", Pattern: "/assets", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/assets/{asset_id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/assets/{asset_id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/assets/{asset_id}", Handler: h.Delete, OpenAPI: Spec.Delete},
			{Method: "GET", Pattern: "/assets/{asset_id}/digital-twin", Handler: h.DigitalTwin, OpenAPI: Spec.DigitalTwin},
		},
		Schemas: Spec.Schemas(),
	}
}

// ListBySite handles GET /sites/{site_id}/assets.
func (h *Handler) ListBySite(w http.ResponseWriter, r *http.Request) {
	siteID, err := uuid.Parse(r.PathValue("site_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.ListBySite(r.Context(), siteID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find handles GET /assets/{asset_id}.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("asset_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create handles POST /assets.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update handles PUT /assets/{asset_id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("asset_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd UpdateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /assets/{asset_id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("asset_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w)
}

// DigitalTwin handles GET /assets/{asset_id}/digital-twin.
func (h *Handler) DigitalTwin(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("asset_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.DigitalTwin(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
