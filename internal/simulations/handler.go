package simulations

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/ems-backend/pkg/handlers"
	"github.com/JaimeStill/ems-backend/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP handlers for simulations and predictive models.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new simulations HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the route group for simulation and prediction endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Simulations & Predictions"},
		Description: "Dispatch simulation and condition monitoring models",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/simulate", Handler: h.Simulate, OpenAPI: Spec.Simulate},
			{Method: "GET", Pattern: "/simulations/{simulation_id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "/predict/vibration", Handler: h.Vibration, OpenAPI: Spec.Vibration},
			{Method: "POST", Pattern: "/predict/solar", Handler: h.Solar, OpenAPI: Spec.Solar},
			{Method: "POST", Pattern: "/predict/motor-fault", Handler: h.MotorFault, OpenAPI: Spec.MotorFault},
		},
		Schemas: Spec.Schemas(),
	}
}

// decodeOptional decodes the body into v, leaving v untouched when the body is empty.
func decodeOptional(r *http.Request, v any) error {
	if err := handlers.DecodeJSON(r, v); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		return err
	}
	return nil
}

// Simulate handles POST /simulate.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var p Params
	if err := handlers.DecodeJSON(r, &p); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Simulate(r.Context(), p)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find handles GET /simulations/{simulation_id}.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("simulation_id"))
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

// Vibration handles POST /predict/vibration.
func (h *Handler) Vibration(w http.ResponseWriter, r *http.Request) {
	var req VibrationRequest
	if err := decodeOptional(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if req.Samples == nil {
		req.Samples = nominalVibration()
	}

	result, err := DiagnoseVibration(req.Samples)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Solar handles POST /predict/solar.
func (h *Handler) Solar(w http.ResponseWriter, r *http.Request) {
	var req SolarRequest
	if err := decodeOptional(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := ForecastSolar(req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// MotorFault handles POST /predict/motor-fault.
func (h *Handler) MotorFault(w http.ResponseWriter, r *http.Request) {
	var req MotorRequest
	if err := decodeOptional(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := DiagnoseMotor(req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
