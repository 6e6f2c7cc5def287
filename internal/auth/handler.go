package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/ems-backend/pkg/handlers"
	"github.com/JaimeStill/ems-backend/pkg/routes"
)

// Public paths, relative to the auth mount, that do not require a token.
const (
	TokenPath    = "/token"
	RegisterPath = "/register"
)

// Handler provides HTTP handlers for login, registration, and the current user.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new auth HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the route group for authentication endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Authentication"},
		Description: "Login, registration, and identity",
		Routes: []routes.Route{
			{Method: "POST", Pattern: TokenPath, Handler: h.Token, OpenAPI: Spec.Token},
			{Method: "POST", Pattern: RegisterPath, Handler: h.Register, OpenAPI: Spec.Register},
			{Method: "GET", Pattern: "/me", Handler: h.Me, OpenAPI: Spec.Me},
		},
		Schemas: Spec.Schemas(),
	}
}

// Token handles POST /auth/token, exchanging form credentials for an access token.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("username and password are required"))
		return
	}

	token, err := h.sys.Authenticate(r.Context(), username, password)
	if err != nil {
		status := MapHTTPStatus(err)
		if status == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", `Bearer realm="ems"`)
		}
		handlers.RespondError(w, h.logger, status, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, token)
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd RegisterCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	user, err := h.sys.Register(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, user)
}

// Me handles GET /auth/me, returning the caller's account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrMissingToken)
		return
	}

	user, err := h.sys.Find(r.Context(), id.UserID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}
