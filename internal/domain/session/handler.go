package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sheep-dashboard/internal/domain/catalog"
	"sheep-dashboard/internal/middleware"
	"sheep-dashboard/internal/platform/httpclient"
	"sheep-dashboard/internal/ports/capabilities"
)

func RegisterRoutes(r chi.Router, store *Store, resolver capabilities.Resolver) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(store))
		ar.Post("/register", registerHandler(store))
		ar.Post("/demo/{kind}", demoLoginHandler(store))
		ar.Post("/logout", logoutHandler(store))
	})

	r.Route("/me", func(mr chi.Router) {
		mr.With(middleware.RequireAuth).Get("/", meHandler(store, resolver))
		mr.With(middleware.Require(resolver, capabilities.ProfileEdit)).Put("/", updateProfileHandler(store))
	})
}

// sessionResponse es lo que devuelven login/register/demo.
type sessionResponse struct {
	Status    Status        `json:"status"`
	User      *catalog.User `json:"user,omitempty"`
	Demo      bool          `json:"demo"`
	HomeRoute string        `json:"homeRoute,omitempty"`
}

type registerResponse struct {
	LoggedIn bool             `json:"loggedIn"`
	Session  *sessionResponse `json:"session,omitempty"`
	Redirect string           `json:"redirect,omitempty"`
}

// meResponse alimenta el layout: capabilities y nav salen del mismo resolver que el guard.
type meResponse struct {
	sessionResponse
	Capabilities []capabilities.Capability `json:"capabilities"`
	Nav          []capabilities.NavItem    `json:"nav"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toSessionResponse(store *Store, snap Snapshot) sessionResponse {
	out := sessionResponse{Status: snap.Status, User: snap.User, Demo: snap.Demo}
	if snap.Status == StatusAuthenticated {
		out.HomeRoute = store.HomeRoute()
	}
	return out
}

// loginHandler godoc
// @Summary Login
// @Description Autentica contra el backend y persiste token, user y userRole. Ante cualquier fallo responde el mensaje genérico.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body Credentials true "email y password"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} errorResponse "invalid json"
// @Failure 401 {object} errorResponse "Invalid email or password."
// @Router /auth/login [post]
func loginHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Credentials
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		snap, err := store.Login(r.Context(), req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(store, snap))
	}
}

// registerHandler godoc
// @Summary Registro
// @Description Valida el formulario localmente (mensajes en orden) y registra en el backend. Si el backend no devuelve token, loggedIn=false y redirect=/login.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body RegisterInput true "Formulario de registro"
// @Success 201 {object} registerResponse
// @Failure 400 {object} errorResponse "validación"
// @Failure 502 {object} errorResponse "backend no disponible"
// @Router /auth/register [post]
func registerHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		snap, loggedIn, err := store.Register(r.Context(), req)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := registerResponse{LoggedIn: loggedIn}
		if loggedIn {
			sr := toSessionResponse(store, snap)
			out.Session = &sr
		} else {
			out.Redirect = "/login"
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

func demoLoginHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := store.DemoLogin(r.Context(), chi.URLParam(r, "kind"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(store, snap))
	}
}

func logoutHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Logout(r.Context()); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// meHandler godoc
// @Summary Sesión actual
// @Description Usuario, estado, capabilities, ruta de inicio y menú según rol.
// @Tags auth
// @Produce json
// @Success 200 {object} meResponse
// @Failure 401 {object} errorResponse "unauthorized"
// @Router /me [get]
func meHandler(store *Store, resolver capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		out := meResponse{
			sessionResponse: toSessionResponse(store, store.Snapshot()),
			Capabilities:    []capabilities.Capability{},
			Nav:             []capabilities.NavItem{},
		}
		if resolver != nil {
			if caps := resolver.Resolve(r.Context(), claims); caps != nil {
				out.Capabilities = caps
			}
			out.Nav = resolver.Nav(r.Context(), claims)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateProfileHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req catalog.User
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := store.UpdateProfile(r.Context(), req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// -------------------------
// Helpers
// -------------------------

func writeDomainError(w http.ResponseWriter, err error) {
	var ve *catalog.ValidationError
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrInvalidDemoKind):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDemoDisabled):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		if status, ok := httpclient.GatewayStatus(err); ok {
			writeError(w, status, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
