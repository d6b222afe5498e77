package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sheep-dashboard/internal/middleware"
	"sheep-dashboard/internal/platform/httpclient"
	"sheep-dashboard/internal/ports/capabilities"
)

func RegisterRoutes(r chi.Router, store *Store, resolver capabilities.Resolver) {
	need := func(c capabilities.Capability) func(http.Handler) http.Handler {
		return middleware.Require(resolver, c)
	}

	r.Route("/sheep", func(sr chi.Router) {
		sr.With(need(capabilities.SheepRead)).Get("/", listSheepHandler(store))
		sr.With(need(capabilities.SheepWrite)).Post("/", createSheepHandler(store))
		sr.With(need(capabilities.SheepRead)).Get("/{id}", getSheepHandler(store))
		sr.With(need(capabilities.SheepWrite)).Put("/{id}", updateSheepHandler(store))
		sr.With(need(capabilities.SheepWrite)).Delete("/{id}", deleteSheepHandler(store))
	})

	r.Route("/centers", func(cr chi.Router) {
		cr.With(need(capabilities.CentersRead)).Get("/", listCentersHandler(store))
		cr.With(need(capabilities.CentersWrite)).Post("/", createCenterHandler(store))
		cr.With(need(capabilities.CentersRead)).Get("/{id}", getCenterHandler(store))
		cr.With(need(capabilities.CentersWrite)).Put("/{id}", updateCenterHandler(store))
		cr.With(need(capabilities.CentersWrite)).Delete("/{id}", deleteCenterHandler(store))
	})

	r.Route("/appointments", func(ar chi.Router) {
		ar.With(need(capabilities.AppointmentsRead)).Get("/", listAppointmentsHandler(store))
		ar.With(need(capabilities.AppointmentsWrite)).Post("/", createAppointmentHandler(store))
		ar.With(need(capabilities.AppointmentsRead)).Get("/{id}", getAppointmentHandler(store))
		ar.With(need(capabilities.AppointmentsWrite)).Put("/{id}", updateAppointmentHandler(store))
		ar.With(need(capabilities.AppointmentsWrite)).Delete("/{id}", deleteAppointmentHandler(store))
	})

	// Admin
	r.Route("/admin/users", func(ur chi.Router) {
		ur.Use(need(capabilities.UsersManage))
		ur.Get("/", listUsersHandler(store))
		ur.Get("/{id}", getUserHandler(store))
		ur.Put("/{id}", updateUserHandler(store))
		ur.Delete("/{id}", deleteUserHandler(store))
	})
	r.With(need(capabilities.AdminDashboard)).Get("/admin/dashboard", dashboardHandler(store))
}

// -------------------------
// Sheep
// -------------------------

// listSheepHandler godoc
// @Summary Listar ovejas
// @Description Refresca el listado desde el backend y lo devuelve filtrado y ordenado (ascendente). Requiere `sheep:read`.
// @Tags sheep
// @Produce json
// @Param q query string false "Busca en id, raza u origen"
// @Param sort query string false "id | price | weight | age (default id)"
// @Success 200 {array} Sheep
// @Failure 400 {object} errorResponse "sort inválido"
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Failure 502 {object} errorResponse "backend no disponible"
// @Router /sheep [get]
func listSheepHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.FetchSheep(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		items = FilterSheep(items, r.URL.Query().Get("q"))
		sorted, err := SortSheep(items, SortKey(r.URL.Query().Get("sort")))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sorted)
	}
}

func getSheepHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := store.GetSheepByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// createSheepHandler godoc
// @Summary Crear oveja
// @Description Valida (precio, peso y edad no negativos), crea en el backend y refresca el listado. Requiere `sheep:write`.
// @Tags sheep
// @Accept json
// @Produce json
// @Param payload body Sheep true "Datos de la oveja; health default good"
// @Success 201 {object} Sheep
// @Failure 400 {object} errorResponse "invalid json / validación"
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Router /sheep [post]
func createSheepHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Sheep
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		req.ID = ""

		s, err := store.AddSheep(r.Context(), req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, s)
	}
}

func updateSheepHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Sheep
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		s, err := store.UpdateSheep(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

func deleteSheepHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteSheep(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// -------------------------
// Centers
// -------------------------

func listCentersHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.FetchCenters(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func getCenterHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.GetCenterByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func createCenterHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Center
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		req.ID = ""

		c, err := store.AddCenter(r.Context(), req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func updateCenterHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Center
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := store.UpdateCenter(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func deleteCenterHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteCenter(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// -------------------------
// Appointments
// -------------------------

func listAppointmentsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.FetchAppointments(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func getAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.GetAppointmentByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// createAppointmentHandler godoc
// @Summary Crear cita (RDV)
// @Description userId, pointDeVenteId y date son obligatorios; status default pending. Requiere `appointments:write`.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body Appointment true "Cita"
// @Success 201 {object} Appointment
// @Failure 400 {object} errorResponse "invalid json / validación"
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Router /appointments [post]
func createAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Appointment
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		req.ID = ""

		a, err := store.AddAppointment(r.Context(), req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

func updateAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Appointment
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := store.UpdateAppointment(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func deleteAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteAppointment(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// -------------------------
// Users (admin)
// -------------------------

// listUsersHandler godoc
// @Summary Listar usuarios
// @Description Requiere `users:manage`.
// @Tags admin
// @Produce json
// @Param q query string false "Busca en nombre completo o email"
// @Param role query string false "user | admin | all"
// @Success 200 {array} User
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Router /admin/users [get]
func listUsersHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.FetchUsers(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		q := r.URL.Query()
		writeJSON(w, http.StatusOK, FilterUsers(items, q.Get("q"), q.Get("role")))
	}
}

func getUserHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := store.GetUserByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func updateUserHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req User
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := store.UpdateUser(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func deleteUserHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// dashboardHandler godoc
// @Summary Resumen del dashboard de admin
// @Description Refresca las cuatro colecciones y devuelve los conteos. Requiere `admin:dashboard`.
// @Tags admin
// @Produce json
// @Success 200 {object} Summary
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Failure 502 {object} errorResponse "backend no disponible"
// @Router /admin/dashboard [get]
func dashboardHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if _, err := store.FetchSheep(ctx); err != nil {
			writeDomainError(w, err)
			return
		}
		if _, err := store.FetchAppointments(ctx); err != nil {
			writeDomainError(w, err)
			return
		}
		if _, err := store.FetchUsers(ctx); err != nil {
			writeDomainError(w, err)
			return
		}
		if _, err := store.FetchCenters(ctx); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, store.Summary())
	}
}

// -------------------------
// Helpers
// -------------------------

type errorResponse struct {
	Error string `json:"error"`
}

func writeDomainError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
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
