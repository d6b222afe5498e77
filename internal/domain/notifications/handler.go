package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"sheep-dashboard/internal/domain/catalog"
	"sheep-dashboard/internal/middleware"
	"sheep-dashboard/internal/platform/httpclient"
	"sheep-dashboard/internal/ports/capabilities"
)

// SheepLookup: normalmente *catalog.Store.
type SheepLookup interface {
	GetSheepByID(ctx context.Context, id string) (catalog.Sheep, error)
}

// CurrentUser: normalmente *session.Store.
type CurrentUser interface {
	CurrentUser() (catalog.User, bool)
}

func RegisterRoutes(r chi.Router, svc *Service, sheep SheepLookup, users CurrentUser, resolver capabilities.Resolver) {
	// Usuario: pedir compra de una oveja
	r.Route("/sheep/{sheepID}/buy", func(br chi.Router) {
		br.Use(middleware.Require(resolver, capabilities.SheepBuy))
		br.Post("/", buyRequestHandler(svc, sheep, users))
	})

	// Admin: bandeja de solicitudes
	r.Route("/admin/notifications", func(nr chi.Router) {
		nr.Use(middleware.Require(resolver, capabilities.NotificationsManage))
		nr.Get("/", listNotificationsHandler(svc))
		nr.Get("/stats", statsHandler(svc))
		nr.Get("/{id}", getNotificationHandler(svc))
		nr.Post("/{id}/approve", approveHandler(svc))
		nr.Post("/{id}/reject", rejectHandler(svc))
		nr.Delete("/{id}", deleteNotificationHandler(svc))
	})
}

type buyRequest struct {
	RequestedAt *time.Time `json:"requestedAt"` // opcional
}

type approveRequest struct {
	Date          string `json:"date"` // ISO o "2006-01-02T15:04"
	PointOfSaleID string `json:"pointOfSaleId"`
	Notes         string `json:"notes"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type approveResponse struct {
	Notification Notification        `json:"notification"`
	Appointment  catalog.Appointment `json:"appointment"`
}

type errorResponse struct {
	Error         string `json:"error"`
	AppointmentID string `json:"appointment_id,omitempty"`
}

// buyRequestHandler godoc
// @Summary Solicitar compra de una oveja
// @Description Crea una notificación pending con la foto actual de la oveja (raza, peso, edad, precio, origen). Requiere `sheep:buy`.
// @Tags notifications
// @Accept json
// @Produce json
// @Param sheepID path string true "ID de la oveja"
// @Param payload body buyRequest false "requestedAt opcional"
// @Success 201 {object} Notification
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Failure 404 {object} errorResponse "sheep not found"
// @Router /sheep/{sheepID}/buy [post]
func buyRequestHandler(svc *Service, sheep SheepLookup, users CurrentUser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req buyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		sheepID := chi.URLParam(r, "sheepID")
		s, err := sheep.GetSheepByID(r.Context(), sheepID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		// payload sin _id/id: vale el de la ruta
		if strings.TrimSpace(s.ID) != "" {
			sheepID = s.ID
		}

		in := BuyRequestInput{
			UserID:    claims.UserID,
			UserEmail: claims.Email,
			SheepID:   sheepID,
			Sheep: SheepInfo{
				Race:   s.Race,
				Weight: s.Weight,
				Age:    s.Age,
				Price:  s.Price,
				Origin: s.Origin,
			},
			RequestedAt: req.RequestedAt,
		}
		if u, ok := users.CurrentUser(); ok && u.ID == claims.UserID {
			in.UserName = u.FullName()
			in.UserEmail = u.Email
		}
		if in.UserName == "" {
			in.UserName = claims.Email
		}

		n, err := svc.CreateBuyRequest(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, n)
	}
}

// listNotificationsHandler godoc
// @Summary Listar solicitudes de compra
// @Description Más recientes primero. Requiere `notifications:manage`.
// @Tags notifications
// @Produce json
// @Success 200 {array} Notification
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "forbidden"
// @Router /admin/notifications [get]
func listNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if items == nil {
			items = []Notification{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func getNotificationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, n)
	}
}

// approveHandler godoc
// @Summary Aprobar solicitud
// @Description Crea una cita confirmada para el usuario y marca la solicitud approved. Solo desde pending (409 si no). Si la cita se creó pero la solicitud no pudo marcarse, 500 con appointment_id.
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path string true "ID de la notificación"
// @Param payload body approveRequest true "Fecha y punto de venta"
// @Success 200 {object} approveResponse
// @Failure 400 {object} errorResponse "invalid json / date o pointOfSaleId inválidos"
// @Failure 404 {object} errorResponse "not found"
// @Failure 409 {object} errorResponse "estado inválido o modificación concurrente"
// @Failure 500 {object} errorResponse "cita huérfana"
// @Router /admin/notifications/{id}/approve [post]
func approveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req approveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		n, appt, err := svc.Approve(r.Context(), chi.URLParam(r, "id"), ApproveInput{
			Date:          req.Date,
			PointOfSaleID: req.PointOfSaleID,
			Notes:         req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, approveResponse{Notification: n, Appointment: appt})
	}
}

// rejectHandler godoc
// @Summary Rechazar solicitud
// @Description Solo desde pending. Sin reason usa el mensaje por defecto.
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path string true "ID de la notificación"
// @Param payload body rejectRequest false "Motivo opcional"
// @Success 200 {object} Notification
// @Failure 404 {object} errorResponse "not found"
// @Failure 409 {object} errorResponse "estado inválido"
// @Router /admin/notifications/{id}/reject [post]
func rejectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rejectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		n, err := svc.Reject(r.Context(), chi.URLParam(r, "id"), req.Reason)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, n)
	}
}

func deleteNotificationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// -------------------------
// Helpers
// -------------------------

func writeDomainError(w http.ResponseWriter, err error) {
	var orphan *OrphanedAppointmentError
	var ve *catalog.ValidationError
	switch {
	case errors.As(err, &orphan):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:         ErrOrphanedAppointment.Error(),
			AppointmentID: orphan.AppointmentID,
		})
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, catalog.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, ErrBadState), errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
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
