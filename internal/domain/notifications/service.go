package notifications

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sheep-dashboard/internal/domain/catalog"
	"sheep-dashboard/internal/platform/logger"
)

const DefaultRejectReason = "Buy request rejected by admin"

// AppointmentScheduler crea la cita del paso 1 del approve
// (catalog.Store: llama al backend y recarga la lista).
type AppointmentScheduler interface {
	AddAppointment(ctx context.Context, a catalog.Appointment) (catalog.Appointment, error)
}

// TransitionObserver recibe cada operación del workflow (metrics).
type TransitionObserver interface {
	ObserveTransition(action string, err error)
}

type Options struct {
	Log     logger.Logger
	Metrics TransitionObserver
}

type Service struct {
	repo  Repository
	appts AppointmentScheduler
	log   logger.Logger
	obs   TransitionObserver

	now   func() time.Time
	newID func() string
	locks *keyedMutex
}

func NewService(repo Repository, appts AppointmentScheduler, opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		appts: appts,
		log:   log.With(map[string]any{"component": "notifications"}),
		obs:   opts.Metrics,
		now:   time.Now,
		newID: newTimeBasedID,
		locks: newKeyedMutex(),
	}
}

// ids ordenables por tiempo
func newTimeBasedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *Service) observe(action string, err error) {
	if s.obs != nil {
		s.obs.ObserveTransition(action, err)
	}
}

type BuyRequestInput struct {
	UserID      string
	UserName    string
	UserEmail   string
	SheepID     string
	Sheep       SheepInfo
	RequestedAt *time.Time
}

func (s *Service) CreateBuyRequest(ctx context.Context, in BuyRequestInput) (Notification, error) {
	userID := strings.TrimSpace(in.UserID)
	sheepID := strings.TrimSpace(in.SheepID)
	if userID == "" || sheepID == "" {
		return Notification{}, ErrInvalidInput
	}
	userName := strings.TrimSpace(in.UserName)

	now := s.now().UTC()
	n := Notification{
		ID:          s.newID(),
		Type:        TypeBuyRequest,
		UserID:      userID,
		UserName:    userName,
		UserEmail:   strings.TrimSpace(in.UserEmail),
		SheepID:     sheepID,
		SheepInfo:   in.Sheep,
		Message:     fmt.Sprintf("%s wants to buy Sheep #%s", userName, sheepID),
		Status:      StatusPending,
		CreatedAt:   now,
		RequestedAt: in.RequestedAt,
		Version:     1,
	}

	err := s.repo.Create(ctx, n)
	s.observe("create", err)
	if err != nil {
		return Notification{}, err
	}
	s.log.Info("buy request created", map[string]any{"notification_id": n.ID, "user_id": userID, "sheep_id": sheepID})
	return n, nil
}

type ApproveInput struct {
	Date          string // ISO o datetime-local ("2006-01-02T15:04")
	PointOfSaleID string
	Notes         string
}

// Approve: (1) crea la cita confirmada, (2) marca approved.
// Si (1) falla la notificación queda pending. Si (2) falla tras (1)
// se devuelve *OrphanedAppointmentError con el id de la cita.
func (s *Service) Approve(ctx context.Context, id string, in ApproveInput) (Notification, catalog.Appointment, error) {
	n, appt, err := s.approve(ctx, id, in)
	s.observe("approve", err)
	return n, appt, err
}

func (s *Service) approve(ctx context.Context, id string, in ApproveInput) (Notification, catalog.Appointment, error) {
	id = strings.TrimSpace(id)
	pos := strings.TrimSpace(in.PointOfSaleID)
	if id == "" || pos == "" {
		return Notification{}, catalog.Appointment{}, ErrInvalidInput
	}
	when, err := parseDate(in.Date)
	if err != nil {
		return Notification{}, catalog.Appointment{}, ErrInvalidInput
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Notification{}, catalog.Appointment{}, err
	}
	if n.Status != StatusPending {
		return Notification{}, catalog.Appointment{}, ErrBadState
	}

	// Paso 1
	appt, err := s.appts.AddAppointment(ctx, catalog.Appointment{
		UserID:         n.UserID,
		PointDeVenteID: pos,
		Date:           isoDate(when),
		Status:         catalog.AppointmentConfirmed,
		Notes:          strings.TrimSpace(in.Notes),
	})
	if err != nil {
		return Notification{}, catalog.Appointment{}, fmt.Errorf("create appointment: %w", err)
	}

	// Paso 2
	expected := n.Version
	now := s.now().UTC()
	n.Status = StatusApproved
	n.AdminResponse = "Appointment scheduled for " + displayDate(when)
	n.UpdatedAt = &now
	n.Version = expected + 1

	if err := s.repo.Update(ctx, n, expected); err != nil {
		s.log.Error("appointment created but notification not approved", map[string]any{
			"notification_id": id,
			"appointment_id":  appt.ID,
			"err":             err,
		})
		return Notification{}, appt, &OrphanedAppointmentError{NotificationID: id, AppointmentID: appt.ID, Cause: err}
	}

	s.log.Info("buy request approved", map[string]any{"notification_id": id, "appointment_id": appt.ID})
	return n, appt, nil
}

func (s *Service) Reject(ctx context.Context, id, reason string) (Notification, error) {
	n, err := s.reject(ctx, id, reason)
	s.observe("reject", err)
	return n, err
}

func (s *Service) reject(ctx context.Context, id, reason string) (Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Notification{}, ErrInvalidInput
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectReason
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Notification{}, err
	}
	if n.Status != StatusPending {
		return Notification{}, ErrBadState
	}

	expected := n.Version
	now := s.now().UTC()
	n.Status = StatusRejected
	n.AdminResponse = reason
	n.UpdatedAt = &now
	n.Version = expected + 1

	if err := s.repo.Update(ctx, n, expected); err != nil {
		return Notification{}, err
	}
	s.log.Info("buy request rejected", map[string]any{"notification_id": id})
	return n, nil
}

// Delete borra en cualquier estado; no toca citas.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	err := s.repo.Delete(ctx, id)
	s.observe("delete", err)
	return err
}

func (s *Service) Get(ctx context.Context, id string) (Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Notification{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// List ordena por createdAt desc (empate: id desc, los v7 crecen con el tiempo).
func (s *Service) List(ctx context.Context) ([]Notification, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	var st Stats
	for _, n := range items {
		switch n.Status {
		case StatusPending:
			st.Pending++
		case StatusApproved:
			st.Approved++
		case StatusRejected:
			st.Rejected++
		}
	}
	st.Total = len(items)
	return st, nil
}
