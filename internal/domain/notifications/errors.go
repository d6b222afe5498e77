package notifications

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("notification not found")
	ErrBadState            = errors.New("invalid state")
	ErrConflict            = errors.New("notification was modified concurrently")
	ErrOrphanedAppointment = errors.New("appointment created but notification not approved")
)

// OrphanedAppointmentError: el paso 1 del approve creó la cita y el paso 2 falló.
type OrphanedAppointmentError struct {
	NotificationID string
	AppointmentID  string
	Cause          error
}

func (e *OrphanedAppointmentError) Error() string {
	return fmt.Sprintf("%s (appointment %s, notification %s): %v",
		ErrOrphanedAppointment.Error(), e.AppointmentID, e.NotificationID, e.Cause)
}

func (e *OrphanedAppointmentError) Unwrap() error { return e.Cause }

func (e *OrphanedAppointmentError) Is(target error) bool { return target == ErrOrphanedAppointment }
