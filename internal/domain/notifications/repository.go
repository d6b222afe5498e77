package notifications

import "context"

// Repository: los adapters devuelven ErrNotFound / ErrConflict de este paquete.
type Repository interface {
	Create(ctx context.Context, n Notification) error
	GetByID(ctx context.Context, id string) (Notification, error)
	// Update persiste n solo si la versión guardada es expectedVersion.
	Update(ctx context.Context, n Notification, expectedVersion int) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Notification, error)
}
