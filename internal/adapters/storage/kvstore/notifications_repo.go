package kvstore

import (
	"context"
	"errors"
	"strings"
	"sync"

	"sheep-dashboard/internal/domain/notifications"
	"sheep-dashboard/internal/platform/kv"
)

// KeyNotifications guarda el store completo como un array JSON.
const KeyNotifications = "admin_notifications"

// NotificationsRepo lee y reescribe el array entero en cada operación.
// El mutex cubre el read-modify-write dentro del proceso; entre procesos
// la versión no protege (usar notifications.store=postgres).
type NotificationsRepo struct {
	mu sync.Mutex
	kv kv.Store
}

var _ notifications.Repository = (*NotificationsRepo)(nil)

func NewNotificationsRepo(store kv.Store) *NotificationsRepo {
	return &NotificationsRepo{kv: store}
}

func (r *NotificationsRepo) load(ctx context.Context) ([]notifications.Notification, error) {
	var items []notifications.Notification
	if _, err := kv.GetJSON(ctx, r.kv, KeyNotifications, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []notifications.Notification{}
	}
	return items, nil
}

func (r *NotificationsRepo) save(ctx context.Context, items []notifications.Notification) error {
	return kv.SetJSON(ctx, r.kv, KeyNotifications, items)
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("notification id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == n.ID {
			return errors.New("notification already exists")
		}
	}
	return r.save(ctx, append(items, n))
}

func (r *NotificationsRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return notifications.Notification{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return notifications.Notification{}, notifications.ErrNotFound
}

func (r *NotificationsRepo) Update(ctx context.Context, n notifications.Notification, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID != n.ID {
			continue
		}
		if items[i].Version != expectedVersion {
			return notifications.ErrConflict
		}
		items[i] = n
		return r.save(ctx, items)
	}
	return notifications.ErrNotFound
}

func (r *NotificationsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return err
	}
	out := items[:0]
	found := false
	for _, it := range items {
		if it.ID == id {
			found = true
			continue
		}
		out = append(out, it)
	}
	if !found {
		return notifications.ErrNotFound
	}
	return r.save(ctx, out)
}

func (r *NotificationsRepo) List(ctx context.Context) ([]notifications.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}
