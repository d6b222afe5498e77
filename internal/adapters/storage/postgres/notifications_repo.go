package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"sheep-dashboard/internal/domain/notifications"
)

type NotificationsRepo struct {
	db *sql.DB
}

var _ notifications.Repository = (*NotificationsRepo)(nil)

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

const notificationColumns = `
	id, type, user_id, user_name, user_email,
	sheep_id, sheep_info, message, status,
	created_at, requested_at, admin_response, updated_at, version`

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	info, err := json.Marshal(n.SheepInfo)
	if err != nil {
		return fmt.Errorf("encode sheep_info: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7::jsonb,$8,$9,$10,$11,$12,$13,$14)
	`,
		n.ID,
		n.Type,
		n.UserID,
		n.UserName,
		n.UserEmail,
		n.SheepID,
		string(info),
		n.Message,
		string(n.Status),
		n.CreatedAt,
		toNullTime(n.RequestedAt),
		n.AdminResponse,
		toNullTime(n.UpdatedAt),
		n.Version,
	)
	return err
}

// Update es compare-and-set sobre version.
// 0 filas => ErrNotFound si el id no existe, ErrConflict si cambió la versión.
func (r *NotificationsRepo) Update(ctx context.Context, n notifications.Notification, expectedVersion int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET
			status = $2,
			admin_response = $3,
			updated_at = $4,
			version = $5
		WHERE id = $1 AND version = $6
	`,
		n.ID,
		string(n.Status),
		n.AdminResponse,
		toNullTime(n.UpdatedAt),
		n.Version,
		expectedVersion,
	)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows > 0 {
		return nil
	}

	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM notifications WHERE id = $1`, n.ID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return notifications.ErrNotFound
	}
	if err != nil {
		return err
	}
	return notifications.ErrConflict
}

func (r *NotificationsRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return notifications.Notification{}, notifications.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return notifications.Notification{}, notifications.ErrNotFound
	}
	return n, err
}

func (r *NotificationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return notifications.ErrNotFound
	}
	return nil
}

func (r *NotificationsRepo) List(ctx context.Context) ([]notifications.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notifications.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(s scanner) (notifications.Notification, error) {
	var (
		n           notifications.Notification
		status      string
		info        []byte
		requestedAt sql.NullTime
		updatedAt   sql.NullTime
	)
	if err := s.Scan(
		&n.ID,
		&n.Type,
		&n.UserID,
		&n.UserName,
		&n.UserEmail,
		&n.SheepID,
		&info,
		&n.Message,
		&status,
		&n.CreatedAt,
		&requestedAt,
		&n.AdminResponse,
		&updatedAt,
		&n.Version,
	); err != nil {
		return notifications.Notification{}, err
	}

	n.Status = notifications.Status(status)
	if len(info) > 0 {
		if err := json.Unmarshal(info, &n.SheepInfo); err != nil {
			return notifications.Notification{}, fmt.Errorf("decode sheep_info: %w", err)
		}
	}
	n.RequestedAt = fromNullTime(requestedAt)
	n.UpdatedAt = fromNullTime(updatedAt)
	return n, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
