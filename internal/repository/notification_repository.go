// internal/repository/notification_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/jmoiron/sqlx"
)

// NotificationFilter narrows List results; zero values mean no filter.
type NotificationFilter struct {
	Status string
	Type   domain.NotificationType
	SKU    string
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, filter NotificationFilter) ([]domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	ExistsPending(ctx context.Context, sku string, t domain.NotificationType) (bool, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (type, title, message, sku, status, action_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	if n.Status == "" {
		n.Status = domain.NotificationStatusPending
	}

	err := r.db.QueryRowxContext(ctx, query,
		n.Type, n.Title, n.Message, n.SKU, n.Status, n.RawAction,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating %s notification for %s: %w", n.Type, n.SKU, err)
	}

	return nil
}

func (r *notificationRepository) List(ctx context.Context, filter NotificationFilter) ([]domain.Notification, error) {
	query := `
		SELECT id, type, title, message, sku, status, action_data, created_at, updated_at
		FROM notifications
		WHERE 1=1
	`
	args := []interface{}{}
	argCounter := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCounter)
		args = append(args, filter.Status)
		argCounter++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argCounter)
		args = append(args, filter.Type)
		argCounter++
	}
	if filter.SKU != "" {
		query += fmt.Sprintf(" AND sku = $%d", argCounter)
		args = append(args, filter.SKU)
		argCounter++
	}

	query += " ORDER BY created_at DESC"

	var notifications []domain.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	query := `
		SELECT id, type, title, message, sku, status, action_data, created_at, updated_at
		FROM notifications
		WHERE id = $1
	`

	var n domain.Notification
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error getting notification %d: %w", id, err)
	}

	return &n, nil
}

func (r *notificationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `
		UPDATE notifications
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("error updating notification %d: %w", id, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ExistsPending reports whether a pending notification of the given
// type already exists for the SKU. Used to keep alerts idempotent
// across repeated stock checks.
func (r *notificationRepository) ExistsPending(ctx context.Context, sku string, t domain.NotificationType) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE sku = $1 AND type = $2 AND status = $3
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, sku, t, domain.NotificationStatusPending); err != nil {
		return false, fmt.Errorf("error checking pending %s notification for %s: %w", t, sku, err)
	}

	return exists, nil
}
