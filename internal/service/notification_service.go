package service

import (
	"context"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/repository"
)

type NotificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, filter repository.NotificationFilter) ([]domain.Notification, error) {
	return s.notifications.List(ctx, filter)
}

func (s *NotificationService) Get(ctx context.Context, id int64) (*domain.Notification, error) {
	return s.notifications.GetByID(ctx, id)
}

// UpdateStatus moves a notification through its lifecycle
// (pending, approved, rejected, read).
func (s *NotificationService) UpdateStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case domain.NotificationStatusPending,
		domain.NotificationStatusApproved,
		domain.NotificationStatusRejected,
		domain.NotificationStatusRead:
	default:
		return domain.ErrInvalidAction
	}

	return s.notifications.UpdateStatus(ctx, id, status)
}
