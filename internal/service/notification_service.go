package service

import (
	"context"
	"errors"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/repository"

	"github.com/google/uuid"
)

// RecentNotificationLimit caps the notification listing
const RecentNotificationLimit = 20

var (
	ErrEmptyMessage = errors.New("message is required")
)

// NotificationService defines the interface for notification business logic
type NotificationService interface {
	List(ctx context.Context) ([]*domain.Notification, error)
	Create(ctx context.Context, message, createdBy string) (*domain.Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

// List returns the 20 most recent notifications, newest first
func (s *notificationService) List(ctx context.Context) ([]*domain.Notification, error) {
	return s.notificationRepo.ListRecent(ctx, RecentNotificationLimit)
}

// Create stores a new notification; an empty message is rejected
func (s *notificationService) Create(ctx context.Context, message, createdBy string) (*domain.Notification, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	notification := &domain.Notification{
		ID:        uuid.New(),
		Message:   message,
		CreatedAt: time.Now().UTC(),
		CreatedBy: createdBy,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// Delete removes a notification; deleting a missing id succeeds
func (s *notificationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.notificationRepo.Delete(ctx, id)
}
