package services

import (
	"context"
	"errors"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"
	"lexcase/internal/adapters/realtime"
	"lexcase/internal/core/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier is the outbound notification surface the domain services
// depend on. NotificationService implements it.
type Notifier interface {
	NotifyUser(ctx context.Context, userID uint, title, message string)
	NotifyAdmins(ctx context.Context, title, message string)
}

// NotificationService persists notifications and pushes live events.
// The stored row is the durable record, the websocket push is best
// effort and never rolls the record back.
type NotificationService struct {
	notificationRepo repositories.NotificationStore
	hub              *realtime.Hub
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repositories.NotificationStore, hub *realtime.Hub) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
	}
}

// NotifyUser stores a notification for one user and pushes it live
func (s *NotificationService) NotifyUser(ctx context.Context, userID uint, title, message string) {
	item := &models.NotificationItem{
		Title:     title,
		Message:   message,
		ForUserID: &userID,
	}
	if err := s.notificationRepo.Create(ctx, item); err != nil {
		zap.S().Errorw("failed to store notification", "user_id", userID, "title", title, "error", err)
		return
	}
	s.hub.PushToUser(userID, realtime.Event{
		Type:    "notification",
		Title:   title,
		Message: message,
	})
}

// NotifyAdmins stores an admin broadcast and pushes it to every
// connected admin
func (s *NotificationService) NotifyAdmins(ctx context.Context, title, message string) {
	item := &models.NotificationItem{
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Create(ctx, item); err != nil {
		zap.S().Errorw("failed to store admin notification", "title", title, "error", err)
		return
	}
	s.hub.PushToAdmins(realtime.Event{
		Type:    "notification",
		Title:   title,
		Message: message,
	})
}

// List returns a user's notifications, newest first. Admins also see
// broadcast rows.
func (s *NotificationService) List(ctx context.Context, userID uint, role string, limit int) ([]*models.NotificationItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.notificationRepo.ListForUser(ctx, userID, role == models.RoleAdmin, limit)
}

// UnreadCount returns a user's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint, role string) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID, role == models.RoleAdmin)
}

// MarkRead marks a single notification as read. Personal rows belong
// to their recipient, broadcast rows belong to admins.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID, userID uint, role string) error {
	item, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if item.ForUserID == nil {
		if role != models.RoleAdmin {
			return domain.ErrAccessDenied
		}
	} else if *item.ForUserID != userID {
		return domain.ErrAccessDenied
	}
	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkAllRead marks every notification of a user as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint, role string) error {
	return s.notificationRepo.MarkAllRead(ctx, userID, role == models.RoleAdmin)
}
