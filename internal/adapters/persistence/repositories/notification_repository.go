package repositories

import (
	"context"

	"lexcase/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository handles notification persistence
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.NotificationItem) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// GetByID gets a notification by id
func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.NotificationItem, error) {
	var item models.NotificationItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListForUser lists a user's notifications, newest first. Admin
// broadcast rows have a nil for_user_id and are included when
// includeBroadcast is set.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID uint, includeBroadcast bool, limit int) ([]*models.NotificationItem, error) {
	var items []*models.NotificationItem
	query := r.db.WithContext(ctx)
	if includeBroadcast {
		query = query.Where("for_user_id = ? OR for_user_id IS NULL", userID)
	} else {
		query = query.Where("for_user_id = ?", userID)
	}
	err := query.Order("created_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

// CountUnread counts a user's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint, includeBroadcast bool) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.NotificationItem{}).Where("is_read = ?", false)
	if includeBroadcast {
		query = query.Where("for_user_id = ? OR for_user_id IS NULL", userID)
	} else {
		query = query.Where("for_user_id = ?", userID)
	}
	err := query.Count(&count).Error
	return count, err
}

// MarkRead marks a notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.NotificationItem{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// MarkAllRead marks all of a user's notifications as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint, includeBroadcast bool) error {
	query := r.db.WithContext(ctx).Model(&models.NotificationItem{}).Where("is_read = ?", false)
	if includeBroadcast {
		query = query.Where("for_user_id = ? OR for_user_id IS NULL", userID)
	} else {
		query = query.Where("for_user_id = ?", userID)
	}
	return query.Update("is_read", true).Error
}
