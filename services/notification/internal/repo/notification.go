package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/musicclouds/platform/services/notification/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) SaveNotification(ctx context.Context, n *models.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *GormRepo) NotificationsForUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var out []models.Notification
	if err := r.DB.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Order("sent_at").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
