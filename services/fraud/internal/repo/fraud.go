package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/musicclouds/platform/services/fraud/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) SaveCheck(ctx context.Context, check *models.FraudCheckHistory) error {
	return r.DB.WithContext(ctx).Create(check).Error
}

func (r *GormRepo) ChecksForUser(ctx context.Context, userID uint) ([]models.FraudCheckHistory, error) {
	var checks []models.FraudCheckHistory
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}
