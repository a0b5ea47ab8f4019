package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/musicclouds/platform/services/user/internal/models"
)

// Token ledger. Validation paths only read; only issuance flips flags.

func (r *GormRepo) RecordToken(ctx context.Context, userID uint, token string) error {
	rec := models.Token{
		Token:     token,
		TokenType: models.TokenTypeBearer,
		UserID:    userID,
	}
	return r.DB.WithContext(ctx).Create(&rec).Error
}

func (r *GormRepo) FindToken(ctx context.Context, token string) (*models.Token, error) {
	var rec models.Token
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// TokenUsable reports whether a ledger record exists for the exact token
// string and carries neither flag. A missing record is not an error.
func (r *GormRepo) TokenUsable(ctx context.Context, token string) (bool, error) {
	var rec models.Token
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return !rec.Expired && !rec.Revoked, nil
}

func (r *GormRepo) ValidTokensFor(ctx context.Context, userID uint) ([]models.Token, error) {
	var recs []models.Token
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND expired = ? AND revoked = ?", userID, false, false).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *GormRepo) revokeAllTokens(db *gorm.DB, userID uint) error {
	return db.Model(&models.Token{}).
		Where("user_id = ? AND expired = ? AND revoked = ?", userID, false, false).
		Updates(map[string]any{"expired": true, "revoked": true}).Error
}

func (r *GormRepo) RevokeAllTokens(ctx context.Context, userID uint) error {
	return r.revokeAllTokens(r.DB.WithContext(ctx), userID)
}

// IssueExclusive revokes every live token the user owns and records the new
// one inside a single transaction. A concurrent login or refresh can never
// observe two usable tokens for the same user.
func (r *GormRepo) IssueExclusive(ctx context.Context, userID uint, token string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.revokeAllTokens(tx, userID); err != nil {
			return err
		}
		rec := models.Token{
			Token:     token,
			TokenType: models.TokenTypeBearer,
			UserID:    userID,
		}
		return tx.Create(&rec).Error
	})
}
