package repository

import (
	"context"
	"time"

	"scheduling/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) GetByUserID(ctx context.Context, userID int64) (*domain.EmailVerificationCode, error) {
	var row domain.EmailVerificationCode
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Replace stores a fresh code for the user, resetting attempts.
func (r *VerificationRepository) Replace(ctx context.Context, userID int64, codeHash string, sentAt, expiresAt time.Time) error {
	row := domain.EmailVerificationCode{
		UserID:     userID,
		CodeHash:   codeHash,
		LastSentAt: sentAt,
		ExpiresAt:  expiresAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"code_hash":    codeHash,
			"attempts":     0,
			"last_sent_at": sentAt,
			"expires_at":   expiresAt,
			"used_at":      nil,
			"updated_at":   sentAt,
		}),
	}).Create(&row).Error
}

func (r *VerificationRepository) IncrementAttempts(ctx context.Context, userID int64) (int, error) {
	err := r.db.WithContext(ctx).
		Model(&domain.EmailVerificationCode{}).
		Where("user_id = ?", userID).
		Update("attempts", gorm.Expr("attempts + 1")).Error
	if err != nil {
		return 0, err
	}
	row, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return row.Attempts, nil
}

func (r *VerificationRepository) MarkUsed(ctx context.Context, userID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.EmailVerificationCode{}).
		Where("user_id = ?", userID).
		Update("used_at", at).Error
}

// DeleteStale removes codes that expired before now or were already used.
func (r *VerificationRepository) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ? OR used_at IS NOT NULL", now.UTC()).
		Delete(&domain.EmailVerificationCode{})
	return tx.RowsAffected, tx.Error
}
