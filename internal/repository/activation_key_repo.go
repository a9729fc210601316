package repository

import (
	"context"
	"errors"
	"time"

	"hospital-management-api/internal/models"

	"gorm.io/gorm"
)

type ActivationKeyRepository struct {
	db *gorm.DB
}

func NewActivationKeyRepo(db *gorm.DB) *ActivationKeyRepository {
	return &ActivationKeyRepository{db: db}
}

// CreateKey stores a newly issued key
func (r *ActivationKeyRepository) CreateKey(ctx context.Context, key *models.ActivationKey) error {
	return r.db.WithContext(ctx).Create(key).Error
}

// GetUnusedKeyByHash retrieves a key that has not been redeemed or expired
func (r *ActivationKeyRepository) GetUnusedKeyByHash(ctx context.Context, keyHash string, now time.Time) (*models.ActivationKey, error) {
	var key models.ActivationKey
	err := r.db.WithContext(ctx).
		Where("key_hash = ? AND redeemed_by IS NULL", keyHash).
		First(&key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivationKeyNotFound
		}
		return nil, err
	}

	if key.ExpiresAt != nil && key.ExpiresAt.Before(now) {
		return nil, ErrActivationKeyNotFound
	}
	return &key, nil
}
