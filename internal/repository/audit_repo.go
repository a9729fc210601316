package repository

import (
	"context"

	"hospital-management-api/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(ctx context.Context, hospitalID *uint, actor, action, details string) error {
	entry := &models.AuditLog{
		HospitalID: hospitalID,
		Actor:      actor,
		Action:     action,
		Details:    details,
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
