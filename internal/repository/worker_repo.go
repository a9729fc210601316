package repository

import (
	"context"
	"errors"

	"hospital-management-api/internal/database"
	"hospital-management-api/internal/models"

	"gorm.io/gorm"
)

var (
	WorkerSortColumns   = []string{"worker_name", "worker_role", "worker_email"}
	WorkerSearchColumns = []string{"worker_name", "worker_email", "worker_phone", "worker_role"}
)

type WorkerRepository struct {
	TenantStore[models.Worker, *models.Worker]
}

func NewWorkerRepo(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{TenantStore: newTenantStore[models.Worker](db, ErrWorkerNotFound)}
}

func (r *WorkerRepository) SearchBy(ctx context.Context, hospitalID uint, column, term string) ([]models.Worker, error) {
	column, err := SearchColumn(column, WorkerSearchColumns)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, hospitalID, Sort{Desc: true}, columnLike(column, term))
}

// FindByEmail finds a worker of the hospital by login email
func (r *WorkerRepository) FindByEmail(ctx context.Context, hospitalID uint, email string) (*models.Worker, error) {
	var worker models.Worker
	err := r.scoped(ctx, hospitalID).Where("worker_email = ?", email).First(&worker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	return &worker, nil
}

// UpdatePassword replaces the stored password hash
func (r *WorkerRepository) UpdatePassword(ctx context.Context, hospitalID, workerID uint, hash string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Worker{}).
		Scopes(database.ForHospital(hospitalID)).
		Where("id = ?", workerID).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkerNotFound
	}
	return nil
}
