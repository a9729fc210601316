package repository

import (
	"context"

	"hospital-management-api/internal/database"
	"hospital-management-api/internal/models"

	"gorm.io/gorm"
)

var PrescriptionSortColumns = []string{"patient_id"}

type PrescriptionRepository struct {
	TenantStore[models.Prescription, *models.Prescription]
}

func NewPrescriptionRepo(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{
		TenantStore: newTenantStore[models.Prescription](db, ErrPrescriptionNotFound, "Patient", "Items", "Items.Drug"),
	}
}

func (r *PrescriptionRepository) Search(ctx context.Context, hospitalID uint, term string) ([]models.Prescription, error) {
	return r.find(ctx, hospitalID, Sort{Desc: true}, patientNameLike(r.db, hospitalID, term))
}

// Delete removes a prescription together with its items
func (r *PrescriptionRepository) Delete(ctx context.Context, hospitalID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Prescription{}).
			Select("id").
			Where("id = ? AND hospital_id = ?", id, hospitalID)
		if err := tx.Where("prescription_id IN (?)", owned).Delete(&models.PrescriptionItem{}).Error; err != nil {
			return err
		}

		result := tx.Scopes(database.ForHospital(hospitalID)).Where("id = ?", id).Delete(&models.Prescription{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPrescriptionNotFound
		}
		return nil
	})
}
