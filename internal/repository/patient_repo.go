package repository

import (
	"context"

	"hospital-management-api/internal/models"

	"gorm.io/gorm"
)

var (
	PatientSortColumns   = []string{"patient_name", "patient_dob", "patient_gender", "patient_blood_type"}
	PatientSearchColumns = []string{"patient_name", "patient_email", "patient_phone", "patient_id_number", "patient_gender", "patient_blood_type"}
)

type PatientRepository struct {
	TenantStore[models.Patient, *models.Patient]
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{TenantStore: newTenantStore[models.Patient](db, ErrPatientNotFound)}
}

// SearchBy matches a case-insensitive substring in one whitelisted column
func (r *PatientRepository) SearchBy(ctx context.Context, hospitalID uint, column, term string) ([]models.Patient, error) {
	column, err := SearchColumn(column, PatientSearchColumns)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, hospitalID, Sort{Desc: true}, columnLike(column, term))
}
