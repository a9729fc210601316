package repository

import (
	"context"
	"errors"
	"time"

	"hospital-management-api/internal/models"

	"gorm.io/gorm"
)

var (
	HospitalSortColumns   = []string{"hospital_name", "hospital_email", "expiry_date"}
	HospitalSearchColumns = []string{"hospital_name", "hospital_email", "hospital_contact"}
)

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepo(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

// GetAllHospitals retrieves every registered hospital
func (r *HospitalRepository) GetAllHospitals(ctx context.Context, sort Sort) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.db.WithContext(ctx).Order(sort.clause()).Find(&hospitals).Error
	return hospitals, err
}

// SearchHospitals matches a case-insensitive substring in one whitelisted column
func (r *HospitalRepository) SearchHospitals(ctx context.Context, column, term string) ([]models.Hospital, error) {
	column, err := SearchColumn(column, HospitalSearchColumns)
	if err != nil {
		return nil, err
	}
	var hospitals []models.Hospital
	err = r.db.WithContext(ctx).
		Where(columnLike(column, term)).
		Order(Sort{Desc: true}.clause()).
		Find(&hospitals).Error
	return hospitals, err
}

// GetHospitalByID retrieves a hospital by ID
func (r *HospitalRepository) GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}
	return &hospital, nil
}

// GetHospitalByEmail retrieves a hospital by its login email
func (r *HospitalRepository) GetHospitalByEmail(ctx context.Context, email string) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.WithContext(ctx).Where("hospital_email = ?", email).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}
	return &hospital, nil
}

// CreateHospital creates a new hospital
func (r *HospitalRepository) CreateHospital(ctx context.Context, hospital *models.Hospital) error {
	return writeErr(r.db.WithContext(ctx).Create(hospital).Error)
}

// UpdateHospital updates the profile fields of an existing hospital
func (r *HospitalRepository) UpdateHospital(ctx context.Context, hospital *models.Hospital) error {
	err := r.db.WithContext(ctx).
		Model(hospital).
		Select("hospital_name", "hospital_email", "hospital_contact", "diagnosis_fee").
		Updates(hospital).Error
	return writeErr(err)
}

// UpdatePassword replaces the stored password hash
func (r *HospitalRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.Hospital{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

// RedeemActivationKey marks the key as used by the hospital and moves the
// hospital's expiry date, atomically. A key that was redeemed concurrently
// yields ErrActivationKeyNotFound.
func (r *HospitalRepository) RedeemActivationKey(ctx context.Context, hospitalID, keyID uint, expiry, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ActivationKey{}).
			Where("id = ? AND redeemed_by IS NULL", keyID).
			Updates(map[string]any{"redeemed_by": hospitalID, "redeemed_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrActivationKeyNotFound
		}
		return tx.Model(&models.Hospital{}).
			Where("id = ?", hospitalID).
			Update("expiry_date", expiry).Error
	})
}

// DeleteHospital removes a hospital and every record it owns
func (r *HospitalRepository) DeleteHospital(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prescriptions := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Prescription{}).
			Select("id").
			Where("hospital_id = ?", id)
		if err := tx.Where("prescription_id IN (?)", prescriptions).Delete(&models.PrescriptionItem{}).Error; err != nil {
			return err
		}

		owned := []any{
			&models.Billing{},
			&models.Prescription{},
			&models.LabResult{},
			&models.LabRequest{},
			&models.Diagnosis{},
			&models.Appointment{},
			&models.LabTest{},
			&models.Drug{},
			&models.Service{},
			&models.Patient{},
			&models.Worker{},
			&models.RefreshToken{},
		}
		for _, model := range owned {
			if err := tx.Where("hospital_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.Hospital{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrHospitalNotFound
		}
		return nil
	})
}
