package database

import (
	"fmt"

	"hospital-management-api/internal/models"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&models.Hospital{},
		&models.Worker{},
		&models.Patient{},
		&models.Service{},
		&models.Drug{},
		&models.LabTest{},
		&models.Appointment{},
		&models.Diagnosis{},
		&models.LabRequest{},
		&models.LabResult{},
		&models.Prescription{},
		&models.PrescriptionItem{},
		&models.Billing{},
		&models.RefreshToken{},
		&models.ActivationKey{},
		&models.AuditLog{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
