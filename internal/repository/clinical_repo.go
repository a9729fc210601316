package repository

import (
	"context"

	"hospital-management-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	DiagnosisSortColumns   = []string{"patient_id", "suggested_diagnosis"}
	AppointmentSortColumns = []string{"patient_id", "consultant_id", "service_id", "date_scheduled", "time_scheduled"}
	LabRequestSortColumns  = []string{"patient_id", "test_id"}
	LabResultSortColumns   = []string{"patient_id", "conclusion"}
)

type DiagnosisRepository struct {
	TenantStore[models.Diagnosis, *models.Diagnosis]
}

func NewDiagnosisRepo(db *gorm.DB) *DiagnosisRepository {
	return &DiagnosisRepository{TenantStore: newTenantStore[models.Diagnosis](db, ErrDiagnosisNotFound, "Patient")}
}

func (r *DiagnosisRepository) Search(ctx context.Context, hospitalID uint, term string) ([]models.Diagnosis, error) {
	return r.find(ctx, hospitalID, Sort{Desc: true},
		patientNameLike(r.db, hospitalID, term),
		columnLike("suggested_diagnosis", term),
		columnLike("symptoms", term),
	)
}

type AppointmentRepository struct {
	TenantStore[models.Appointment, *models.Appointment]
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{
		TenantStore: newTenantStore[models.Appointment](db, ErrAppointmentNotFound, "Patient", "Consultant", "Service"),
	}
}

func (r *AppointmentRepository) Search(ctx context.Context, hospitalID uint, term string) ([]models.Appointment, error) {
	return r.find(ctx, hospitalID, Sort{Desc: true},
		patientNameLike(r.db, hospitalID, term),
		columnLike("appointment_desc", term),
	)
}

type LabRequestRepository struct {
	TenantStore[models.LabRequest, *models.LabRequest]
}

func NewLabRequestRepo(db *gorm.DB) *LabRequestRepository {
	return &LabRequestRepository{TenantStore: newTenantStore[models.LabRequest](db, ErrLabRequestNotFound, "Patient", "Test")}
}

func (r *LabRequestRepository) Search(ctx context.Context, hospitalID uint, term string) ([]models.LabRequest, error) {
	tests := r.db.Session(&gorm.Session{NewDB: true}).
		Model(&models.LabTest{}).
		Select("id").
		Where("hospital_id = ?", hospitalID).
		Where(columnLike("test_name", term))

	return r.find(ctx, hospitalID, Sort{Desc: true},
		patientNameLike(r.db, hospitalID, term),
		clause.Expr{SQL: "test_id IN (?)", Vars: []any{tests}},
	)
}

type LabResultRepository struct {
	TenantStore[models.LabResult, *models.LabResult]
}

func NewLabResultRepo(db *gorm.DB) *LabResultRepository {
	return &LabResultRepository{TenantStore: newTenantStore[models.LabResult](db, ErrLabResultNotFound, "Patient")}
}

func (r *LabResultRepository) Search(ctx context.Context, hospitalID uint, term string) ([]models.LabResult, error) {
	return r.find(ctx, hospitalID, Sort{Desc: true},
		patientNameLike(r.db, hospitalID, term),
		columnLike("conclusion", term),
	)
}
