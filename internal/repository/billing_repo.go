package repository

import (
	"context"
	"time"

	"hospital-management-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BillingRepository struct {
	TenantStore[models.Billing, *models.Billing]
}

func NewBillingRepo(db *gorm.DB) *BillingRepository {
	return &BillingRepository{TenantStore: newTenantStore[models.Billing](db, notFound("billing"), "Patient")}
}

var billingOrder = Sort{Column: "created_at", Desc: true}

func (r *BillingRepository) ListAll(ctx context.Context, hospitalID uint) ([]models.Billing, error) {
	return r.find(ctx, hospitalID, billingOrder)
}

func (r *BillingRepository) ListForPatient(ctx context.Context, hospitalID, patientID uint) ([]models.Billing, error) {
	return r.find(ctx, hospitalID, billingOrder, clause.Eq{Column: clause.Column{Name: "patient_id"}, Value: patientID})
}

// ListForPatientOn returns the patient's billings created on the UTC calendar day of day.
func (r *BillingRepository) ListForPatientOn(ctx context.Context, hospitalID, patientID uint, day time.Time) ([]models.Billing, error) {
	start := models.NewDate(day).Time
	end := start.AddDate(0, 0, 1)

	var rows []models.Billing
	err := r.loaded(ctx, hospitalID).
		Where("patient_id = ?", patientID).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order(billingOrder.clause()).
		Find(&rows).Error
	return rows, err
}

func (r *BillingRepository) SearchByPatientName(ctx context.Context, hospitalID uint, term string) ([]models.Billing, error) {
	return r.find(ctx, hospitalID, billingOrder, patientNameLike(r.db, hospitalID, term))
}
