package repository

import (
	"context"
	"errors"
	"fmt"

	"hospital-management-api/internal/database"
	"hospital-management-api/internal/models"

	"gorm.io/gorm"
)

var (
	DrugSortColumns    = []string{"drug_name", "drug_category", "drug_quantity", "drug_price", "drug_expiry"}
	ServiceSortColumns = []string{"service_name", "service_price"}
	LabTestSortColumns = []string{"test_name", "test_price"}
)

type DrugRepository struct {
	TenantStore[models.Drug, *models.Drug]
}

func NewDrugRepo(db *gorm.DB) *DrugRepository {
	return &DrugRepository{TenantStore: newTenantStore[models.Drug](db, ErrDrugNotFound)}
}

func (r *DrugRepository) Search(ctx context.Context, hospitalID uint, term string) ([]models.Drug, error) {
	return r.find(ctx, hospitalID, Sort{Desc: true},
		columnLike("drug_name", term),
		columnLike("drug_category", term),
	)
}

// Sell decrements stock and records the pharmacy billing in one transaction.
// The conditional update keeps concurrent sales from driving stock negative.
func (r *DrugRepository) Sell(ctx context.Context, hospitalID, drugID uint, qty int, patientID *uint) (*models.Drug, *models.Billing, error) {
	var drug models.Drug
	var bill models.Billing

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Scopes(database.ForHospital(hospitalID)).Where("id = ?", drugID).First(&drug).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDrugNotFound
			}
			return err
		}

		if patientID != nil {
			var count int64
			err := tx.Model(&models.Patient{}).
				Scopes(database.ForHospital(hospitalID)).
				Where("id = ?", *patientID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count == 0 {
				return ErrPatientNotFound
			}
		}

		result := tx.Model(&models.Drug{}).
			Scopes(database.ForHospital(hospitalID)).
			Where("id = ? AND drug_quantity >= ?", drugID, qty).
			Update("drug_quantity", gorm.Expr("drug_quantity - ?", qty))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %d in stock", ErrInsufficientStock, drug.DrugQuantity)
		}
		drug.DrugQuantity -= qty

		bill = models.Billing{
			PatientID: patientID,
			Item:      fmt.Sprintf("%s x%d", drug.DrugName, qty),
			Source:    models.BillingSourcePharmacy,
			Total:     float64(qty) * drug.DrugPrice,
		}
		bill.SetHospitalID(hospitalID)
		return tx.Create(&bill).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &drug, &bill, nil
}

type ServiceRepository struct {
	TenantStore[models.Service, *models.Service]
}

func NewServiceRepo(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{TenantStore: newTenantStore[models.Service](db, ErrServiceNotFound)}
}

func (r *ServiceRepository) Search(ctx context.Context, hospitalID uint, term string) ([]models.Service, error) {
	return r.find(ctx, hospitalID, Sort{Desc: true},
		columnLike("service_name", term),
		columnLike("service_desc", term),
	)
}

type LabTestRepository struct {
	TenantStore[models.LabTest, *models.LabTest]
}

func NewLabTestRepo(db *gorm.DB) *LabTestRepository {
	return &LabTestRepository{TenantStore: newTenantStore[models.LabTest](db, ErrLabTestNotFound)}
}

func (r *LabTestRepository) Search(ctx context.Context, hospitalID uint, term string) ([]models.LabTest, error) {
	return r.find(ctx, hospitalID, Sort{Desc: true},
		columnLike("test_name", term),
		columnLike("test_desc", term),
	)
}
