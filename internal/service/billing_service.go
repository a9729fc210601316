package service

import (
	"context"
	"time"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"
)

type billingStore interface {
	ListAll(ctx context.Context, hospitalID uint) ([]models.Billing, error)
	ListForPatient(ctx context.Context, hospitalID, patientID uint) ([]models.Billing, error)
	ListForPatientOn(ctx context.Context, hospitalID, patientID uint, day time.Time) ([]models.Billing, error)
	SearchByPatientName(ctx context.Context, hospitalID uint, term string) ([]models.Billing, error)
}

// BillingService is read-only; billing rows are raised by the operations that charge for something.
type BillingService struct {
	store    billingStore
	patients existenceChecker
	now      func() time.Time
}

func NewBillingService(store billingStore, patients existenceChecker) *BillingService {
	return &BillingService{store: store, patients: patients, now: time.Now}
}

func (s *BillingService) ShowAll(ctx context.Context, hospitalID uint) ([]models.Billing, error) {
	return s.store.ListAll(ctx, hospitalID)
}

func (s *BillingService) ShowPatient(ctx context.Context, hospitalID, patientID uint) ([]models.Billing, error) {
	if err := requireOwned(ctx, s.patients, hospitalID, patientID, repository.ErrPatientNotFound); err != nil {
		return nil, err
	}
	return s.store.ListForPatient(ctx, hospitalID, patientID)
}

// ShowPatientToday lists the patient's charges raised on the current UTC day.
func (s *BillingService) ShowPatientToday(ctx context.Context, hospitalID, patientID uint) ([]models.Billing, error) {
	if err := requireOwned(ctx, s.patients, hospitalID, patientID, repository.ErrPatientNotFound); err != nil {
		return nil, err
	}
	return s.store.ListForPatientOn(ctx, hospitalID, patientID, s.now().UTC())
}

func (s *BillingService) Search(ctx context.Context, hospitalID uint, term string) ([]models.Billing, error) {
	return s.store.SearchByPatientName(ctx, hospitalID, term)
}
