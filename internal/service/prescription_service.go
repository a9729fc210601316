package service

import (
	"context"
	"fmt"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/report"
	"hospital-management-api/internal/repository"
)

// PrescriptionInput issues one drug to a patient.
type PrescriptionInput struct {
	PatientID uint   `json:"patient_id" binding:"required"`
	DrugID    uint   `json:"drug_id" binding:"required"`
	DrugQty   int    `json:"drug_qty" binding:"required,gt=0"`
	Notes     string `json:"notes"`
}

type prescriptionStore interface {
	recordStore[models.Prescription]
	termSearcher[models.Prescription]
}

// PrescriptionService returns prescriptions grouped by patient name.
type PrescriptionService struct {
	store    prescriptionStore
	patients existenceChecker
	drugs    existenceChecker
}

func NewPrescriptionService(store prescriptionStore, patients, drugs existenceChecker) *PrescriptionService {
	return &PrescriptionService{store: store, patients: patients, drugs: drugs}
}

func (s *PrescriptionService) List(ctx context.Context, hospitalID uint, sortTerm, sortDir string) ([]report.PrescriptionGroup, error) {
	sort, err := repository.ParseSort(sortTerm, sortDir, repository.PrescriptionSortColumns)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.List(ctx, hospitalID, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prescriptions: %w", err)
	}
	return report.GroupPrescriptions(rows), nil
}

func (s *PrescriptionService) Search(ctx context.Context, hospitalID uint, term string) ([]report.PrescriptionGroup, error) {
	rows, err := s.store.Search(ctx, hospitalID, term)
	if err != nil {
		return nil, err
	}
	return report.GroupPrescriptions(rows), nil
}

func (s *PrescriptionService) Get(ctx context.Context, hospitalID, id uint) (*report.PrescriptionGroup, error) {
	p, err := s.store.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	group := report.GroupPrescriptions([]models.Prescription{*p})[0]
	return &group, nil
}

// Create issues a single-item prescription and returns it grouped.
// Stock is only taken out when the drug is sold.
func (s *PrescriptionService) Create(ctx context.Context, hospitalID uint, in PrescriptionInput) (*report.PrescriptionGroup, error) {
	if err := requireOwned(ctx, s.patients, hospitalID, in.PatientID, repository.ErrPatientNotFound); err != nil {
		return nil, err
	}
	if err := requireOwned(ctx, s.drugs, hospitalID, in.DrugID, repository.ErrDrugNotFound); err != nil {
		return nil, err
	}

	prescription := &models.Prescription{
		PatientID: in.PatientID,
		Items:     []models.PrescriptionItem{{DrugID: in.DrugID, DrugQty: in.DrugQty, Notes: in.Notes}},
	}
	if err := s.store.Create(ctx, hospitalID, prescription); err != nil {
		return nil, mutationFailed("add", "prescription", err)
	}
	return s.Get(ctx, hospitalID, prescription.ID)
}

func (s *PrescriptionService) Delete(ctx context.Context, hospitalID, id uint) error {
	return records[models.Prescription]{store: s.store, entity: "prescriptions"}.Delete(ctx, hospitalID, id)
}
