package service

import (
	"context"
	"fmt"
	"time"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"
)

type PatientInput struct {
	PatientName             string      `json:"patient_name" binding:"required,max=255"`
	PatientGender           string      `json:"patient_gender" binding:"omitempty,max=20"`
	PatientDOB              models.Date `json:"patient_dob"`
	PatientEmail            string      `json:"patient_email" binding:"omitempty,email"`
	PatientPhone            string      `json:"patient_phone" binding:"omitempty,max=50"`
	PatientIDNumber         string      `json:"patient_id_number" binding:"omitempty,max=100"`
	PatientAddress          string      `json:"patient_address"`
	PatientWeight           float64     `json:"patient_weight" binding:"gte=0"`
	PatientAvgPulse         float64     `json:"patient_avg_pulse" binding:"gte=0"`
	PatientBP               string      `json:"patient_bp" binding:"omitempty,max=20"`
	PatientChronicCondition string      `json:"patient_chronic_condition"`
	PatientAllergy          string      `json:"patient_allergy"`
	PatientBloodType        string      `json:"patient_blood_type" binding:"omitempty,max=5"`
}

func (in PatientInput) apply(p *models.Patient) {
	p.PatientName = in.PatientName
	p.PatientGender = in.PatientGender
	p.PatientDOB = in.PatientDOB
	p.PatientEmail = in.PatientEmail
	p.PatientPhone = in.PatientPhone
	p.PatientIDNumber = in.PatientIDNumber
	p.PatientAddress = in.PatientAddress
	p.PatientWeight = in.PatientWeight
	p.PatientAvgPulse = in.PatientAvgPulse
	p.PatientBP = in.PatientBP
	p.PatientChronicCondition = in.PatientChronicCondition
	p.PatientAllergy = in.PatientAllergy
	p.PatientBloodType = in.PatientBloodType
}

type patientStore interface {
	recordStore[models.Patient]
	columnSearcher[models.Patient]
}

type PatientService struct {
	records[models.Patient]
	store patientStore
	now   func() time.Time
}

func NewPatientService(store patientStore) *PatientService {
	return &PatientService{
		records: records[models.Patient]{store: store, sortColumns: repository.PatientSortColumns, entity: "patients"},
		store:   store,
		now:     time.Now,
	}
}

// Search matches term against the column named by searchBy
func (s *PatientService) Search(ctx context.Context, hospitalID uint, searchBy, term string) ([]models.Patient, error) {
	return s.store.SearchBy(ctx, hospitalID, searchBy, term)
}

func (s *PatientService) validate(in PatientInput) error {
	if !in.PatientDOB.IsZero() && in.PatientDOB.After(today(s.now)) {
		return fmt.Errorf("%w: patient_dob is in the future", ErrInvalidInput)
	}
	return nil
}

func (s *PatientService) Create(ctx context.Context, hospitalID uint, in PatientInput) (*models.Patient, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	patient := &models.Patient{}
	in.apply(patient)
	if err := s.store.Create(ctx, hospitalID, patient); err != nil {
		return nil, mutationFailed("add", "patient", err)
	}
	return patient, nil
}

func (s *PatientService) Update(ctx context.Context, hospitalID, id uint, in PatientInput) (*models.Patient, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	patient, err := s.store.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	in.apply(patient)
	if err := s.store.Update(ctx, hospitalID, patient); err != nil {
		return nil, mutationFailed("edit", "patient", err)
	}
	return patient, nil
}
