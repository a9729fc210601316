package service

import (
	"context"
	"fmt"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"
)

type DiagnosisInput struct {
	PatientID          uint   `json:"patient_id" binding:"required"`
	Symptoms           string `json:"symptoms" binding:"required"`
	Findings           string `json:"findings"`
	SuggestedDiagnosis string `json:"suggested_diagnosis" binding:"required"`
}

type diagnosisStore interface {
	billedStore[models.Diagnosis]
	termSearcher[models.Diagnosis]
}

type DiagnosisService struct {
	records[models.Diagnosis]
	store     diagnosisStore
	patients  existenceChecker
	hospitals hospitalReader
}

func NewDiagnosisService(store diagnosisStore, patients existenceChecker, hospitals hospitalReader) *DiagnosisService {
	return &DiagnosisService{
		records:   records[models.Diagnosis]{store: store, sortColumns: repository.DiagnosisSortColumns, entity: "diagnoses"},
		store:     store,
		patients:  patients,
		hospitals: hospitals,
	}
}

func (s *DiagnosisService) Search(ctx context.Context, hospitalID uint, term string) ([]models.Diagnosis, error) {
	return s.store.Search(ctx, hospitalID, term)
}

// Create records a diagnosis and, when the hospital charges one, bills the diagnosis fee.
func (s *DiagnosisService) Create(ctx context.Context, hospitalID uint, in DiagnosisInput) (*models.Diagnosis, error) {
	if err := requireOwned(ctx, s.patients, hospitalID, in.PatientID, repository.ErrPatientNotFound); err != nil {
		return nil, err
	}
	hospital, err := s.hospitals.GetHospitalByID(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	diagnosis := &models.Diagnosis{
		PatientID:          in.PatientID,
		Symptoms:           in.Symptoms,
		Findings:           in.Findings,
		SuggestedDiagnosis: in.SuggestedDiagnosis,
	}

	var bill *models.Billing
	if hospital.DiagnosisFee > 0 {
		patientID := in.PatientID
		bill = &models.Billing{
			PatientID: &patientID,
			Item:      "Diagnosis fee",
			Source:    models.BillingSourceDiagnosis,
			Total:     hospital.DiagnosisFee,
		}
	}
	if err := s.store.CreateBilled(ctx, hospitalID, diagnosis, bill); err != nil {
		return nil, mutationFailed("add", "diagnosis", err)
	}
	return diagnosis, nil
}

func (s *DiagnosisService) Update(ctx context.Context, hospitalID, id uint, in DiagnosisInput) (*models.Diagnosis, error) {
	if err := requireOwned(ctx, s.patients, hospitalID, in.PatientID, repository.ErrPatientNotFound); err != nil {
		return nil, err
	}
	diagnosis, err := s.store.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	diagnosis.PatientID = in.PatientID
	diagnosis.Symptoms = in.Symptoms
	diagnosis.Findings = in.Findings
	diagnosis.SuggestedDiagnosis = in.SuggestedDiagnosis
	if err := s.store.Update(ctx, hospitalID, diagnosis); err != nil {
		return nil, mutationFailed("edit", "diagnosis", err)
	}
	return diagnosis, nil
}

type AppointmentInput struct {
	PatientID       uint        `json:"patient_id" binding:"required"`
	ConsultantID    uint        `json:"consultant_id" binding:"required"`
	ServiceID       uint        `json:"service_id" binding:"required"`
	AppointmentDesc string      `json:"appointment_desc"`
	DateScheduled   models.Date `json:"date_scheduled"`
	TimeScheduled   string      `json:"time_scheduled" binding:"required,hhmm"`
}

type appointmentStore interface {
	billedStore[models.Appointment]
	termSearcher[models.Appointment]
}

type AppointmentService struct {
	records[models.Appointment]
	store    appointmentStore
	patients existenceChecker
	workers  existenceChecker
	services getter[models.Service]
}

func NewAppointmentService(store appointmentStore, patients, workers existenceChecker, services getter[models.Service]) *AppointmentService {
	return &AppointmentService{
		records:  records[models.Appointment]{store: store, sortColumns: repository.AppointmentSortColumns, entity: "appointments"},
		store:    store,
		patients: patients,
		workers:  workers,
		services: services,
	}
}

func (s *AppointmentService) Search(ctx context.Context, hospitalID uint, term string) ([]models.Appointment, error) {
	return s.store.Search(ctx, hospitalID, term)
}

// check verifies every referenced row belongs to the hospital and returns the booked service.
func (s *AppointmentService) check(ctx context.Context, hospitalID uint, in AppointmentInput) (*models.Service, error) {
	if in.DateScheduled.IsZero() {
		return nil, fmt.Errorf("%w: date_scheduled is required", ErrInvalidInput)
	}
	if err := requireOwned(ctx, s.patients, hospitalID, in.PatientID, repository.ErrPatientNotFound); err != nil {
		return nil, err
	}
	if err := requireOwned(ctx, s.workers, hospitalID, in.ConsultantID, repository.ErrWorkerNotFound); err != nil {
		return nil, err
	}
	return s.services.Get(ctx, hospitalID, in.ServiceID)
}

func (in AppointmentInput) apply(a *models.Appointment) {
	a.PatientID = in.PatientID
	a.ConsultantID = in.ConsultantID
	a.ServiceID = in.ServiceID
	a.AppointmentDesc = in.AppointmentDesc
	a.DateScheduled = in.DateScheduled
	a.TimeScheduled = in.TimeScheduled
}

// Create books an appointment and bills the patient for the booked service.
func (s *AppointmentService) Create(ctx context.Context, hospitalID uint, in AppointmentInput) (*models.Appointment, error) {
	svc, err := s.check(ctx, hospitalID, in)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{}
	in.apply(appointment)

	patientID := in.PatientID
	bill := &models.Billing{
		PatientID: &patientID,
		Item:      svc.ServiceName,
		Source:    models.BillingSourceService,
		Total:     svc.ServicePrice,
	}
	if err := s.store.CreateBilled(ctx, hospitalID, appointment, bill); err != nil {
		return nil, mutationFailed("add", "appointment", err)
	}
	return appointment, nil
}

func (s *AppointmentService) Update(ctx context.Context, hospitalID, id uint, in AppointmentInput) (*models.Appointment, error) {
	if _, err := s.check(ctx, hospitalID, in); err != nil {
		return nil, err
	}
	appointment, err := s.store.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	in.apply(appointment)
	if err := s.store.Update(ctx, hospitalID, appointment); err != nil {
		return nil, mutationFailed("edit", "appointment", err)
	}
	return appointment, nil
}

type LabRequestInput struct {
	PatientID uint `json:"patient_id" binding:"required"`
	TestID    uint `json:"test_id" binding:"required"`
}

type labRequestStore interface {
	billedStore[models.LabRequest]
	termSearcher[models.LabRequest]
}

// LabRequestService has no edit operation; a wrong request is deleted and raised again.
type LabRequestService struct {
	records[models.LabRequest]
	store    labRequestStore
	patients existenceChecker
	tests    getter[models.LabTest]
}

func NewLabRequestService(store labRequestStore, patients existenceChecker, tests getter[models.LabTest]) *LabRequestService {
	return &LabRequestService{
		records:  records[models.LabRequest]{store: store, sortColumns: repository.LabRequestSortColumns, entity: "lab requests"},
		store:    store,
		patients: patients,
		tests:    tests,
	}
}

func (s *LabRequestService) Search(ctx context.Context, hospitalID uint, term string) ([]models.LabRequest, error) {
	return s.store.Search(ctx, hospitalID, term)
}

func (s *LabRequestService) Create(ctx context.Context, hospitalID uint, in LabRequestInput) (*models.LabRequest, error) {
	if err := requireOwned(ctx, s.patients, hospitalID, in.PatientID, repository.ErrPatientNotFound); err != nil {
		return nil, err
	}
	test, err := s.tests.Get(ctx, hospitalID, in.TestID)
	if err != nil {
		return nil, err
	}

	request := &models.LabRequest{PatientID: in.PatientID, TestID: in.TestID}
	patientID := in.PatientID
	bill := &models.Billing{
		PatientID: &patientID,
		Item:      test.TestName,
		Source:    models.BillingSourceLaboratory,
		Total:     test.TestPrice,
	}
	if err := s.store.CreateBilled(ctx, hospitalID, request, bill); err != nil {
		return nil, mutationFailed("add", "lab request", err)
	}
	return request, nil
}

type LabResultInput struct {
	PatientID    uint   `json:"patient_id" binding:"required"`
	Observations string `json:"observations" binding:"required"`
	Conclusion   string `json:"conclusion" binding:"required"`
}

type labResultStore interface {
	recordStore[models.LabResult]
	termSearcher[models.LabResult]
}

type LabResultService struct {
	records[models.LabResult]
	store    labResultStore
	patients existenceChecker
}

func NewLabResultService(store labResultStore, patients existenceChecker) *LabResultService {
	return &LabResultService{
		records:  records[models.LabResult]{store: store, sortColumns: repository.LabResultSortColumns, entity: "lab results"},
		store:    store,
		patients: patients,
	}
}

func (s *LabResultService) Search(ctx context.Context, hospitalID uint, term string) ([]models.LabResult, error) {
	return s.store.Search(ctx, hospitalID, term)
}

func (s *LabResultService) Create(ctx context.Context, hospitalID uint, in LabResultInput) (*models.LabResult, error) {
	if err := requireOwned(ctx, s.patients, hospitalID, in.PatientID, repository.ErrPatientNotFound); err != nil {
		return nil, err
	}
	result := &models.LabResult{PatientID: in.PatientID, Observations: in.Observations, Conclusion: in.Conclusion}
	if err := s.store.Create(ctx, hospitalID, result); err != nil {
		return nil, mutationFailed("add", "lab result", err)
	}
	return result, nil
}

func (s *LabResultService) Update(ctx context.Context, hospitalID, id uint, in LabResultInput) (*models.LabResult, error) {
	if err := requireOwned(ctx, s.patients, hospitalID, in.PatientID, repository.ErrPatientNotFound); err != nil {
		return nil, err
	}
	result, err := s.store.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	result.PatientID, result.Observations, result.Conclusion = in.PatientID, in.Observations, in.Conclusion
	if err := s.store.Update(ctx, hospitalID, result); err != nil {
		return nil, mutationFailed("edit", "lab result", err)
	}
	return result, nil
}
