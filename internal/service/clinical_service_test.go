package service

import (
	"context"
	"testing"
	"time"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func TestPatientCreateRejectsFutureBirthDate(t *testing.T) {
	svc := NewPatientService(patientStoreFake{newPatients()})
	svc.now = func() time.Time { return fixedNow }

	_, err := svc.Create(context.Background(), 1, PatientInput{
		PatientName: "Ada",
		PatientDOB:  models.NewDate(fixedNow.AddDate(0, 0, 1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	p, err := svc.Create(context.Background(), 1, PatientInput{
		PatientName: "Ada",
		PatientDOB:  models.NewDate(fixedNow),
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
}

func TestRecordsListRejectsUnknownSortColumn(t *testing.T) {
	store := patientStoreFake{newPatients()}
	svc := NewPatientService(store)

	_, err := svc.List(context.Background(), 1, "password_hash", "asc")
	assert.ErrorIs(t, err, repository.ErrInvalidSort)

	_, err = svc.List(context.Background(), 1, "patient_name", "asc")
	require.NoError(t, err)
	assert.Equal(t, "patient_name", store.lastSort.Column)
	assert.False(t, store.lastSort.Desc)
}

func TestRecordsAreInvisibleToOtherHospitals(t *testing.T) {
	store := patientStoreFake{newPatients()}
	svc := NewPatientService(store)
	p := store.put(1, models.Patient{PatientName: "Ada"})

	_, err := svc.Get(context.Background(), 2, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Update(context.Background(), 2, p.ID, PatientInput{PatientName: "Eve"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = svc.Delete(context.Background(), 2, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := svc.Get(context.Background(), 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.PatientName)
}

func diagnosisStoreFake() *memStore[models.Diagnosis] {
	return newMemStore(func(d *models.Diagnosis) *uint { return &d.ID }, repository.ErrDiagnosisNotFound)
}

func TestDiagnosisCreateBillsFee(t *testing.T) {
	patients := newPatients()
	p := patients.put(1, models.Patient{PatientName: "Ada"})

	tests := []struct {
		name  string
		fee   float64
		bills int
	}{
		{name: "hospital charges a fee", fee: 25, bills: 1},
		{name: "free diagnosis", fee: 0, bills: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := diagnosisStoreFake()
			hospitals := newHospitals(models.Hospital{ID: 1, HospitalName: "General", DiagnosisFee: tt.fee})
			svc := NewDiagnosisService(store, patients, hospitals)

			d, err := svc.Create(context.Background(), 1, DiagnosisInput{
				PatientID:          p.ID,
				Symptoms:           "cough",
				SuggestedDiagnosis: "flu",
			})
			require.NoError(t, err)
			assert.NotZero(t, d.ID)
			require.Len(t, store.bills, tt.bills)
			if tt.bills > 0 {
				assert.Equal(t, models.BillingSourceDiagnosis, store.bills[0].Source)
				assert.Equal(t, tt.fee, store.bills[0].Total)
				assert.Equal(t, p.ID, *store.bills[0].PatientID)
			}
		})
	}
}

func TestDiagnosisCreateRejectsForeignPatient(t *testing.T) {
	patients := newPatients()
	p := patients.put(2, models.Patient{PatientName: "Other"})
	svc := NewDiagnosisService(diagnosisStoreFake(), patients, newHospitals(models.Hospital{ID: 1}))

	_, err := svc.Create(context.Background(), 1, DiagnosisInput{PatientID: p.ID, Symptoms: "x", SuggestedDiagnosis: "y"})
	assert.ErrorIs(t, err, repository.ErrPatientNotFound)
}

func TestAppointmentCreateChecksReferencesAndBillsService(t *testing.T) {
	patients := newPatients()
	workers := newWorkers()
	services := newServices()
	store := newMemStore(func(a *models.Appointment) *uint { return &a.ID }, repository.ErrAppointmentNotFound)
	svc := NewAppointmentService(store, patients, workers, services)

	patient := patients.put(1, models.Patient{PatientName: "Ada"})
	doctor := workers.put(1, models.Worker{WorkerName: "Dr. Who"})
	foreignDoctor := workers.put(2, models.Worker{WorkerName: "Dr. Elsewhere"})
	consult := services.put(1, models.Service{ServiceName: "Consultation", ServicePrice: 40})

	in := AppointmentInput{
		PatientID:     patient.ID,
		ConsultantID:  foreignDoctor.ID,
		ServiceID:     consult.ID,
		DateScheduled: models.NewDate(fixedNow),
		TimeScheduled: "09:30",
	}
	_, err := svc.Create(context.Background(), 1, in)
	assert.ErrorIs(t, err, repository.ErrWorkerNotFound)
	assert.Empty(t, store.bills)

	in.ConsultantID = doctor.ID
	in.DateScheduled = models.Date{}
	_, err = svc.Create(context.Background(), 1, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in.DateScheduled = models.NewDate(fixedNow)
	a, err := svc.Create(context.Background(), 1, in)
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, a.ConsultantID)
	require.Len(t, store.bills, 1)
	assert.Equal(t, "Consultation", store.bills[0].Item)
	assert.Equal(t, models.BillingSourceService, store.bills[0].Source)
	assert.Equal(t, 40.0, store.bills[0].Total)
}

func TestLabRequestCreateBillsTestPrice(t *testing.T) {
	patients := newPatients()
	tests := newLabTests()
	store := newMemStore(func(l *models.LabRequest) *uint { return &l.ID }, repository.ErrLabRequestNotFound)
	svc := NewLabRequestService(store, patients, tests)

	patient := patients.put(1, models.Patient{PatientName: "Ada"})
	cbc := tests.put(1, models.LabTest{TestName: "CBC", TestPrice: 12.5})
	foreign := tests.put(2, models.LabTest{TestName: "Lipids", TestPrice: 30})

	_, err := svc.Create(context.Background(), 1, LabRequestInput{PatientID: patient.ID, TestID: foreign.ID})
	assert.ErrorIs(t, err, repository.ErrLabTestNotFound)

	req, err := svc.Create(context.Background(), 1, LabRequestInput{PatientID: patient.ID, TestID: cbc.ID})
	require.NoError(t, err)
	assert.Equal(t, cbc.ID, req.TestID)
	require.Len(t, store.bills, 1)
	assert.Equal(t, models.BillingSourceLaboratory, store.bills[0].Source)
	assert.Equal(t, 12.5, store.bills[0].Total)
}

type sellingDrugs struct {
	*memStore[models.Drug]
	sold int
}

func (s *sellingDrugs) Sell(ctx context.Context, hospitalID, drugID uint, qty int, patientID *uint) (*models.Drug, *models.Billing, error) {
	d, err := s.Get(ctx, hospitalID, drugID)
	if err != nil {
		return nil, nil, err
	}
	if d.DrugQuantity < qty {
		return nil, nil, repository.ErrInsufficientStock
	}
	s.sold += qty
	d.DrugQuantity -= qty
	return d, &models.Billing{PatientID: patientID, Item: d.DrugName, Source: models.BillingSourcePharmacy, Total: float64(qty) * d.DrugPrice}, nil
}

func TestDrugSellValidatesQuantity(t *testing.T) {
	drugs := &sellingDrugs{memStore: newDrugs()}
	svc := NewDrugService(drugs)
	d := drugs.put(1, models.Drug{DrugName: "Aspirin", DrugQuantity: 5, DrugPrice: 2})

	_, err := svc.Sell(context.Background(), 1, d.ID, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Sell(context.Background(), 1, d.ID, 6, nil)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	sale, err := svc.Sell(context.Background(), 1, d.ID, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, sale.Drug.DrugQuantity)
	assert.Equal(t, 6.0, sale.Billing.Total)
	assert.Nil(t, sale.Billing.PatientID)
}

func TestPrescriptionCreateReturnsGroup(t *testing.T) {
	patients := newPatients()
	drugs := newDrugs()
	store := newMemStore(func(p *models.Prescription) *uint { return &p.ID }, repository.ErrPrescriptionNotFound)
	svc := NewPrescriptionService(store, patients, drugs)

	patient := patients.put(1, models.Patient{PatientName: "Ada"})
	drug := drugs.put(1, models.Drug{DrugName: "Aspirin"})

	_, err := svc.Create(context.Background(), 1, PrescriptionInput{PatientID: patient.ID, DrugID: 99, DrugQty: 1})
	assert.ErrorIs(t, err, repository.ErrDrugNotFound)

	group, err := svc.Create(context.Background(), 1, PrescriptionInput{PatientID: patient.ID, DrugID: drug.ID, DrugQty: 2, Notes: "after meals"})
	require.NoError(t, err)
	require.Len(t, group.Entries, 1)
	assert.Equal(t, 2, group.Entries[0].Quantity)
	assert.Equal(t, "after meals", group.Entries[0].Notes)
	assert.NotZero(t, group.PrescriptionID)

	require.NoError(t, svc.Delete(context.Background(), 1, group.PrescriptionID))
	_, err = svc.Get(context.Background(), 1, group.PrescriptionID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

type billingFake struct {
	day time.Time
}

func (b *billingFake) ListAll(ctx context.Context, hospitalID uint) ([]models.Billing, error) {
	return nil, nil
}

func (b *billingFake) ListForPatient(ctx context.Context, hospitalID, patientID uint) ([]models.Billing, error) {
	return []models.Billing{{Item: "x"}}, nil
}

func (b *billingFake) ListForPatientOn(ctx context.Context, hospitalID, patientID uint, day time.Time) ([]models.Billing, error) {
	b.day = day
	return []models.Billing{{Item: "x"}}, nil
}

func (b *billingFake) SearchByPatientName(ctx context.Context, hospitalID uint, term string) ([]models.Billing, error) {
	return nil, nil
}

func TestBillingShowPatientToday(t *testing.T) {
	patients := newPatients()
	p := patients.put(1, models.Patient{PatientName: "Ada"})
	store := &billingFake{}
	svc := NewBillingService(store, patients)
	svc.now = func() time.Time { return fixedNow.In(time.FixedZone("WAT", 3600)) }

	_, err := svc.ShowPatientToday(context.Background(), 2, p.ID)
	assert.ErrorIs(t, err, repository.ErrPatientNotFound)

	rows, err := svc.ShowPatientToday(context.Background(), 1, p.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, time.UTC, store.day.Location())
	assert.True(t, store.day.Equal(fixedNow))
}
