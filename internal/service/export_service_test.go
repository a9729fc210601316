package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/report"
	"hospital-management-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	docs    []report.Document
	formats []report.Format
}

func (c *captureWriter) Write(doc report.Document, f report.Format) (*report.Artifact, error) {
	c.docs = append(c.docs, doc)
	c.formats = append(c.formats, f)
	return &report.Artifact{Path: "/tmp/x", Name: "x." + string(f), ContentType: f.ContentType()}, nil
}

func newExportFixture() (*ExportService, ExportSources, *captureWriter, *memStore[models.Drug], *memStore[models.Diagnosis]) {
	drugs := newDrugs()
	diagnoses := diagnosisStoreFake()
	src := ExportSources{
		Drugs:        drugs,
		Patients:     newPatients(),
		Diagnoses:    diagnoses,
		Appointments: newMemStore(func(a *models.Appointment) *uint { return &a.ID }, repository.ErrAppointmentNotFound),
		LabRequests:  newMemStore(func(l *models.LabRequest) *uint { return &l.ID }, repository.ErrLabRequestNotFound),
		LabResults:   newMemStore(func(l *models.LabResult) *uint { return &l.ID }, repository.ErrLabResultNotFound),
	}
	writer := &captureWriter{}
	svc := NewExportService(src, newHospitals(models.Hospital{ID: 1, HospitalName: "St. Mary"}), writer)
	svc.now = func() time.Time { return fixedNow }
	return svc, src, writer, drugs, diagnoses
}

func TestExportDrugsSellable(t *testing.T) {
	svc, _, writer, drugs, _ := newExportFixture()
	today := models.NewDate(fixedNow)
	drugs.put(1, models.Drug{DrugName: "Fresh", DrugQuantity: 5, DrugExpiry: today.AddDays(30)})
	drugs.put(1, models.Drug{DrugName: "Empty", DrugQuantity: 0, DrugExpiry: today.AddDays(30)})
	drugs.put(1, models.Drug{DrugName: "Stale", DrugQuantity: 3, DrugExpiry: today.AddDays(-1)})
	drugs.put(2, models.Drug{DrugName: "Elsewhere", DrugQuantity: 9})

	artifact, err := svc.Drugs(context.Background(), 1, "sellable", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", artifact.ContentType)

	require.Len(t, writer.docs, 1)
	doc := writer.docs[0]
	assert.Equal(t, "St. Mary", doc.Hospital)
	assert.Equal(t, "sellable", doc.Label)
	require.Len(t, doc.Table.Rows, 1)
	assert.Contains(t, doc.Table.Rows[0], "Fresh")
}

func TestExportValidatesBeforeFetching(t *testing.T) {
	svc, _, writer, drugs, diagnoses := newExportFixture()

	_, err := svc.Drugs(context.Background(), 1, "cheap", "pdf")
	assert.ErrorIs(t, err, report.ErrInvalidFilter)

	_, err = svc.Drugs(context.Background(), 1, "total", "docx")
	assert.ErrorIs(t, err, report.ErrInvalidFormat)

	_, err = svc.Diagnoses(context.Background(), 1, RangeQuery{StartDate: "2024-01-01", EndDate: "2024-04-15"})
	assert.ErrorIs(t, err, report.ErrRangeTooLarge)

	_, err = svc.Diagnoses(context.Background(), 1, RangeQuery{StartDate: "2024-02-01", EndDate: "2024-01-01"})
	assert.ErrorIs(t, err, report.ErrInvalidRange)

	assert.Zero(t, drugs.allCalls)
	assert.Zero(t, diagnoses.allCalls)
	assert.Empty(t, writer.docs)
}

func TestExportEmptyResultWritesNothing(t *testing.T) {
	svc, _, writer, _, diagnoses := newExportFixture()
	diagnoses.put(1, models.Diagnosis{DateAdded: time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)})

	_, err := svc.Diagnoses(context.Background(), 1, RangeQuery{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	assert.ErrorIs(t, err, report.ErrEmptyReport)
	assert.Empty(t, writer.docs)
}

func TestExportDiagnosesByRange(t *testing.T) {
	svc, _, writer, _, diagnoses := newExportFixture()
	diagnoses.put(1, models.Diagnosis{SuggestedDiagnosis: "before", DateAdded: time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)})
	diagnoses.put(1, models.Diagnosis{SuggestedDiagnosis: "first day", DateAdded: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	diagnoses.put(1, models.Diagnosis{SuggestedDiagnosis: "last day", DateAdded: time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)})

	_, err := svc.Diagnoses(context.Background(), 1, RangeQuery{StartDate: "2024-01-01", EndDate: "2024-01-31", Format: "xlsx"})
	require.NoError(t, err)
	require.Len(t, writer.docs, 1)
	assert.Equal(t, report.FormatXLSX, writer.formats[0])
	assert.Equal(t, "2024-01-01_to_2024-01-31", writer.docs[0].Label)
	assert.Len(t, writer.docs[0].Table.Rows, 2)
}

func TestExportJanitorSweep(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.pdf")
	fresh := filepath.Join(dir, "fresh.csv")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "keep"), 0o755))

	now := time.Now()
	require.NoError(t, os.Chtimes(old, now.Add(-2*time.Hour), now.Add(-2*time.Hour)))

	j := NewExportJanitor(dir, time.Hour, time.Minute, nobody)
	j.now = func() time.Time { return now }

	removed, err := j.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.DirExists(t, filepath.Join(dir, "keep"))
}

func TestExportJanitorMissingDir(t *testing.T) {
	j := NewExportJanitor(filepath.Join(t.TempDir(), "absent"), time.Hour, time.Minute, nobody)
	removed, err := j.Sweep()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestExportJanitorStopsOnCancel(t *testing.T) {
	j := NewExportJanitor(t.TempDir(), time.Hour, time.Millisecond, nobody)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
