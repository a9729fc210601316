package service

import (
	"context"
	"fmt"
	"time"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/report"
)

type allLister[T any] interface {
	All(ctx context.Context, hospitalID uint) ([]T, error)
}

type documentWriter interface {
	Write(doc report.Document, f report.Format) (*report.Artifact, error)
}

// ExportSources are the row sets a hospital can export.
type ExportSources struct {
	Drugs        allLister[models.Drug]
	Patients     allLister[models.Patient]
	Diagnoses    allLister[models.Diagnosis]
	Appointments allLister[models.Appointment]
	LabRequests  allLister[models.LabRequest]
	LabResults   allLister[models.LabResult]
}

// ExportService filters a hospital's rows and writes them out as a report file.
// Filters, formats and date ranges are validated before anything is fetched.
type ExportService struct {
	src       ExportSources
	hospitals hospitalReader
	writer    documentWriter
	now       func() time.Time
}

func NewExportService(src ExportSources, hospitals hospitalReader, writer documentWriter) *ExportService {
	return &ExportService{src: src, hospitals: hospitals, writer: writer, now: time.Now}
}

func (s *ExportService) write(ctx context.Context, hospitalID uint, entity, label string, f report.Format, table report.Table) (*report.Artifact, error) {
	if len(table.Rows) == 0 {
		return nil, report.ErrEmptyReport
	}
	hospital, err := s.hospitals.GetHospitalByID(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	doc := report.Document{
		Hospital:    hospital.HospitalName,
		Entity:      entity,
		Label:       label,
		GeneratedAt: s.now(),
		Table:       table,
	}
	artifact, err := s.writer.Write(doc, f)
	if err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", entity, err)
	}
	return artifact, nil
}

func (s *ExportService) Drugs(ctx context.Context, hospitalID uint, filter, format string) (*report.Artifact, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	df, err := report.ParseDrugFilter(filter)
	if err != nil {
		return nil, err
	}

	drugs, err := s.src.Drugs.All(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch drugs: %w", err)
	}
	drugs, err = report.FilterDrugs(drugs, df, today(s.now))
	if err != nil {
		return nil, err
	}
	return s.write(ctx, hospitalID, "drugs", string(df), f, report.DrugTable(drugs))
}

func (s *ExportService) Patients(ctx context.Context, hospitalID uint, filter, format string) (*report.Artifact, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	pf, err := report.ParsePatientFilter(filter)
	if err != nil {
		return nil, err
	}

	patients, err := s.src.Patients.All(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}
	day := today(s.now)
	patients, err = report.FilterPatients(patients, pf, day)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, hospitalID, "patients", string(pf), f, report.PatientTable(patients, day))
}

// RangeQuery is the start_date/end_date/format triple of a date-range export.
type RangeQuery struct {
	StartDate string
	EndDate   string
	Format    string
}

func exportRange[T any](
	ctx context.Context,
	s *ExportService,
	hospitalID uint,
	entity string,
	q RangeQuery,
	src allLister[T],
	date func(T) time.Time,
	table func([]T) report.Table,
) (*report.Artifact, error) {
	f, err := report.ParseFormat(q.Format)
	if err != nil {
		return nil, err
	}
	r, err := report.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}

	rows, err := src.All(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", entity, err)
	}
	rows = report.FilterByDate(rows, r, date)
	return s.write(ctx, hospitalID, entity, r.Label(), f, table(rows))
}

func (s *ExportService) Diagnoses(ctx context.Context, hospitalID uint, q RangeQuery) (*report.Artifact, error) {
	return exportRange(ctx, s, hospitalID, "diagnoses", q, s.src.Diagnoses,
		func(d models.Diagnosis) time.Time { return d.DateAdded }, report.DiagnosisTable)
}

func (s *ExportService) Appointments(ctx context.Context, hospitalID uint, q RangeQuery) (*report.Artifact, error) {
	return exportRange(ctx, s, hospitalID, "appointments", q, s.src.Appointments,
		func(a models.Appointment) time.Time { return a.DateAdded }, report.AppointmentTable)
}

func (s *ExportService) LabRequests(ctx context.Context, hospitalID uint, q RangeQuery) (*report.Artifact, error) {
	return exportRange(ctx, s, hospitalID, "lab requests", q, s.src.LabRequests,
		func(l models.LabRequest) time.Time { return l.DateAdded }, report.LabRequestTable)
}

func (s *ExportService) LabResults(ctx context.Context, hospitalID uint, q RangeQuery) (*report.Artifact, error) {
	return exportRange(ctx, s, hospitalID, "lab results", q, s.src.LabResults,
		func(l models.LabResult) time.Time { return l.DateAdded }, report.LabResultTable)
}
