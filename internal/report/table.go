package report

import (
	"strconv"

	"hospital-management-api/internal/models"
)

// Table is the format-neutral shape every renderer draws.
type Table struct {
	Columns []string
	Rows    [][]string
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func day(d models.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

func patientName(p *models.Patient) string {
	if p == nil {
		return "-"
	}
	return p.PatientName
}

func DrugTable(drugs []models.Drug) Table {
	t := Table{Columns: []string{"ID", "Name", "Category", "Quantity", "Price", "Expiry", "Date Added"}}
	for _, d := range drugs {
		t.Rows = append(t.Rows, []string{
			strconv.FormatUint(uint64(d.ID), 10),
			d.DrugName,
			d.DrugCategory,
			strconv.Itoa(d.DrugQuantity),
			money(d.DrugPrice),
			day(d.DrugExpiry),
			models.NewDate(d.DateAdded).String(),
		})
	}
	return t
}

func PatientTable(patients []models.Patient, today models.Date) Table {
	t := Table{Columns: []string{"ID", "Name", "Gender", "Age", "Phone", "Blood Type", "Date Added"}}
	for _, p := range patients {
		age := "-"
		if !p.PatientDOB.IsZero() {
			age = strconv.Itoa(AgeOn(p.PatientDOB, today))
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.PatientName,
			p.PatientGender,
			age,
			p.PatientPhone,
			p.PatientBloodType,
			models.NewDate(p.DateAdded).String(),
		})
	}
	return t
}

func DiagnosisTable(rows []models.Diagnosis) Table {
	t := Table{Columns: []string{"ID", "Patient", "Symptoms", "Findings", "Suggested Diagnosis", "Date Added"}}
	for _, d := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.FormatUint(uint64(d.ID), 10),
			patientName(d.Patient),
			d.Symptoms,
			d.Findings,
			d.SuggestedDiagnosis,
			models.NewDate(d.DateAdded).String(),
		})
	}
	return t
}

func AppointmentTable(rows []models.Appointment) Table {
	t := Table{Columns: []string{"ID", "Patient", "Consultant", "Service", "Date", "Time", "Date Added"}}
	for _, a := range rows {
		consultant, service := "-", "-"
		if a.Consultant != nil {
			consultant = a.Consultant.WorkerName
		}
		if a.Service != nil {
			service = a.Service.ServiceName
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatUint(uint64(a.ID), 10),
			patientName(a.Patient),
			consultant,
			service,
			day(a.DateScheduled),
			a.TimeScheduled,
			models.NewDate(a.DateAdded).String(),
		})
	}
	return t
}

func LabRequestTable(rows []models.LabRequest) Table {
	t := Table{Columns: []string{"ID", "Patient", "Test", "Price", "Date Added"}}
	for _, r := range rows {
		test, price := "-", "-"
		if r.Test != nil {
			test = r.Test.TestName
			price = money(r.Test.TestPrice)
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			patientName(r.Patient),
			test,
			price,
			models.NewDate(r.DateAdded).String(),
		})
	}
	return t
}

func LabResultTable(rows []models.LabResult) Table {
	t := Table{Columns: []string{"ID", "Patient", "Observations", "Conclusion", "Date Added"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			patientName(r.Patient),
			r.Observations,
			r.Conclusion,
			models.NewDate(r.DateAdded).String(),
		})
	}
	return t
}
