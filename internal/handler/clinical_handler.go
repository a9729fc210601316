package handler

import (
	"hospital-management-api/internal/models"
	"hospital-management-api/internal/report"
	"hospital-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	resource[models.Patient, service.PatientInput]
	exports *service.ExportService
}

func NewPatientHandler(patients *service.PatientService, exports *service.ExportService) *PatientHandler {
	return &PatientHandler{
		resource: resource[models.Patient, service.PatientInput]{
			entity:  "patient",
			plural:  "patients",
			idParam: "patient_id",
			list:    patients.List,
			search:  patients.Search,
			get:     patients.Get,
			create:  patients.Create,
			update:  patients.Update,
			remove:  patients.Delete,
		},
		exports: exports,
	}
}

func (h *PatientHandler) Register(g *gin.RouterGroup) {
	h.register(g)
	if h.exports != nil {
		g.GET("/patients-export", exportByFilter(h.exports.Patients, "patients"))
	}
}

type DiagnosisHandler struct {
	resource[models.Diagnosis, service.DiagnosisInput]
	exports *service.ExportService
}

func NewDiagnosisHandler(diagnoses *service.DiagnosisService, exports *service.ExportService) *DiagnosisHandler {
	return &DiagnosisHandler{
		resource: resource[models.Diagnosis, service.DiagnosisInput]{
			entity:  "diagnosis",
			plural:  "diagnosis",
			idParam: "diagnosis_id",
			list:    diagnoses.List,
			search:  byTerm(diagnoses.Search),
			get:     diagnoses.Get,
			create:  diagnoses.Create,
			update:  diagnoses.Update,
			remove:  diagnoses.Delete,
		},
		exports: exports,
	}
}

func (h *DiagnosisHandler) Register(g *gin.RouterGroup) {
	h.register(g)
	if h.exports != nil {
		g.GET("/diagnosis-export", exportByRange(h.exports.Diagnoses, "diagnoses"))
	}
}

type AppointmentHandler struct {
	resource[models.Appointment, service.AppointmentInput]
	exports *service.ExportService
}

func NewAppointmentHandler(appointments *service.AppointmentService, exports *service.ExportService) *AppointmentHandler {
	return &AppointmentHandler{
		resource: resource[models.Appointment, service.AppointmentInput]{
			entity:  "appointment",
			plural:  "appointments",
			idParam: "appointment_id",
			list:    appointments.List,
			search:  byTerm(appointments.Search),
			get:     appointments.Get,
			create:  appointments.Create,
			update:  appointments.Update,
			remove:  appointments.Delete,
		},
		exports: exports,
	}
}

func (h *AppointmentHandler) Register(g *gin.RouterGroup) {
	h.register(g)
	if h.exports != nil {
		g.GET("/appointments-export", exportByRange(h.exports.Appointments, "appointments"))
	}
}

// LabRequestHandler mounts no edit route; a wrong request is deleted and raised again.
type LabRequestHandler struct {
	resource[models.LabRequest, service.LabRequestInput]
	exports *service.ExportService
}

func NewLabRequestHandler(requests *service.LabRequestService, exports *service.ExportService) *LabRequestHandler {
	return &LabRequestHandler{
		resource: resource[models.LabRequest, service.LabRequestInput]{
			entity:  "lab_request",
			plural:  "lab_requests",
			idParam: "lab_request_id",
			list:    requests.List,
			search:  byTerm(requests.Search),
			get:     requests.Get,
			create:  requests.Create,
			remove:  requests.Delete,
		},
		exports: exports,
	}
}

func (h *LabRequestHandler) Register(g *gin.RouterGroup) {
	h.register(g)
	if h.exports != nil {
		g.GET("/lab_requests-export", exportByRange(h.exports.LabRequests, "lab requests"))
	}
}

type LabResultHandler struct {
	resource[models.LabResult, service.LabResultInput]
	exports *service.ExportService
}

func NewLabResultHandler(results *service.LabResultService, exports *service.ExportService) *LabResultHandler {
	return &LabResultHandler{
		resource: resource[models.LabResult, service.LabResultInput]{
			entity:  "lab_result",
			plural:  "lab_results",
			idParam: "lab_result_id",
			list:    results.List,
			search:  byTerm(results.Search),
			get:     results.Get,
			create:  results.Create,
			update:  results.Update,
			remove:  results.Delete,
		},
		exports: exports,
	}
}

func (h *LabResultHandler) Register(g *gin.RouterGroup) {
	h.register(g)
	if h.exports != nil {
		g.GET("/lab_results-export", exportByRange(h.exports.LabResults, "lab results"))
	}
}

// PrescriptionHandler answers with prescriptions grouped by patient name.
type PrescriptionHandler struct {
	resource[report.PrescriptionGroup, service.PrescriptionInput]
}

func NewPrescriptionHandler(prescriptions *service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{resource[report.PrescriptionGroup, service.PrescriptionInput]{
		entity:  "prescription",
		plural:  "prescriptions",
		idParam: "prescription_id",
		list:    prescriptions.List,
		search:  byTerm(prescriptions.Search),
		get:     prescriptions.Get,
		create:  prescriptions.Create,
		remove:  prescriptions.Delete,
	}}
}

func (h *PrescriptionHandler) Register(g *gin.RouterGroup) {
	h.register(g)
}
