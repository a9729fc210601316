package handler

import (
	"hospital-management-api/internal/middleware"
	"hospital-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billings *service.BillingService
}

func NewBillingHandler(billings *service.BillingService) *BillingHandler {
	return &BillingHandler{billings: billings}
}

func (h *BillingHandler) Register(g *gin.RouterGroup) {
	g.GET("/show-all", h.ShowAll)
	g.GET("/show-patient", h.ShowPatient)
	g.GET("/show-patient-today", h.ShowPatientToday)
	g.GET("/search", h.Search)
}

func (h *BillingHandler) ShowAll(c *gin.Context) {
	rows, err := h.billings.ShowAll(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch billings")
		return
	}
	respondList(c, rows, "billings")
}

func (h *BillingHandler) ShowPatient(c *gin.Context) {
	patientID, ok := queryID(c, "patient_id")
	if !ok {
		return
	}

	rows, err := h.billings.ShowPatient(c.Request.Context(), middleware.TenantID(c), patientID)
	if err != nil {
		respondError(c, err, "Failed to fetch billings")
		return
	}
	respondList(c, rows, "billings")
}

// ShowPatientToday lists what the patient was charged on the current UTC day
func (h *BillingHandler) ShowPatientToday(c *gin.Context) {
	patientID, ok := queryID(c, "patient_id")
	if !ok {
		return
	}

	rows, err := h.billings.ShowPatientToday(c.Request.Context(), middleware.TenantID(c), patientID)
	if err != nil {
		respondError(c, err, "Failed to fetch billings")
		return
	}
	respondList(c, rows, "billings")
}

// Search matches billings by patient name
func (h *BillingHandler) Search(c *gin.Context) {
	term, ok := searchTerm(c)
	if !ok {
		return
	}

	rows, err := h.billings.Search(c.Request.Context(), middleware.TenantID(c), term)
	if err != nil {
		respondError(c, err, "Failed to search billings")
		return
	}
	respondList(c, rows, "billings")
}
