package handler

import (
	"net/http"

	"hospital-management-api/internal/middleware"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	hospitalService *service.HospitalService
	keyService      *service.ActivationKeyService
}

func NewHospitalHandler(hospitalService *service.HospitalService, keyService *service.ActivationKeyService) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
		keyService:      keyService,
	}
}

// GetAllHospitals lists every hospital for the platform operator
func (h *HospitalHandler) GetAllHospitals(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}

	hospitals, err := h.hospitalService.GetAllHospitals(c.Request.Context(), q.SortTerm, q.SortDir)
	if err != nil {
		respondError(c, err, "Failed to fetch hospitals")
		return
	}
	respondList(c, hospitals, "hospitals")
}

func (h *HospitalHandler) SearchHospitals(c *gin.Context) {
	term, ok := searchTerm(c)
	if !ok {
		return
	}

	hospitals, err := h.hospitalService.SearchHospitals(c.Request.Context(), c.Query("search_by"), term)
	if err != nil {
		respondError(c, err, "Failed to search hospitals")
		return
	}
	respondList(c, hospitals, "hospitals")
}

// GetHospital returns the hospital the caller signed in to
func (h *HospitalHandler) GetHospital(c *gin.Context) {
	hospital, err := h.hospitalService.GetHospitalByID(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch hospital")
		return
	}
	utils.SuccessResponse(c, hospital)
}

// CreateHospital registers a new hospital on a trial plan
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	var in service.HospitalInput
	if !bindJSON(c, &in) {
		return
	}

	hospital, err := h.hospitalService.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to add hospital")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Hospital created successfully",
		"hospital": hospital,
	})
}

func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	var in service.HospitalEdit
	if !bindJSON(c, &in) {
		return
	}

	hospital, err := h.hospitalService.UpdateHospital(c.Request.Context(), middleware.TenantID(c), in)
	if err != nil {
		respondError(c, err, "Failed to edit hospital")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Hospital updated successfully",
		"hospital": hospital,
	})
}

func (h *HospitalHandler) ChangePassword(c *gin.Context) {
	var in service.PasswordChange
	if !bindJSON(c, &in) {
		return
	}

	if _, err := h.hospitalService.ChangePassword(c.Request.Context(), middleware.TenantID(c), in); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	utils.MessageResponse(c, "Password changed successfully")
}

// RenewActivation redeems the activation_key query parameter
func (h *HospitalHandler) RenewActivation(c *gin.Context) {
	key := c.Query("activation_key")
	if key == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "activation_key is required")
		return
	}

	hospital, err := h.hospitalService.RenewActivation(c.Request.Context(), middleware.TenantID(c), key)
	if err != nil {
		respondError(c, err, "Failed to renew activation")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     "Activation renewed successfully",
		"expiry_date": hospital.ExpiryDate,
	})
}

// DeleteHospital removes a hospital and everything it owns (platform operator only)
func (h *HospitalHandler) DeleteHospital(c *gin.Context) {
	id, ok := queryID(c, "hospital_id")
	if !ok {
		return
	}

	if err := h.hospitalService.DeleteHospital(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete hospital")
		return
	}
	utils.MessageResponse(c, "Hospital deleted successfully")
}

// IssueActivationKey returns a new plain-text key once (platform operator only)
func (h *HospitalHandler) IssueActivationKey(c *gin.Context) {
	var in service.ActivationKeyInput
	if !bindJSON(c, &in) {
		return
	}

	key, err := h.keyService.Issue(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to issue activation key")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":        "Activation key created successfully. Save this key securely, it will not be shown again.",
		"activation_key": key,
	})
}
