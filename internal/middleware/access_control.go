package middleware

import (
	"net/http"
	"strconv"

	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TenantAccess checks the hospital_id query parameter against the hospital
// the token was issued for, and exposes it to handlers as KeyTenantID.
// Must run after AuthMiddleware.
func TenantAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimed, exists := c.Get(KeyHospitalID)
		if !exists {
			utils.AbortWithError(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		raw := c.Query("hospital_id")
		if raw == "" {
			utils.AbortWithError(c, http.StatusBadRequest, "hospital_id is required")
			return
		}
		hospitalID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || hospitalID == 0 {
			utils.AbortWithError(c, http.StatusBadRequest, "Invalid hospital ID")
			return
		}

		if uint(hospitalID) != claimed.(uint) {
			utils.AbortWithError(c, http.StatusForbidden, "Access denied: you don't have permission to access this hospital")
			return
		}

		c.Set(KeyTenantID, uint(hospitalID))
		c.Next()
	}
}

// TenantID returns the hospital id verified by TenantAccess.
func TenantID(c *gin.Context) uint {
	return c.GetUint(KeyTenantID)
}
