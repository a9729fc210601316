package middleware

import (
	"net/http"
	"slices"
	"strings"

	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares
const (
	KeySubjectID  = "subjectID"
	KeyHospitalID = "hospitalID"
	KeyRole       = "role"
	KeyTenantID   = "tenantID"
)

// AuthMiddleware validates JWT access token from Authorization header
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		// Validate token
		claims, err := utils.ValidateAccessToken(parts[1])
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		// Inject claims into context
		c.Set(KeySubjectID, claims.SubjectID)
		c.Set(KeyHospitalID, claims.HospitalID)
		c.Set(KeyRole, claims.Role)

		c.Next()
	}
}

// RequireRole lets the request through only for the listed account roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(KeyRole)
		if !exists {
			utils.AbortWithError(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		if r, ok := role.(string); !ok || !slices.Contains(roles, r) {
			utils.AbortWithError(c, http.StatusForbidden, "Access denied for role")
			return
		}

		c.Next()
	}
}
