package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PlatformKey guards platform-operator routes with the X-Admin-Key header.
// An empty configured key disables those routes.
func PlatformKey(adminKey string) gin.HandlerFunc {
	expected := []byte(adminKey)
	return func(c *gin.Context) {
		if len(expected) == 0 {
			utils.AbortWithError(c, http.StatusForbidden, "Platform administration is disabled")
			return
		}

		// Extract API key from X-Admin-Key header
		key := strings.TrimSpace(c.GetHeader("X-Admin-Key"))
		if key == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, "Admin key is required in X-Admin-Key header")
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid admin key")
			return
		}

		c.Next()
	}
}
