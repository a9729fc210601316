package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the request id middleware sets.
const RequestIDKey = "request_id"

// SuccessResponse sends a standard success JSON response
func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// ErrorResponse sends the error envelope. When the request carries an id it
// is echoed so a client report can be matched to the server log line.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	body := gin.H{
		"success": false,
		"error":   message,
	}
	if rid := c.GetString(RequestIDKey); rid != "" {
		body["request_id"] = rid
	}
	c.JSON(statusCode, body)
}

func AbortWithError(c *gin.Context, statusCode int, message string) {
	ErrorResponse(c, statusCode, message)
	c.Abort()
}

// MessageResponse answers a mutation that has nothing to return
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}
