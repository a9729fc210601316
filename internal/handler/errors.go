package handler

import (
	"errors"
	"net/http"

	"hospital-management-api/internal/report"
	"hospital-management-api/internal/repository"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

var badRequest = []error{
	report.ErrInvalidFilter,
	report.ErrInvalidRange,
	report.ErrInvalidFormat,
	repository.ErrInvalidSort,
	repository.ErrInvalidSearch,
	repository.ErrInsufficientStock,
	repository.ErrDuplicate,
	service.ErrInvalidInput,
	service.ErrEmailTaken,
	service.ErrInvalidActivationKey,
	service.ErrOperationFailed,
}

var unauthorized = []error{
	service.ErrInvalidCredentials,
	service.ErrInvalidRefreshToken,
	service.ErrRefreshTokenExpired,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusOf maps a service error to its HTTP status. Anything unrecognised is a 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, report.ErrEmptyReport):
		return http.StatusNotFound
	case errors.Is(err, report.ErrRangeTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case isAny(err, unauthorized):
		return http.StatusUnauthorized
	case isAny(err, badRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err in the error envelope. Client errors echo the
// message. Server errors and refused mutations answer with fallback and
// attach err to the request log, since their cause is a database error.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusOf(err)
	if status == http.StatusInternalServerError || errors.Is(err, service.ErrOperationFailed) {
		_ = c.Error(err)
		utils.ErrorResponse(c, status, fallback)
		return
	}
	utils.ErrorResponse(c, status, err.Error())
}
