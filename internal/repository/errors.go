package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidSort       = errors.New("invalid sort")
	ErrInvalidSearch     = errors.New("invalid search column")
	ErrInsufficientStock = errors.New("insufficient drug quantity")
	ErrDuplicate         = errors.New("record already exists")
)

var (
	ErrHospitalNotFound      = notFound("hospital")
	ErrWorkerNotFound        = notFound("worker")
	ErrPatientNotFound       = notFound("patient")
	ErrDrugNotFound          = notFound("drug")
	ErrServiceNotFound       = notFound("service")
	ErrLabTestNotFound       = notFound("lab test")
	ErrLabRequestNotFound    = notFound("lab request")
	ErrLabResultNotFound     = notFound("lab result")
	ErrDiagnosisNotFound     = notFound("diagnosis")
	ErrAppointmentNotFound   = notFound("appointment")
	ErrPrescriptionNotFound  = notFound("prescription")
	ErrRefreshTokenNotFound  = notFound("refresh token")
	ErrActivationKeyNotFound = notFound("activation key")
)

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// writeErr maps a translated unique-key violation to ErrDuplicate.
func writeErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return err
}
