package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"

	"github.com/rs/zerolog"
)

// recordStore is the tenant-scoped CRUD surface every clinical repository offers.
type recordStore[T any] interface {
	List(ctx context.Context, hospitalID uint, sort repository.Sort) ([]T, error)
	All(ctx context.Context, hospitalID uint) ([]T, error)
	Get(ctx context.Context, hospitalID, id uint) (*T, error)
	Create(ctx context.Context, hospitalID uint, row *T) error
	Update(ctx context.Context, hospitalID uint, row *T) error
	Delete(ctx context.Context, hospitalID, id uint) error
}

type billedStore[T any] interface {
	recordStore[T]
	CreateBilled(ctx context.Context, hospitalID uint, row *T, bill *models.Billing) error
}

type termSearcher[T any] interface {
	Search(ctx context.Context, hospitalID uint, term string) ([]T, error)
}

type columnSearcher[T any] interface {
	SearchBy(ctx context.Context, hospitalID uint, column, term string) ([]T, error)
}

type existenceChecker interface {
	Exists(ctx context.Context, hospitalID, id uint) (bool, error)
}

type getter[T any] interface {
	Get(ctx context.Context, hospitalID, id uint) (*T, error)
}

type hospitalReader interface {
	GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error)
}

type auditWriter interface {
	CreateAuditLog(ctx context.Context, hospitalID *uint, actor, action, details string) error
}

// records implements the list/get/delete operations that behave the same
// for every tenant-owned entity.
type records[T any] struct {
	store       recordStore[T]
	sortColumns []string
	entity      string
}

func (r records[T]) List(ctx context.Context, hospitalID uint, sortTerm, sortDir string) ([]T, error) {
	sort, err := repository.ParseSort(sortTerm, sortDir, r.sortColumns)
	if err != nil {
		return nil, err
	}
	rows, err := r.store.List(ctx, hospitalID, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", r.entity, err)
	}
	return rows, nil
}

func (r records[T]) Get(ctx context.Context, hospitalID, id uint) (*T, error) {
	return r.store.Get(ctx, hospitalID, id)
}

func (r records[T]) Delete(ctx context.Context, hospitalID, id uint) error {
	if err := r.store.Delete(ctx, hospitalID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete %s: %w", r.entity, err)
	}
	return nil
}

// requireOwned fails with notFound unless the hospital owns the referenced row.
func requireOwned(ctx context.Context, store existenceChecker, hospitalID, id uint, notFound error) error {
	ok, err := store.Exists(ctx, hospitalID, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound
	}
	return nil
}

// auditor records security-relevant actions; a failed write is logged, not returned.
type auditor struct {
	repo auditWriter
	log  zerolog.Logger
}

func (a auditor) record(ctx context.Context, hospitalID uint, actor, action, details string) {
	if a.repo == nil {
		return
	}
	if err := a.repo.CreateAuditLog(ctx, &hospitalID, actor, action, details); err != nil {
		a.log.Warn().Err(err).Str("action", action).Uint("hospital_id", hospitalID).Msg("failed to write audit log")
	}
}

// platform records an action taken by the platform operator rather than a hospital.
func (a auditor) platform(ctx context.Context, action, details string) {
	if a.repo == nil {
		return
	}
	if err := a.repo.CreateAuditLog(ctx, nil, "platform", action, details); err != nil {
		a.log.Warn().Err(err).Str("action", action).Msg("failed to write audit log")
	}
}

func today(now func() time.Time) models.Date {
	return models.NewDate(now().UTC())
}
