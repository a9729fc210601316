package repository

import (
	"context"
	"errors"

	"hospital-management-api/internal/database"
	"hospital-management-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tenantModel is satisfied by pointers to every hospital-owned model.
type tenantModel[T any] interface {
	*T
	SetHospitalID(uint)
}

// TenantStore holds the CRUD queries shared by every hospital-owned table.
// Each method takes the hospital id explicitly and scopes the query with
// database.ForHospital, so no read or write can cross tenants.
type TenantStore[T any, PT tenantModel[T]] struct {
	db       *gorm.DB
	notFound error
	preloads []string
}

func newTenantStore[T any, PT tenantModel[T]](db *gorm.DB, notFound error, preloads ...string) TenantStore[T, PT] {
	return TenantStore[T, PT]{db: db, notFound: notFound, preloads: preloads}
}

func (s TenantStore[T, PT]) scoped(ctx context.Context, hospitalID uint) *gorm.DB {
	return s.db.WithContext(ctx).Model(new(T)).Scopes(database.ForHospital(hospitalID))
}

func (s TenantStore[T, PT]) loaded(ctx context.Context, hospitalID uint) *gorm.DB {
	q := s.scoped(ctx, hospitalID)
	for _, p := range s.preloads {
		q = q.Preload(p)
	}
	return q
}

// List returns every row of the hospital in the requested order.
func (s TenantStore[T, PT]) List(ctx context.Context, hospitalID uint, sort Sort) ([]T, error) {
	return s.find(ctx, hospitalID, sort)
}

// All returns every row of the hospital in insertion order.
func (s TenantStore[T, PT]) All(ctx context.Context, hospitalID uint) ([]T, error) {
	var rows []T
	err := s.loaded(ctx, hospitalID).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s TenantStore[T, PT]) find(ctx context.Context, hospitalID uint, sort Sort, conds ...clause.Expression) ([]T, error) {
	q := s.loaded(ctx, hospitalID)
	if len(conds) > 0 {
		q = q.Where(anyOf(conds...))
	}
	var rows []T
	err := q.Order(sort.clause()).Find(&rows).Error
	return rows, err
}

// Get returns one row of the hospital by primary key.
func (s TenantStore[T, PT]) Get(ctx context.Context, hospitalID, id uint) (*T, error) {
	var row T
	err := s.loaded(ctx, hospitalID).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound
		}
		return nil, err
	}
	return &row, nil
}

// Create inserts a row owned by the hospital.
func (s TenantStore[T, PT]) Create(ctx context.Context, hospitalID uint, row PT) error {
	row.SetHospitalID(hospitalID)
	return writeErr(s.db.WithContext(ctx).Create(row).Error)
}

// CreateBilled inserts a row and the billing entry it raises in one transaction.
// A nil bill inserts the row alone.
func (s TenantStore[T, PT]) CreateBilled(ctx context.Context, hospitalID uint, row PT, bill *models.Billing) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row.SetHospitalID(hospitalID)
		if err := tx.Create(row).Error; err != nil {
			return writeErr(err)
		}
		if bill == nil {
			return nil
		}
		bill.SetHospitalID(hospitalID)
		return tx.Create(bill).Error
	})
}

// Update writes every column of an existing row except its owner and creation date.
func (s TenantStore[T, PT]) Update(ctx context.Context, hospitalID uint, row PT) error {
	row.SetHospitalID(hospitalID)
	err := s.db.WithContext(ctx).
		Model(row).
		Scopes(database.ForHospital(hospitalID)).
		Select("*").
		Omit("id", "hospital_id", "date_added", clause.Associations).
		Updates(row).Error
	return writeErr(err)
}

// Delete removes one row of the hospital.
func (s TenantStore[T, PT]) Delete(ctx context.Context, hospitalID, id uint) error {
	result := s.db.WithContext(ctx).
		Scopes(database.ForHospital(hospitalID)).
		Where("id = ?", id).
		Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.notFound
	}
	return nil
}

// Exists reports whether the hospital owns a row with the given id.
func (s TenantStore[T, PT]) Exists(ctx context.Context, hospitalID, id uint) (bool, error) {
	var count int64
	err := s.scoped(ctx, hospitalID).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func anyOf(conds ...clause.Expression) clause.Expression {
	// A one-element clause.Or is joined to the preceding condition with OR
	// by gorm, which would drop the tenant scope.
	if len(conds) == 1 {
		return conds[0]
	}
	return clause.Or(conds...)
}

func columnLike(column, term string) clause.Expression {
	return clause.Expr{
		SQL:  "LOWER(?) LIKE ?",
		Vars: []any{clause.Column{Name: column}, likePattern(term)},
	}
}

// patientNameLike matches rows whose patient_id points at a patient of the
// same hospital whose name contains term.
func patientNameLike(db *gorm.DB, hospitalID uint, term string) clause.Expression {
	sub := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Patient{}).
		Select("id").
		Where("hospital_id = ?", hospitalID).
		Where(columnLike("patient_name", term))
	return clause.Expr{SQL: "patient_id IN (?)", Vars: []any{sub}}
}
