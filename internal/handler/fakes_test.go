package handler

import (
	"context"
	"sort"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"
)

// memRows is an in-memory tenant store keyed by row id.
type memRows[T any] struct {
	rows     map[uint]T
	owner    map[uint]uint
	next     uint
	idOf     func(*T) *uint
	notFound error
	// writeErr, when set, is returned by every Create and Update.
	writeErr error
}

func newRows[T any](idOf func(*T) *uint, notFound error) *memRows[T] {
	return &memRows[T]{rows: map[uint]T{}, owner: map[uint]uint{}, idOf: idOf, notFound: notFound}
}

func (m *memRows[T]) put(hospitalID uint, row T) *T {
	m.next++
	*m.idOf(&row) = m.next
	m.rows[m.next] = row
	m.owner[m.next] = hospitalID
	return &row
}

func (m *memRows[T]) List(ctx context.Context, hospitalID uint, s repository.Sort) ([]T, error) {
	return m.All(ctx, hospitalID)
}

func (m *memRows[T]) All(ctx context.Context, hospitalID uint) ([]T, error) {
	var ids []uint
	for id, h := range m.owner {
		if h == hospitalID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []T{}
	for _, id := range ids {
		out = append(out, m.rows[id])
	}
	return out, nil
}

func (m *memRows[T]) Get(ctx context.Context, hospitalID, id uint) (*T, error) {
	row, ok := m.rows[id]
	if !ok || m.owner[id] != hospitalID {
		return nil, m.notFound
	}
	return &row, nil
}

func (m *memRows[T]) Create(ctx context.Context, hospitalID uint, row *T) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	*row = *m.put(hospitalID, *row)
	return nil
}

func (m *memRows[T]) CreateBilled(ctx context.Context, hospitalID uint, row *T, bill *models.Billing) error {
	return m.Create(ctx, hospitalID, row)
}

func (m *memRows[T]) Update(ctx context.Context, hospitalID uint, row *T) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	id := *m.idOf(row)
	if _, err := m.Get(ctx, hospitalID, id); err != nil {
		return err
	}
	m.rows[id] = *row
	return nil
}

func (m *memRows[T]) Delete(ctx context.Context, hospitalID, id uint) error {
	if _, err := m.Get(ctx, hospitalID, id); err != nil {
		return err
	}
	delete(m.rows, id)
	delete(m.owner, id)
	return nil
}

func (m *memRows[T]) Exists(ctx context.Context, hospitalID, id uint) (bool, error) {
	_, err := m.Get(ctx, hospitalID, id)
	return err == nil, nil
}

func (m *memRows[T]) Search(ctx context.Context, hospitalID uint, term string) ([]T, error) {
	return m.All(ctx, hospitalID)
}

func (m *memRows[T]) SearchBy(ctx context.Context, hospitalID uint, column, term string) ([]T, error) {
	if _, err := repository.SearchColumn(column, repository.PatientSearchColumns); err != nil {
		return nil, err
	}
	return m.All(ctx, hospitalID)
}

type drugRows struct {
	*memRows[models.Drug]
}

func (d drugRows) Sell(ctx context.Context, hospitalID, drugID uint, qty int, patientID *uint) (*models.Drug, *models.Billing, error) {
	drug, err := d.Get(ctx, hospitalID, drugID)
	if err != nil {
		return nil, nil, err
	}
	if drug.DrugQuantity < qty {
		return nil, nil, repository.ErrInsufficientStock
	}
	drug.DrugQuantity -= qty
	d.rows[drugID] = *drug
	bill := &models.Billing{
		HospitalID: hospitalID,
		PatientID:  patientID,
		Item:       drug.DrugName,
		Source:     models.BillingSourcePharmacy,
		Total:      float64(qty) * drug.DrugPrice,
	}
	return drug, bill, nil
}

type hospitalStub map[uint]models.Hospital

func (h hospitalStub) GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error) {
	hospital, ok := h[id]
	if !ok {
		return nil, repository.ErrHospitalNotFound
	}
	return &hospital, nil
}
