package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"
)

// memStore is an in-memory tenant store keyed by row id.
type memStore[T any] struct {
	rows     map[uint]T
	owner    map[uint]uint
	nextID   uint
	idOf     func(*T) *uint
	notFound error
	bills    []models.Billing
	lastSort repository.Sort
	allCalls int
	match    func(T, string) bool
	writeErr error
}

func newMemStore[T any](idOf func(*T) *uint, notFound error) *memStore[T] {
	return &memStore[T]{rows: map[uint]T{}, owner: map[uint]uint{}, idOf: idOf, notFound: notFound}
}

func (m *memStore[T]) put(hospitalID uint, row T) *T {
	m.nextID++
	*m.idOf(&row) = m.nextID
	m.rows[m.nextID] = row
	m.owner[m.nextID] = hospitalID
	return &row
}

func (m *memStore[T]) ids(hospitalID uint) []uint {
	var ids []uint
	for id, h := range m.owner {
		if h == hospitalID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *memStore[T]) List(ctx context.Context, hospitalID uint, s repository.Sort) ([]T, error) {
	m.lastSort = s
	return m.All(ctx, hospitalID)
}

func (m *memStore[T]) All(ctx context.Context, hospitalID uint) ([]T, error) {
	m.allCalls++
	out := []T{}
	for _, id := range m.ids(hospitalID) {
		out = append(out, m.rows[id])
	}
	return out, nil
}

func (m *memStore[T]) Get(ctx context.Context, hospitalID, id uint) (*T, error) {
	row, ok := m.rows[id]
	if !ok || m.owner[id] != hospitalID {
		return nil, m.notFound
	}
	return &row, nil
}

func (m *memStore[T]) Create(ctx context.Context, hospitalID uint, row *T) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	created := m.put(hospitalID, *row)
	*row = *created
	return nil
}

func (m *memStore[T]) CreateBilled(ctx context.Context, hospitalID uint, row *T, bill *models.Billing) error {
	if err := m.Create(ctx, hospitalID, row); err != nil {
		return err
	}
	if bill != nil {
		bill.HospitalID = hospitalID
		m.bills = append(m.bills, *bill)
	}
	return nil
}

func (m *memStore[T]) Update(ctx context.Context, hospitalID uint, row *T) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	id := *m.idOf(row)
	if _, ok := m.rows[id]; !ok || m.owner[id] != hospitalID {
		return m.notFound
	}
	m.rows[id] = *row
	return nil
}

func (m *memStore[T]) Delete(ctx context.Context, hospitalID, id uint) error {
	if _, ok := m.rows[id]; !ok || m.owner[id] != hospitalID {
		return m.notFound
	}
	delete(m.rows, id)
	delete(m.owner, id)
	return nil
}

func (m *memStore[T]) Exists(ctx context.Context, hospitalID, id uint) (bool, error) {
	_, ok := m.rows[id]
	return ok && m.owner[id] == hospitalID, nil
}

func (m *memStore[T]) Search(ctx context.Context, hospitalID uint, term string) ([]T, error) {
	out := []T{}
	for _, id := range m.ids(hospitalID) {
		if m.match == nil || m.match(m.rows[id], term) {
			out = append(out, m.rows[id])
		}
	}
	return out, nil
}

func newPatients() *memStore[models.Patient] {
	return newMemStore(func(p *models.Patient) *uint { return &p.ID }, repository.ErrPatientNotFound)
}

func newDrugs() *memStore[models.Drug] {
	return newMemStore(func(d *models.Drug) *uint { return &d.ID }, repository.ErrDrugNotFound)
}

func newServices() *memStore[models.Service] {
	return newMemStore(func(s *models.Service) *uint { return &s.ID }, repository.ErrServiceNotFound)
}

func newLabTests() *memStore[models.LabTest] {
	return newMemStore(func(l *models.LabTest) *uint { return &l.ID }, repository.ErrLabTestNotFound)
}

// patientStoreFake adds column search to the patient store.
type patientStoreFake struct {
	*memStore[models.Patient]
}

func (p patientStoreFake) SearchBy(ctx context.Context, hospitalID uint, column, term string) ([]models.Patient, error) {
	if _, err := repository.SearchColumn(column, repository.PatientSearchColumns); err != nil {
		return nil, err
	}
	return p.Search(ctx, hospitalID, term)
}

type workerStoreFake struct {
	*memStore[models.Worker]
}

func newWorkers() workerStoreFake {
	return workerStoreFake{newMemStore(func(w *models.Worker) *uint { return &w.ID }, repository.ErrWorkerNotFound)}
}

func (w workerStoreFake) SearchBy(ctx context.Context, hospitalID uint, column, term string) ([]models.Worker, error) {
	return w.Search(ctx, hospitalID, term)
}

func (w workerStoreFake) FindByEmail(ctx context.Context, hospitalID uint, email string) (*models.Worker, error) {
	for _, id := range w.ids(hospitalID) {
		if strings.EqualFold(w.rows[id].WorkerEmail, email) {
			row := w.rows[id]
			return &row, nil
		}
	}
	return nil, repository.ErrWorkerNotFound
}

func (w workerStoreFake) UpdatePassword(ctx context.Context, hospitalID, workerID uint, hash string) error {
	row, err := w.Get(ctx, hospitalID, workerID)
	if err != nil {
		return err
	}
	row.PasswordHash = hash
	w.rows[workerID] = *row
	return nil
}

type revokeCall struct {
	role      string
	subjectID uint
}

type sessionsFake struct {
	revoked []revokeCall
}

func (s *sessionsFake) RevokeAllForSubject(ctx context.Context, role string, subjectID uint) error {
	s.revoked = append(s.revoked, revokeCall{role, subjectID})
	return nil
}

type auditFake struct {
	actions []string
}

func (a *auditFake) CreateAuditLog(ctx context.Context, hospitalID *uint, actor, action, details string) error {
	a.actions = append(a.actions, action)
	return nil
}

// hospitalsFake implements every hospital and activation key query the services use.
type hospitalsFake struct {
	byID     map[uint]*models.Hospital
	nextID   uint
	keys     map[string]*models.ActivationKey
	redeemed map[uint]uint
	writeErr error
}

func newHospitals(hospitals ...models.Hospital) *hospitalsFake {
	f := &hospitalsFake{byID: map[uint]*models.Hospital{}, keys: map[string]*models.ActivationKey{}, redeemed: map[uint]uint{}}
	for _, h := range hospitals {
		h := h
		f.byID[h.ID] = &h
		if h.ID > f.nextID {
			f.nextID = h.ID
		}
	}
	return f
}

func (f *hospitalsFake) GetAllHospitals(ctx context.Context, s repository.Sort) ([]models.Hospital, error) {
	out := []models.Hospital{}
	for _, h := range f.byID {
		out = append(out, *h)
	}
	return out, nil
}

func (f *hospitalsFake) SearchHospitals(ctx context.Context, column, term string) ([]models.Hospital, error) {
	if _, err := repository.SearchColumn(column, repository.HospitalSearchColumns); err != nil {
		return nil, err
	}
	return f.GetAllHospitals(ctx, repository.Sort{})
}

func (f *hospitalsFake) GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error) {
	h, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrHospitalNotFound
	}
	copied := *h
	return &copied, nil
}

func (f *hospitalsFake) GetHospitalByEmail(ctx context.Context, email string) (*models.Hospital, error) {
	for _, h := range f.byID {
		if h.HospitalEmail == email {
			copied := *h
			return &copied, nil
		}
	}
	return nil, repository.ErrHospitalNotFound
}

func (f *hospitalsFake) CreateHospital(ctx context.Context, hospital *models.Hospital) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.nextID++
	hospital.ID = f.nextID
	copied := *hospital
	f.byID[hospital.ID] = &copied
	return nil
}

func (f *hospitalsFake) UpdateHospital(ctx context.Context, hospital *models.Hospital) error {
	copied := *hospital
	f.byID[hospital.ID] = &copied
	return nil
}

func (f *hospitalsFake) UpdatePassword(ctx context.Context, id uint, hash string) error {
	f.byID[id].PasswordHash = hash
	return nil
}

func (f *hospitalsFake) RedeemActivationKey(ctx context.Context, hospitalID, keyID uint, expiry, now time.Time) error {
	if _, used := f.redeemed[keyID]; used {
		return repository.ErrActivationKeyNotFound
	}
	f.redeemed[keyID] = hospitalID
	f.byID[hospitalID].ExpiryDate = expiry
	return nil
}

func (f *hospitalsFake) DeleteHospital(ctx context.Context, id uint) error {
	delete(f.byID, id)
	return nil
}

func (f *hospitalsFake) GetUnusedKeyByHash(ctx context.Context, keyHash string, now time.Time) (*models.ActivationKey, error) {
	key, ok := f.keys[keyHash]
	if !ok {
		return nil, repository.ErrActivationKeyNotFound
	}
	if _, used := f.redeemed[key.ID]; used {
		return nil, repository.ErrActivationKeyNotFound
	}
	return key, nil
}

func (f *hospitalsFake) CreateKey(ctx context.Context, key *models.ActivationKey) error {
	key.ID = uint(len(f.keys) + 1)
	f.keys[key.KeyHash] = key
	return nil
}
