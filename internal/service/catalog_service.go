package service

import (
	"context"
	"fmt"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"
)

type DrugInput struct {
	DrugName     string      `json:"drug_name" binding:"required,max=255"`
	DrugCategory string      `json:"drug_category" binding:"omitempty,max=100"`
	DrugDesc     string      `json:"drug_desc"`
	DrugQuantity int         `json:"drug_quantity" binding:"gte=0"`
	DrugPrice    float64     `json:"drug_price" binding:"gte=0"`
	DrugExpiry   models.Date `json:"drug_expiry"`
}

func (in DrugInput) apply(d *models.Drug) {
	d.DrugName = in.DrugName
	d.DrugCategory = in.DrugCategory
	d.DrugDesc = in.DrugDesc
	d.DrugQuantity = in.DrugQuantity
	d.DrugPrice = in.DrugPrice
	d.DrugExpiry = in.DrugExpiry
}

type drugStore interface {
	recordStore[models.Drug]
	termSearcher[models.Drug]
	Sell(ctx context.Context, hospitalID, drugID uint, qty int, patientID *uint) (*models.Drug, *models.Billing, error)
}

type DrugService struct {
	records[models.Drug]
	store drugStore
}

func NewDrugService(store drugStore) *DrugService {
	return &DrugService{
		records: records[models.Drug]{store: store, sortColumns: repository.DrugSortColumns, entity: "drugs"},
		store:   store,
	}
}

func (s *DrugService) Search(ctx context.Context, hospitalID uint, term string) ([]models.Drug, error) {
	return s.store.Search(ctx, hospitalID, term)
}

func (s *DrugService) Create(ctx context.Context, hospitalID uint, in DrugInput) (*models.Drug, error) {
	drug := &models.Drug{}
	in.apply(drug)
	if err := s.store.Create(ctx, hospitalID, drug); err != nil {
		return nil, mutationFailed("add", "drug", err)
	}
	return drug, nil
}

func (s *DrugService) Update(ctx context.Context, hospitalID, id uint, in DrugInput) (*models.Drug, error) {
	drug, err := s.store.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	in.apply(drug)
	if err := s.store.Update(ctx, hospitalID, drug); err != nil {
		return nil, mutationFailed("edit", "drug", err)
	}
	return drug, nil
}

// DrugSale is the outcome of selling stock over the counter.
type DrugSale struct {
	Drug    *models.Drug    `json:"drug"`
	Billing *models.Billing `json:"billing"`
}

// Sell removes qty units from stock and bills them, optionally to a patient.
func (s *DrugService) Sell(ctx context.Context, hospitalID, drugID uint, qty int, patientID *uint) (*DrugSale, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: drug_qty must be positive", ErrInvalidInput)
	}
	drug, bill, err := s.store.Sell(ctx, hospitalID, drugID, qty, patientID)
	if err != nil {
		return nil, err
	}
	return &DrugSale{Drug: drug, Billing: bill}, nil
}

type ServiceInput struct {
	ServiceName  string  `json:"service_name" binding:"required,max=255"`
	ServiceDesc  string  `json:"service_desc"`
	ServicePrice float64 `json:"service_price" binding:"gte=0"`
}

type serviceStore interface {
	recordStore[models.Service]
	termSearcher[models.Service]
}

// ServiceCatalog manages the hospital's billable services.
type ServiceCatalog struct {
	records[models.Service]
	store serviceStore
}

func NewServiceCatalog(store serviceStore) *ServiceCatalog {
	return &ServiceCatalog{
		records: records[models.Service]{store: store, sortColumns: repository.ServiceSortColumns, entity: "services"},
		store:   store,
	}
}

func (s *ServiceCatalog) Search(ctx context.Context, hospitalID uint, term string) ([]models.Service, error) {
	return s.store.Search(ctx, hospitalID, term)
}

func (s *ServiceCatalog) Create(ctx context.Context, hospitalID uint, in ServiceInput) (*models.Service, error) {
	svc := &models.Service{ServiceName: in.ServiceName, ServiceDesc: in.ServiceDesc, ServicePrice: in.ServicePrice}
	if err := s.store.Create(ctx, hospitalID, svc); err != nil {
		return nil, mutationFailed("add", "service", err)
	}
	return svc, nil
}

func (s *ServiceCatalog) Update(ctx context.Context, hospitalID, id uint, in ServiceInput) (*models.Service, error) {
	svc, err := s.store.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	svc.ServiceName, svc.ServiceDesc, svc.ServicePrice = in.ServiceName, in.ServiceDesc, in.ServicePrice
	if err := s.store.Update(ctx, hospitalID, svc); err != nil {
		return nil, mutationFailed("edit", "service", err)
	}
	return svc, nil
}

type LabTestInput struct {
	TestName  string  `json:"test_name" binding:"required,max=255"`
	TestDesc  string  `json:"test_desc"`
	TestPrice float64 `json:"test_price" binding:"gte=0"`
}

type labTestStore interface {
	recordStore[models.LabTest]
	termSearcher[models.LabTest]
}

type LabTestService struct {
	records[models.LabTest]
	store labTestStore
}

func NewLabTestService(store labTestStore) *LabTestService {
	return &LabTestService{
		records: records[models.LabTest]{store: store, sortColumns: repository.LabTestSortColumns, entity: "lab tests"},
		store:   store,
	}
}

func (s *LabTestService) Search(ctx context.Context, hospitalID uint, term string) ([]models.LabTest, error) {
	return s.store.Search(ctx, hospitalID, term)
}

func (s *LabTestService) Create(ctx context.Context, hospitalID uint, in LabTestInput) (*models.LabTest, error) {
	test := &models.LabTest{TestName: in.TestName, TestDesc: in.TestDesc, TestPrice: in.TestPrice}
	if err := s.store.Create(ctx, hospitalID, test); err != nil {
		return nil, mutationFailed("add", "lab test", err)
	}
	return test, nil
}

func (s *LabTestService) Update(ctx context.Context, hospitalID, id uint, in LabTestInput) (*models.LabTest, error) {
	test, err := s.store.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	test.TestName, test.TestDesc, test.TestPrice = in.TestName, in.TestDesc, in.TestPrice
	if err := s.store.Update(ctx, hospitalID, test); err != nil {
		return nil, mutationFailed("edit", "lab test", err)
	}
	return test, nil
}
