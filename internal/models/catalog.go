package models

import "time"

// Drug is a pharmacy stock item.
type Drug struct {
	ID           uint      `gorm:"primaryKey" json:"drug_id"`
	HospitalID   uint      `gorm:"not null;index" json:"hospital_id"`
	DrugName     string    `gorm:"size:255;not null" json:"drug_name"`
	DrugCategory string    `gorm:"size:100" json:"drug_category"`
	DrugDesc     string    `gorm:"type:text" json:"drug_desc"`
	DrugQuantity int       `gorm:"not null;default:0" json:"drug_quantity"`
	DrugPrice    float64   `gorm:"not null;default:0" json:"drug_price"`
	DrugExpiry   Date      `json:"drug_expiry"`
	DateAdded    time.Time `gorm:"autoCreateTime" json:"date_added"`
}

func (Drug) TableName() string {
	return "drugs"
}

func (d *Drug) SetHospitalID(id uint) { d.HospitalID = id }

// Service is a billable consultation or procedure offered by the hospital.
type Service struct {
	ID           uint      `gorm:"primaryKey" json:"service_id"`
	HospitalID   uint      `gorm:"not null;index" json:"hospital_id"`
	ServiceName  string    `gorm:"size:255;not null" json:"service_name"`
	ServiceDesc  string    `gorm:"type:text" json:"service_desc"`
	ServicePrice float64   `gorm:"not null;default:0" json:"service_price"`
	DateAdded    time.Time `gorm:"autoCreateTime" json:"date_added"`
}

func (Service) TableName() string {
	return "services"
}

func (s *Service) SetHospitalID(id uint) { s.HospitalID = id }

type LabTest struct {
	ID         uint      `gorm:"primaryKey" json:"test_id"`
	HospitalID uint      `gorm:"not null;index" json:"hospital_id"`
	TestName   string    `gorm:"size:255;not null" json:"test_name"`
	TestDesc   string    `gorm:"type:text" json:"test_desc"`
	TestPrice  float64   `gorm:"not null;default:0" json:"test_price"`
	DateAdded  time.Time `gorm:"autoCreateTime" json:"date_added"`
}

func (LabTest) TableName() string {
	return "lab_tests"
}

func (l *LabTest) SetHospitalID(id uint) { l.HospitalID = id }
