package models

import "time"

// Billing sources
const (
	BillingSourcePharmacy   = "pharmacy"
	BillingSourceService    = "service"
	BillingSourceLaboratory = "laboratory"
	BillingSourceDiagnosis  = "diagnosis"
)

// Billing is a single charge raised against a patient (or a walk-in for pharmacy sales).
type Billing struct {
	ID         uint      `gorm:"primaryKey" json:"billing_id"`
	HospitalID uint      `gorm:"not null;index" json:"hospital_id"`
	PatientID  *uint     `gorm:"index" json:"patient_id"`
	Item       string    `gorm:"size:255;not null" json:"item"`
	Source     string    `gorm:"size:50;not null" json:"source"`
	Total      float64   `gorm:"not null" json:"total"`
	CreatedAt  time.Time `json:"created_at"`

	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:SET NULL" json:"patient,omitempty"`
}

func (Billing) TableName() string {
	return "billings"
}

func (b *Billing) SetHospitalID(id uint) { b.HospitalID = id }
