package models

import "time"

// Hospital is the tenant. Every other clinical record belongs to exactly one hospital.
type Hospital struct {
	ID              uint      `gorm:"primaryKey" json:"hospital_id"`
	HospitalName    string    `gorm:"size:255;not null" json:"hospital_name"`
	HospitalEmail   string    `gorm:"size:255;not null;uniqueIndex" json:"hospital_email"`
	HospitalContact string    `gorm:"size:50" json:"hospital_contact"`
	PasswordHash    string    `gorm:"size:255;not null" json:"-"`
	DiagnosisFee    float64   `gorm:"not null;default:0" json:"diagnosis_fee"`
	ExpiryDate      time.Time `gorm:"not null" json:"expiry_date"`
	DateAdded       time.Time `gorm:"autoCreateTime" json:"date_added"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospitals"
}

// Active reports whether the hospital's plan has not yet run out.
func (h *Hospital) Active(now time.Time) bool {
	return now.Before(h.ExpiryDate)
}
