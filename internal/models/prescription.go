package models

import "time"

// Prescription is a dated set of drug items issued to one patient.
type Prescription struct {
	ID         uint      `gorm:"primaryKey" json:"prescription_id"`
	HospitalID uint      `gorm:"not null;index" json:"hospital_id"`
	PatientID  uint      `gorm:"not null;index" json:"patient_id"`
	DateAdded  time.Time `gorm:"autoCreateTime" json:"date_added"`

	Patient *Patient           `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Items   []PrescriptionItem `gorm:"foreignKey:PrescriptionID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

func (p *Prescription) SetHospitalID(id uint) { p.HospitalID = id }

type PrescriptionItem struct {
	ID             uint   `gorm:"primaryKey" json:"item_id"`
	PrescriptionID uint   `gorm:"not null;index" json:"prescription_id"`
	DrugID         uint   `gorm:"not null;index" json:"drug_id"`
	DrugQty        int    `gorm:"not null" json:"drug_qty"`
	Notes          string `gorm:"type:text" json:"notes"`

	Drug *Drug `gorm:"foreignKey:DrugID;constraint:OnDelete:CASCADE" json:"drug,omitempty"`
}

func (PrescriptionItem) TableName() string {
	return "prescription_items"
}
