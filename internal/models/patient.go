package models

import (
	"strings"
	"time"
)

type Patient struct {
	ID                      uint      `gorm:"primaryKey" json:"patient_id"`
	HospitalID              uint      `gorm:"not null;index" json:"hospital_id"`
	PatientName             string    `gorm:"size:255;not null;index" json:"patient_name"`
	PatientGender           string    `gorm:"size:20" json:"patient_gender"`
	PatientDOB              Date      `json:"patient_dob"`
	PatientEmail            string    `gorm:"size:255" json:"patient_email"`
	PatientPhone            string    `gorm:"size:50" json:"patient_phone"`
	PatientIDNumber         string    `gorm:"size:100" json:"patient_id_number"`
	PatientAddress          string    `gorm:"type:text" json:"patient_address"`
	PatientWeight           float64   `json:"patient_weight"`
	PatientAvgPulse         float64   `json:"patient_avg_pulse"`
	PatientBP               string    `gorm:"column:patient_bp;size:20" json:"patient_bp"`
	PatientChronicCondition string    `gorm:"type:text" json:"patient_chronic_condition"`
	PatientAllergy          string    `gorm:"type:text" json:"patient_allergy"`
	PatientBloodType        string    `gorm:"size:5" json:"patient_blood_type"`
	DateAdded               time.Time `gorm:"autoCreateTime" json:"date_added"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) SetHospitalID(id uint) { p.HospitalID = id }

// Gender normalizes the free-text gender field to "male", "female" or "".
func (p *Patient) Gender() string {
	switch strings.ToLower(strings.TrimSpace(p.PatientGender)) {
	case "male", "m":
		return "male"
	case "female", "f":
		return "female"
	default:
		return ""
	}
}
