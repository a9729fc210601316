package models

import "time"

type Diagnosis struct {
	ID                 uint      `gorm:"primaryKey" json:"diagnosis_id"`
	HospitalID         uint      `gorm:"not null;index" json:"hospital_id"`
	PatientID          uint      `gorm:"not null;index" json:"patient_id"`
	Symptoms           string    `gorm:"type:text" json:"symptoms"`
	Findings           string    `gorm:"type:text" json:"findings"`
	SuggestedDiagnosis string    `gorm:"type:text" json:"suggested_diagnosis"`
	DateAdded          time.Time `gorm:"autoCreateTime" json:"date_added"`

	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
}

func (Diagnosis) TableName() string {
	return "diagnoses"
}

func (d *Diagnosis) SetHospitalID(id uint) { d.HospitalID = id }

type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"appointment_id"`
	HospitalID      uint      `gorm:"not null;index" json:"hospital_id"`
	PatientID       uint      `gorm:"not null;index" json:"patient_id"`
	ConsultantID    uint      `gorm:"not null;index" json:"consultant_id"`
	ServiceID       uint      `gorm:"not null;index" json:"service_id"`
	AppointmentDesc string    `gorm:"type:text" json:"appointment_desc"`
	DateScheduled   Date      `gorm:"not null" json:"date_scheduled"`
	TimeScheduled   string    `gorm:"size:8;not null" json:"time_scheduled"`
	DateAdded       time.Time `gorm:"autoCreateTime" json:"date_added"`

	Patient    *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Consultant *Worker  `gorm:"foreignKey:ConsultantID;constraint:OnDelete:CASCADE" json:"consultant,omitempty"`
	Service    *Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"service,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) SetHospitalID(id uint) { a.HospitalID = id }

type LabRequest struct {
	ID         uint      `gorm:"primaryKey" json:"request_id"`
	HospitalID uint      `gorm:"not null;index" json:"hospital_id"`
	PatientID  uint      `gorm:"not null;index" json:"patient_id"`
	TestID     uint      `gorm:"not null;index" json:"test_id"`
	DateAdded  time.Time `gorm:"autoCreateTime" json:"date_added"`

	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Test    *LabTest `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"test,omitempty"`
}

func (LabRequest) TableName() string {
	return "lab_requests"
}

func (l *LabRequest) SetHospitalID(id uint) { l.HospitalID = id }

type LabResult struct {
	ID           uint      `gorm:"primaryKey" json:"result_id"`
	HospitalID   uint      `gorm:"not null;index" json:"hospital_id"`
	PatientID    uint      `gorm:"not null;index" json:"patient_id"`
	Observations string    `gorm:"type:text" json:"observations"`
	Conclusion   string    `gorm:"type:text" json:"conclusion"`
	DateAdded    time.Time `gorm:"autoCreateTime" json:"date_added"`

	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
}

func (LabResult) TableName() string {
	return "lab_results"
}

func (l *LabResult) SetHospitalID(id uint) { l.HospitalID = id }
