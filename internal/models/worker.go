package models

import "time"

type Worker struct {
	ID           uint      `gorm:"primaryKey" json:"worker_id"`
	HospitalID   uint      `gorm:"not null;index;uniqueIndex:idx_worker_email" json:"hospital_id"`
	WorkerName   string    `gorm:"size:255;not null" json:"worker_name"`
	WorkerEmail  string    `gorm:"size:255;not null;uniqueIndex:idx_worker_email" json:"worker_email"`
	WorkerPhone  string    `gorm:"size:50" json:"worker_phone"`
	WorkerRole   string    `gorm:"size:100" json:"worker_role"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	DateAdded    time.Time `gorm:"autoCreateTime" json:"date_added"`
}

func (Worker) TableName() string {
	return "workers"
}

func (w *Worker) SetHospitalID(id uint) { w.HospitalID = id }
