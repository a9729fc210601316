package models

import "time"

// AuditLog represents the audit_logs table
// Used for account, password and plan changes of a hospital
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HospitalID *uint     `gorm:"index" json:"hospital_id"`
	Actor      string    `gorm:"size:100" json:"actor"`
	Action     string    `gorm:"size:100;not null" json:"action"`
	Details    string    `gorm:"type:text" json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
