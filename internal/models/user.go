package models

import "time"

// Account roles carried in access tokens
const (
	RoleHospital = "hospital"
	RoleWorker   = "worker"
)

// RefreshToken represents the refresh_tokens table.
// A token belongs either to a hospital account or to one of its workers.
type RefreshToken struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HospitalID uint      `gorm:"not null;index" json:"hospital_id"`
	SubjectID  uint      `gorm:"not null;index" json:"subject_id"`
	Role       string    `gorm:"size:20;not null" json:"role"`
	TokenHash  string    `gorm:"not null;size:255;index" json:"-"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	Revoked    bool      `gorm:"default:false" json:"revoked"`
}

// TableName specifies the table name for RefreshToken model
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
