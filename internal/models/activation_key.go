package models

import "time"

// ActivationKey represents the activation_keys table
// A platform operator issues one to extend a hospital's plan; it can be redeemed once.
type ActivationKey struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	KeyHash      string     `gorm:"size:255;not null;uniqueIndex" json:"-"`
	DurationDays int        `gorm:"not null" json:"duration_days"`
	Description  string     `gorm:"size:255" json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
	RedeemedBy   *uint      `gorm:"index" json:"redeemed_by"`
	RedeemedAt   *time.Time `json:"redeemed_at"`
}

// TableName specifies the table name for ActivationKey model
func (ActivationKey) TableName() string {
	return "activation_keys"
}

// ActivationKeyResponse is returned once, when the key is issued.
// It is the only place the plain-text key ever appears.
type ActivationKeyResponse struct {
	ID            uint       `json:"id"`
	ActivationKey string     `json:"activation_key"`
	DurationDays  int        `json:"duration_days"`
	Description   string     `json:"description,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
}
