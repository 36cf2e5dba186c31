package models

import "time"

// ActivationToken is a time-boxed code that unlocks a financed device.
// One per settled payment (the unique index on PaymentID doubles as the
// settlement idempotency guard). Rows are never updated; superseded tokens
// are kept for audit.
type ActivationToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PaymentID uint      `gorm:"not null;uniqueIndex" json:"payment_id"`
	Code      string    `gorm:"size:255;not null" json:"code"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (ActivationToken) TableName() string { return "activation_tokens" }
