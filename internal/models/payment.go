package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is the immutable record of funds received. The settlement engine
// only ever reads it.
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"` // paying customer
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency      string          `gorm:"size:3;default:'NGN'" json:"currency"`
	PaymentMethod string          `gorm:"size:50;not null" json:"payment_method"` // manual | paystack
	TransactionID *string         `gorm:"size:255;uniqueIndex" json:"transaction_id"`
	Status        string          `gorm:"size:20;not null;index" json:"status"` // pending | completed | failed
	LoanID        *uint           `gorm:"index" json:"loan_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string { return "payments" }
