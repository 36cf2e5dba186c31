package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Loan is a customer's installment obligation for one device.
// AmountPaid + Balance == TotalAmount holds at all times; only the
// allocation engine mutates these columns.
type Loan struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"not null;index" json:"customer_id"`
	DeviceID   uint `gorm:"not null;index" json:"device_id"`

	TotalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	AmountPaid         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_paid"`
	Balance            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance"`
	TermMonths         int             `gorm:"not null" json:"term_months"`
	PaymentFrequency   string          `gorm:"size:10;not null;default:'monthly'" json:"payment_frequency"` // daily | weekly | monthly
	PaymentCycleAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"payment_cycle_amount"`
	NextPaymentDate    time.Time       `json:"next_payment_date"`
	Status             string          `gorm:"size:20;not null;default:'active';index" json:"status"` // pending | active | completed | defaulted

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Customer User   `gorm:"foreignKey:CustomerID" json:"-"`
	Device   Device `gorm:"foreignKey:DeviceID" json:"-"`
}

func (Loan) TableName() string { return "loans" }
