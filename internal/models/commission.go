package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commission is an agent's earned share of one payment. Append-only; at most
// one row per (agent, payment).
type Commission struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	AgentID    uint            `gorm:"not null;index;uniqueIndex:idx_agent_payment" json:"agent_id"`
	CustomerID uint            `gorm:"not null;index" json:"customer_id"`
	PaymentID  uint            `gorm:"not null;uniqueIndex:idx_agent_payment" json:"payment_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Percentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentage"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (Commission) TableName() string { return "commissions" }

// SuperAgentCommission is the super-agent share carved out of one agent
// commission. Append-only; at most one per originating commission.
type SuperAgentCommission struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CommissionID uint            `gorm:"not null;uniqueIndex" json:"commission_id"`
	SuperAgentID uint            `gorm:"not null;index" json:"super_agent_id"`
	AgentID      uint            `gorm:"not null;index" json:"agent_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Percentage   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentage"`
	CreatedAt    time.Time       `json:"created_at"`

	Commission Commission `gorm:"foreignKey:CommissionID" json:"-"`
}

func (SuperAgentCommission) TableName() string { return "super_agent_commissions" }
