package models

import (
	"time"

	"paygo/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:20;not null;index" json:"role"` // admin | agent | super-agent | customer
	PhoneNumber  string `gorm:"size:32" json:"phone_number"`
	Status       string `gorm:"size:20;default:'active'" json:"status"`

	// CommissionRate is the individual override for agents and super-agents.
	// Zero means "use the platform default".
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"commission_rate"`

	// SuperAgentID links an agent to the super-agent above them.
	SuperAgentID *uint `gorm:"index" json:"super_agent_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SuperAgent *User `gorm:"foreignKey:SuperAgentID" json:"-"`
}

func (u *User) IsAgent() bool      { return u.Role == domain.RoleAgent }
func (u *User) IsSuperAgent() bool { return u.Role == domain.RoleSuperAgent }
func (u *User) IsCustomer() bool   { return u.Role == domain.RoleCustomer }
