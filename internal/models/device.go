package models

import (
	"time"

	"gorm.io/gorm"
)

// Device is a financed hardware unit. AssignedTo is the customer paying it
// off; AssignedBy is the agent or super-agent who placed it and earns the
// commission on its payments.
type Device struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	SerialNumber string `gorm:"uniqueIndex;size:255;not null" json:"serial_number"`
	Model        string `gorm:"size:100" json:"model"`
	Status       string `gorm:"size:30;not null;default:'available';index" json:"status"`
	AssignedTo   *uint  `gorm:"index" json:"assigned_to"`
	AssignedBy   *uint  `gorm:"index" json:"assigned_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Device) TableName() string { return "devices" }
