package repository

import (
	"paygo/internal/models"

	"gorm.io/gorm"
)

type CommissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

func (r *CommissionRepository) WithTx(tx *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: tx}
}

func (r *CommissionRepository) CreateCommission(c *models.Commission) error {
	return r.db.Create(c).Error
}

func (r *CommissionRepository) CreateSuperAgentCommission(c *models.SuperAgentCommission) error {
	return r.db.Create(c).Error
}

func (r *CommissionRepository) ListByAgent(agentID uint) ([]models.Commission, error) {
	var list []models.Commission
	err := r.db.Where("agent_id = ?", agentID).Order("created_at DESC").Find(&list).Error
	return list, err
}
