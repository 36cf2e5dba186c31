package repository

import (
	"errors"

	"paygo/internal/models"

	"gorm.io/gorm"
)

type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) WithTx(tx *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: tx}
}

func (r *DeviceRepository) GetByID(id uint) (*models.Device, error) {
	var d models.Device
	if err := r.db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// FirstAssignedTo returns the oldest device assignment for a customer that
// records who placed it, or nil when the customer has no commission owner.
func (r *DeviceRepository) FirstAssignedTo(customerID uint) (*models.Device, error) {
	var d models.Device
	err := r.db.
		Where("assigned_to = ? AND assigned_by IS NOT NULL", customerID).
		Order("created_at ASC").
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
