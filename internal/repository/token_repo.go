package repository

import (
	"errors"

	"paygo/internal/models"

	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) WithTx(tx *gorm.DB) *TokenRepository {
	return &TokenRepository{db: tx}
}

func (r *TokenRepository) Create(t *models.ActivationToken) error {
	return r.db.Create(t).Error
}

// ExistsForPayment reports whether a payment has already produced a token,
// i.e. has already been settled.
func (r *TokenRepository) ExistsForPayment(paymentID uint) (bool, error) {
	var t models.ActivationToken
	err := r.db.Where("payment_id = ?", paymentID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
