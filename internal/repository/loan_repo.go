package repository

import (
	"errors"

	"paygo/internal/domain"
	"paygo/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) WithTx(tx *gorm.DB) *LoanRepository {
	return &LoanRepository{db: tx}
}

func (r *LoanRepository) GetByID(id uint) (*models.Loan, error) {
	var l models.Loan
	if err := r.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// GetForCustomer locks and returns one loan, verifying ownership.
func (r *LoanRepository) GetForCustomer(loanID, customerID uint) (*models.Loan, error) {
	var l models.Loan
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND customer_id = ?", loanID, customerID).
		First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ActiveForCustomer locks and returns the customer's active loans oldest
// first, the order the allocation waterfall pays them down in.
func (r *LoanRepository) ActiveForCustomer(customerID uint) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ? AND status = ?", customerID, domain.LoanStatusActive).
		Order("created_at ASC").
		Find(&loans).Error
	return loans, err
}

func (r *LoanRepository) Update(l *models.Loan) error {
	return r.db.Save(l).Error
}

func (r *LoanRepository) Create(l *models.Loan) error {
	return r.db.Create(l).Error
}
