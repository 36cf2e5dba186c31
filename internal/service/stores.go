package service

import (
	"context"

	"paygo/internal/models"
	"paygo/internal/repository"

	"gorm.io/gorm"
)

// Store interfaces cover exactly what the settlement engine touches. The
// gorm repositories satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	GetByID(id uint) (*models.User, error)
	GetCustomer(id uint) (*models.User, error)
}

type DeviceStore interface {
	GetByID(id uint) (*models.Device, error)
	FirstAssignedTo(customerID uint) (*models.Device, error)
}

type LoanStore interface {
	GetByID(id uint) (*models.Loan, error)
	GetForCustomer(loanID, customerID uint) (*models.Loan, error)
	ActiveForCustomer(customerID uint) ([]models.Loan, error)
	Update(l *models.Loan) error
}

type CommissionStore interface {
	CreateCommission(c *models.Commission) error
	CreateSuperAgentCommission(c *models.SuperAgentCommission) error
}

type TokenStore interface {
	Create(t *models.ActivationToken) error
	ExistsForPayment(paymentID uint) (bool, error)
}

type SettingStore interface {
	Get(key string) (string, error)
}

// Stores is the transaction-scoped view handed to each settlement step. All
// writes made through it belong to one database transaction.
type Stores struct {
	Users       UserStore
	Devices     DeviceStore
	Loans       LoanStore
	Commissions CommissionStore
	Tokens      TokenStore
	Settings    SettingStore
}

// TxRunner runs fn inside a single transaction. fn returning an error rolls
// every write back.
type TxRunner interface {
	InTx(ctx context.Context, fn func(st Stores) error) error
}

// GormTxRunner is the production TxRunner backed by gorm transactions.
type GormTxRunner struct {
	db *gorm.DB
}

func NewGormTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

func (r *GormTxRunner) InTx(ctx context.Context, fn func(st Stores) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Stores{
			Users:       repository.NewUserRepository(tx),
			Devices:     repository.NewDeviceRepository(tx),
			Loans:       repository.NewLoanRepository(tx),
			Commissions: repository.NewCommissionRepository(tx),
			Tokens:      repository.NewTokenRepository(tx),
			Settings:    repository.NewSettingRepository(tx),
		})
	})
}
