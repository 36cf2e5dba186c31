package service

import (
	"context"
	"errors"
	"sort"

	"paygo/internal/domain"
	"paygo/internal/models"

	"gorm.io/gorm"
)

// fakeDB is an in-memory stand-in for the gorm repositories so the
// settlement components can be exercised without a database.
type fakeDB struct {
	users    map[uint]*models.User
	devices  []models.Device
	loans    map[uint]*models.Loan
	settings map[string]string

	commissions      []*models.Commission
	superCommissions []*models.SuperAgentCommission
	tokens           []*models.ActivationToken

	failCommissionCreate bool
	failTokenCreate      bool

	nextCommissionID uint
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    make(map[uint]*models.User),
		loans:    make(map[uint]*models.Loan),
		settings: make(map[string]string),
	}
}

func (db *fakeDB) stores() Stores {
	return Stores{
		Users:       &fakeUserStore{db},
		Devices:     &fakeDeviceStore{db},
		Loans:       &fakeLoanStore{db},
		Commissions: &fakeCommissionStore{db},
		Tokens:      &fakeTokenStore{db},
		Settings:    &fakeSettingStore{db},
	}
}

type fakeUserStore struct{ db *fakeDB }

func (s *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := s.db.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetCustomer(id uint) (*models.User, error) {
	u, ok := s.db.users[id]
	if !ok || u.Role != domain.RoleCustomer {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeDeviceStore struct{ db *fakeDB }

func (s *fakeDeviceStore) GetByID(id uint) (*models.Device, error) {
	for i := range s.db.devices {
		if s.db.devices[i].ID == id {
			cp := s.db.devices[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeDeviceStore) FirstAssignedTo(customerID uint) (*models.Device, error) {
	var match *models.Device
	for i := range s.db.devices {
		d := &s.db.devices[i]
		if d.AssignedTo == nil || *d.AssignedTo != customerID || d.AssignedBy == nil {
			continue
		}
		if match == nil || d.CreatedAt.Before(match.CreatedAt) {
			match = d
		}
	}
	if match == nil {
		return nil, nil
	}
	cp := *match
	return &cp, nil
}

type fakeLoanStore struct{ db *fakeDB }

func (s *fakeLoanStore) GetByID(id uint) (*models.Loan, error) {
	l, ok := s.db.loans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *fakeLoanStore) GetForCustomer(loanID, customerID uint) (*models.Loan, error) {
	l, ok := s.db.loans[loanID]
	if !ok || l.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *fakeLoanStore) ActiveForCustomer(customerID uint) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range s.db.loans {
		if l.CustomerID == customerID && l.Status == domain.LoanStatusActive {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeLoanStore) Update(l *models.Loan) error {
	cp := *l
	s.db.loans[l.ID] = &cp
	return nil
}

type fakeCommissionStore struct{ db *fakeDB }

func (s *fakeCommissionStore) CreateCommission(c *models.Commission) error {
	if s.db.failCommissionCreate {
		return errors.New("commission insert failed")
	}
	s.db.nextCommissionID++
	c.ID = s.db.nextCommissionID
	cp := *c
	s.db.commissions = append(s.db.commissions, &cp)
	return nil
}

func (s *fakeCommissionStore) CreateSuperAgentCommission(c *models.SuperAgentCommission) error {
	if s.db.failCommissionCreate {
		return errors.New("super agent commission insert failed")
	}
	cp := *c
	s.db.superCommissions = append(s.db.superCommissions, &cp)
	return nil
}

type fakeTokenStore struct{ db *fakeDB }

func (s *fakeTokenStore) Create(t *models.ActivationToken) error {
	if s.db.failTokenCreate {
		return errors.New("token insert failed")
	}
	cp := *t
	s.db.tokens = append(s.db.tokens, &cp)
	return nil
}

func (s *fakeTokenStore) ExistsForPayment(paymentID uint) (bool, error) {
	for _, t := range s.db.tokens {
		if t.PaymentID == paymentID {
			return true, nil
		}
	}
	return false, nil
}

type fakeSettingStore struct{ db *fakeDB }

func (s *fakeSettingStore) Get(key string) (string, error) {
	v, ok := s.db.settings[key]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return v, nil
}

// fakeTxRunner hands fn the fake stores directly. Rollback is the runner's
// contract; tests assert on the error surfaced instead.
type fakeTxRunner struct{ db *fakeDB }

func (r *fakeTxRunner) InTx(_ context.Context, fn func(st Stores) error) error {
	return fn(r.db.stores())
}

// fakeProvider records the code request it received.
type fakeProvider struct {
	code      string
	err       error
	gotSerial string
	gotType   string
	gotArg    int
	calls     int
}

func (p *fakeProvider) GenerateCode(_ context.Context, serialNumber, codeType string, arg int) (string, error) {
	p.calls++
	p.gotSerial = serialNumber
	p.gotType = codeType
	p.gotArg = arg
	if p.err != nil {
		return "", p.err
	}
	return p.code, nil
}
