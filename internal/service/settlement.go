package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"paygo/internal/domain"
	"paygo/internal/models"
)

// Notifier is the fire-and-forget SMS channel. Failures are logged, never
// fatal to settlement.
type Notifier interface {
	Send(to, message string) error
}

// SettlementService sequences one confirmed payment through token issuance,
// loan allocation, and commission split, committing all writes as one
// transaction under a per-customer lock.
type SettlementService struct {
	tx       TxRunner
	issuer   *TokenIssuer
	notifier Notifier
	locks    *customerLocks
}

func NewSettlementService(tx TxRunner, issuer *TokenIssuer, notifier Notifier) *SettlementService {
	return &SettlementService{
		tx:       tx,
		issuer:   issuer,
		notifier: notifier,
		locks:    newCustomerLocks(),
	}
}

// Settle runs the full settlement for a completed payment and returns the
// activation token value for customer notification. On any transactional
// failure every write is rolled back, the payment row is left untouched for
// reconciliation, and the caller receives a SettlementError.
func (s *SettlementService) Settle(ctx context.Context, payment *models.Payment) (string, error) {
	unlock := s.locks.lock(payment.UserID)
	defer unlock()

	var (
		code  string
		days  int
		phone string
	)
	err := s.tx.InTx(ctx, func(st Stores) error {
		customer, err := st.Users.GetCustomer(payment.UserID)
		if err != nil {
			return err
		}
		phone = customer.PhoneNumber

		settled, err := st.Tokens.ExistsForPayment(payment.ID)
		if err != nil {
			return err
		}
		if settled {
			return domain.ErrAlreadySettled
		}

		code, days, err = s.issuer.Issue(ctx, st, payment.UserID, payment.ID, payment.LoanID, payment.Amount)
		if err != nil {
			return err
		}
		if _, err := Allocate(st, payment.UserID, payment.Amount, payment.LoanID); err != nil {
			return err
		}
		// Commission is earned on the gross payment, not the
		// post-allocation remainder.
		if _, err := SplitCommission(st, payment.UserID, payment.Amount, payment.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrAlreadySettled) ||
			errors.Is(err, domain.ErrConfiguration) {
			return "", err
		}
		return "", &domain.SettlementError{PaymentID: payment.ID, Err: err}
	}

	log.Printf("[settlement] payment %d settled for customer %d, token valid %d days", payment.ID, payment.UserID, days)
	s.notify(phone, code, days, payment)
	return code, nil
}

func (s *SettlementService) notify(phone, code string, days int, payment *models.Payment) {
	if s.notifier == nil {
		return
	}
	if phone == "" {
		log.Printf("[settlement] customer %d has no phone number, token not sent", payment.UserID)
		return
	}
	msg := fmt.Sprintf("Your PayGo token is: %s. Amount paid: %s. Valid for %d days.",
		code, payment.Amount.StringFixed(2), days)
	go func() {
		if err := s.notifier.Send(phone, msg); err != nil {
			log.Printf("[settlement] sms to customer %d failed: %v", payment.UserID, err)
		}
	}()
}
