package service

import (
	"log"
	"time"

	"paygo/internal/domain"
	"paygo/internal/models"

	"github.com/shopspring/decimal"
)

// Allocate distributes a payment across a customer's loans: the named loan
// when loanID is given, otherwise all active loans oldest first. Each loan
// absorbs min(remaining, balance); a loan that stays active has its due date
// advanced by one billing cycle, a loan paid to zero completes and keeps its
// date. Whatever is left after the last candidate is absorbed (logged, not
// credited anywhere).
func Allocate(st Stores, customerID uint, amount decimal.Decimal, loanID *uint) ([]models.Loan, error) {
	var candidates []models.Loan
	if loanID != nil {
		loan, err := st.Loans.GetForCustomer(*loanID, customerID)
		if err != nil {
			return nil, err
		}
		candidates = []models.Loan{*loan}
	} else {
		var err error
		candidates, err = st.Loans.ActiveForCustomer(customerID)
		if err != nil {
			return nil, err
		}
	}

	remaining := amount
	var updated []models.Loan
	for i := range candidates {
		if !remaining.IsPositive() {
			break
		}
		loan := &candidates[i]
		apply := decimal.Min(remaining, loan.Balance)
		if !apply.IsPositive() {
			continue
		}

		loan.AmountPaid = loan.AmountPaid.Add(apply)
		loan.Balance = loan.Balance.Sub(apply)
		if loan.Balance.IsPositive() {
			loan.Status = domain.LoanStatusActive
			loan.NextPaymentDate = advanceDueDate(loan.NextPaymentDate, loan.PaymentFrequency)
		} else {
			// Completed loans keep their last due date.
			loan.Status = domain.LoanStatusCompleted
		}
		if err := st.Loans.Update(loan); err != nil {
			return nil, err
		}
		remaining = remaining.Sub(apply)
		updated = append(updated, *loan)
	}

	if remaining.IsPositive() {
		log.Printf("[allocation] customer %d: %s of payment left unallocated after %d loan(s)",
			customerID, remaining.StringFixed(2), len(updated))
	}
	return updated, nil
}

// advanceDueDate moves a due date forward one billing cycle. Monthly cycles
// move by a calendar month, not a fixed day count.
func advanceDueDate(t time.Time, frequency string) time.Time {
	switch frequency {
	case domain.FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case domain.FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 1, 0)
	}
}
