package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers unknown customers and loans. Caller's fault.
	ErrNotFound = errors.New("not found")

	// ErrConfiguration means a platform default setting row is missing or
	// unparseable. Fatal deployment misconfiguration; never retried.
	ErrConfiguration = errors.New("missing or invalid platform configuration")

	// ErrProvider marks activation-provider failures. Always recovered
	// locally with a fallback token; never fatal to settlement.
	ErrProvider = errors.New("activation provider unavailable")

	// ErrAlreadySettled guards against duplicate webhook deliveries
	// re-settling the same payment.
	ErrAlreadySettled = errors.New("payment already settled")
)

// SettlementError wraps any failure inside the settlement transaction. The
// transaction has been rolled back and the payment row left untouched for
// reconciliation.
type SettlementError struct {
	PaymentID uint
	Err       error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement of payment %d failed: %v", e.PaymentID, e.Err)
}

func (e *SettlementError) Unwrap() error { return e.Err }
