package service

import (
	"context"
	"crypto/rand"
	"log"
	"math/big"
	"time"

	"paygo/internal/domain"
	"paygo/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultValidityDays is the access window for payments with no associated
// loan.
const DefaultValidityDays = 30

// CodeProvider mints hardware unlock codes for a device serial number. It is
// treated as unreliable; every failure is recoverable.
type CodeProvider interface {
	GenerateCode(ctx context.Context, serialNumber, codeType string, arg int) (string, error)
}

// TokenIssuer computes how many days of device access a payment buys and
// obtains an activation code, falling back to a locally generated one when
// the provider is unreachable.
type TokenIssuer struct {
	provider CodeProvider
	timeout  time.Duration
	now      func() time.Time
}

func NewTokenIssuer(provider CodeProvider, timeout time.Duration) *TokenIssuer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &TokenIssuer{provider: provider, timeout: timeout, now: time.Now}
}

// Issue computes the validity window, obtains a code, and persists the
// activation token row. The row insert failing fails the settlement; a
// provider failure does not.
func (ti *TokenIssuer) Issue(ctx context.Context, st Stores, userID, paymentID uint, loanID *uint, amount decimal.Decimal) (string, int, error) {
	days := DefaultValidityDays
	serial := ""
	if loanID != nil {
		loan, err := st.Loans.GetByID(*loanID)
		if err != nil {
			return "", 0, err
		}
		days = ValidityDays(amount, loan.PaymentCycleAmount, loan.PaymentFrequency)
		dev, err := st.Devices.GetByID(loan.DeviceID)
		if err == nil {
			serial = dev.SerialNumber
		} else {
			log.Printf("[activation] device %d for loan %d not found, using local code: %v", loan.DeviceID, loan.ID, err)
		}
	}

	code := ti.obtainCode(ctx, serial, days)

	token := &models.ActivationToken{
		UserID:    userID,
		PaymentID: paymentID,
		Code:      code,
		ExpiresAt: ti.now().Add(time.Duration(days) * 24 * time.Hour),
	}
	if err := st.Tokens.Create(token); err != nil {
		return "", 0, err
	}
	return code, days, nil
}

// obtainCode asks the provider for a device-bound code within a bounded
// timeout and falls back to a local opaque code on any failure.
func (ti *TokenIssuer) obtainCode(ctx context.Context, serial string, days int) string {
	if ti.provider == nil || serial == "" {
		return localCode()
	}
	ctx, cancel := context.WithTimeout(ctx, ti.timeout)
	defer cancel()
	code, err := ti.provider.GenerateCode(ctx, serial, "add_time", days)
	if err != nil {
		log.Printf("[activation] provider failed for serial %s, using local code: %v", serial, err)
		return localCode()
	}
	return code
}

// ValidityDays converts a payment into days of device access. Underpayment
// still buys one full cycle; overpayment extends the window proportionally,
// floored to whole days.
func ValidityDays(amount, cycleAmount decimal.Decimal, frequency string) int {
	base := domain.CycleDays(frequency)
	if !cycleAmount.IsPositive() || amount.LessThanOrEqual(cycleAmount) {
		return base
	}
	extra := amount.Sub(cycleAmount)
	bonus := extra.Div(cycleAmount).Mul(decimal.NewFromInt(int64(base))).Floor()
	return base + int(bonus.IntPart())
}

// localCode generates the 6-digit numeric fallback token.
func localCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// a fixed window start keeps the code shape valid regardless.
		return "100000"
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String()
}
