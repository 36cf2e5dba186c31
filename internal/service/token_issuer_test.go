package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"paygo/internal/domain"
	"paygo/internal/models"
)

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestValidityDays(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		cycleAmount string
		frequency   string
		want        int
	}{
		{"monthly exact", "100", "100", domain.FrequencyMonthly, 30},
		{"monthly overpayment extends", "150", "100", domain.FrequencyMonthly, 45},
		{"monthly underpayment full cycle", "60", "100", domain.FrequencyMonthly, 30},
		{"weekly overpayment floors", "150", "100", domain.FrequencyWeekly, 10}, // 7 + floor(3.5)
		{"daily double", "20", "10", domain.FrequencyDaily, 2},
		{"zero cycle amount", "100", "0", domain.FrequencyMonthly, 30},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidityDays(dec(tc.amount), dec(tc.cycleAmount), tc.frequency)
			if got != tc.want {
				t.Errorf("ValidityDays(%s, %s, %s) = %d, want %d",
					tc.amount, tc.cycleAmount, tc.frequency, got, tc.want)
			}
		})
	}
}

func issuerLoan(db *fakeDB, frequency, cycleAmount string) {
	db.loans[1] = &models.Loan{
		ID:                 1,
		CustomerID:         10,
		DeviceID:           5,
		TotalAmount:        dec("1200"),
		AmountPaid:         dec("0"),
		Balance:            dec("1200"),
		PaymentFrequency:   frequency,
		PaymentCycleAmount: dec(cycleAmount),
		Status:             domain.LoanStatusActive,
	}
	db.devices = append(db.devices, models.Device{ID: 5, SerialNumber: "SN-XYZ"})
}

func TestTokenIssuer_NoLoanDefaultWindow(t *testing.T) {
	db := newFakeDB()
	issuer := NewTokenIssuer(nil, time.Second)

	code, days, err := issuer.Issue(context.Background(), db.stores(), 10, 77, nil, dec("100"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if days != DefaultValidityDays {
		t.Errorf("days = %d, want %d", days, DefaultValidityDays)
	}
	if !sixDigits.MatchString(code) {
		t.Errorf("local code = %q, want 6 digits", code)
	}
	if len(db.tokens) != 1 {
		t.Fatalf("expected 1 token row, got %d", len(db.tokens))
	}
	if db.tokens[0].PaymentID != 77 || db.tokens[0].UserID != 10 {
		t.Errorf("token row = %+v", db.tokens[0])
	}
}

func TestTokenIssuer_ProviderCode(t *testing.T) {
	db := newFakeDB()
	issuerLoan(db, domain.FrequencyMonthly, "100")
	provider := &fakeProvider{code: "ABC123XYZ"}
	issuer := NewTokenIssuer(provider, time.Second)

	loanID := uint(1)
	code, days, err := issuer.Issue(context.Background(), db.stores(), 10, 77, &loanID, dec("150"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if code != "ABC123XYZ" {
		t.Errorf("code = %q, want provider code", code)
	}
	if days != 45 {
		t.Errorf("days = %d, want 45", days)
	}
	if provider.gotSerial != "SN-XYZ" || provider.gotType != "add_time" || provider.gotArg != 45 {
		t.Errorf("provider called with (%s, %s, %d)", provider.gotSerial, provider.gotType, provider.gotArg)
	}
	if db.tokens[0].Code != "ABC123XYZ" {
		t.Errorf("persisted code = %q", db.tokens[0].Code)
	}
}

func TestTokenIssuer_ProviderFailureFallsBack(t *testing.T) {
	db := newFakeDB()
	issuerLoan(db, domain.FrequencyMonthly, "100")
	provider := &fakeProvider{err: errors.New("connection timed out")}
	issuer := NewTokenIssuer(provider, time.Second)

	loanID := uint(1)
	code, days, err := issuer.Issue(context.Background(), db.stores(), 10, 77, &loanID, dec("100"))
	if err != nil {
		t.Fatalf("Issue should absorb provider failure, got: %v", err)
	}
	if !sixDigits.MatchString(code) {
		t.Errorf("fallback code = %q, want 6 digits", code)
	}
	if days != 30 {
		t.Errorf("days = %d, want 30", days)
	}
	if len(db.tokens) != 1 {
		t.Fatalf("token row not persisted after fallback")
	}
}

func TestTokenIssuer_PersistFailureIsFatal(t *testing.T) {
	db := newFakeDB()
	db.failTokenCreate = true
	issuer := NewTokenIssuer(nil, time.Second)

	_, _, err := issuer.Issue(context.Background(), db.stores(), 10, 77, nil, dec("100"))
	if err == nil {
		t.Fatal("expected error when token row insert fails")
	}
}

func TestTokenIssuer_ExpiryMatchesValidity(t *testing.T) {
	db := newFakeDB()
	issuerLoan(db, domain.FrequencyWeekly, "100")
	issuer := NewTokenIssuer(nil, time.Second)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return now }

	loanID := uint(1)
	_, days, err := issuer.Issue(context.Background(), db.stores(), 10, 77, &loanID, dec("100"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if days != 7 {
		t.Fatalf("days = %d, want 7", days)
	}
	want := now.Add(7 * 24 * time.Hour)
	if !db.tokens[0].ExpiresAt.Equal(want) {
		t.Errorf("expires at %v, want %v", db.tokens[0].ExpiresAt, want)
	}
}
