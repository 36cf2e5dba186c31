package service

import (
	"errors"
	"testing"
	"time"

	"paygo/internal/domain"
	"paygo/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func activeLoan(id, customerID uint, balance, total string, created time.Time) *models.Loan {
	b := dec(balance)
	t := dec(total)
	return &models.Loan{
		ID:                 id,
		CustomerID:         customerID,
		DeviceID:           id,
		TotalAmount:        t,
		AmountPaid:         t.Sub(b),
		Balance:            b,
		PaymentFrequency:   domain.FrequencyMonthly,
		PaymentCycleAmount: dec("100"),
		NextPaymentDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:             domain.LoanStatusActive,
		CreatedAt:          created,
	}
}

func TestAllocate_WaterfallAcrossTwoLoans(t *testing.T) {
	db := newFakeDB()
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	db.loans[1] = activeLoan(1, 10, "50", "500", older)
	db.loans[2] = activeLoan(2, 10, "200", "600", newer)

	updated, err := Allocate(db.stores(), 10, dec("120"), nil)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(updated) != 2 {
		t.Fatalf("expected 2 updated loans, got %d", len(updated))
	}

	a := db.loans[1]
	if a.Status != domain.LoanStatusCompleted {
		t.Errorf("loan A status = %s, want completed", a.Status)
	}
	if !a.Balance.IsZero() {
		t.Errorf("loan A balance = %s, want 0", a.Balance)
	}
	originalDue := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !a.NextPaymentDate.Equal(originalDue) {
		t.Errorf("completed loan's due date moved to %v", a.NextPaymentDate)
	}

	b := db.loans[2]
	if b.Status != domain.LoanStatusActive {
		t.Errorf("loan B status = %s, want active", b.Status)
	}
	if !b.Balance.Equal(dec("130")) {
		t.Errorf("loan B balance = %s, want 130", b.Balance)
	}
	wantDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	if !b.NextPaymentDate.Equal(wantDate) {
		t.Errorf("loan B due date = %v, want %v", b.NextPaymentDate, wantDate)
	}
}

func TestAllocate_InvariantsHold(t *testing.T) {
	db := newFakeDB()
	db.loans[1] = activeLoan(1, 10, "80", "300", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	db.loans[2] = activeLoan(2, 10, "40", "100", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	amount := dec("95")
	updated, err := Allocate(db.stores(), 10, amount, nil)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	applied := decimal.Zero
	for _, l := range updated {
		stored := db.loans[l.ID]
		if !stored.AmountPaid.Add(stored.Balance).Equal(stored.TotalAmount) {
			t.Errorf("loan %d: paid %s + balance %s != total %s",
				l.ID, stored.AmountPaid, stored.Balance, stored.TotalAmount)
		}
		if stored.Balance.IsNegative() {
			t.Errorf("loan %d: negative balance %s", l.ID, stored.Balance)
		}
	}
	applied = applied.Add(dec("80")).Add(dec("15"))
	if applied.GreaterThan(amount) {
		t.Errorf("applied %s exceeds payment %s", applied, amount)
	}
}

func TestAllocate_OverpaymentAbsorbed(t *testing.T) {
	db := newFakeDB()
	db.loans[1] = activeLoan(1, 10, "200", "200", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	updated, err := Allocate(db.stores(), 10, dec("300"), nil)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(updated) != 1 {
		t.Fatalf("expected 1 updated loan, got %d", len(updated))
	}
	l := db.loans[1]
	if !l.Balance.IsZero() || l.Status != domain.LoanStatusCompleted {
		t.Errorf("loan = balance %s status %s, want 0/completed", l.Balance, l.Status)
	}
	if !l.AmountPaid.Equal(dec("200")) {
		t.Errorf("amount paid = %s, want 200 (remainder absorbed, not credited)", l.AmountPaid)
	}
}

func TestAllocate_SpecificLoan(t *testing.T) {
	t.Run("belongs to customer", func(t *testing.T) {
		db := newFakeDB()
		db.loans[1] = activeLoan(1, 10, "150", "300", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		db.loans[2] = activeLoan(2, 10, "90", "90", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		id := uint(1)
		updated, err := Allocate(db.stores(), 10, dec("100"), &id)
		if err != nil {
			t.Fatalf("Allocate: %v", err)
		}
		if len(updated) != 1 || updated[0].ID != 1 {
			t.Fatalf("expected only loan 1 updated, got %v", updated)
		}
		if !db.loans[2].Balance.Equal(dec("90")) {
			t.Errorf("untargeted loan mutated: balance %s", db.loans[2].Balance)
		}
	})

	t.Run("wrong customer", func(t *testing.T) {
		db := newFakeDB()
		db.loans[1] = activeLoan(1, 99, "150", "300", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

		id := uint(1)
		_, err := Allocate(db.stores(), 10, dec("100"), &id)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestAdvanceDueDate(t *testing.T) {
	base := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		frequency string
		want      time.Time
	}{
		{domain.FrequencyDaily, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{domain.FrequencyWeekly, time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC)},
		{domain.FrequencyMonthly, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)}, // Jan 31 + 1 month normalizes past Feb
	}
	for _, tc := range tests {
		t.Run(tc.frequency, func(t *testing.T) {
			if got := advanceDueDate(base, tc.frequency); !got.Equal(tc.want) {
				t.Errorf("advanceDueDate(%s) = %v, want %v", tc.frequency, got, tc.want)
			}
		})
	}
}
