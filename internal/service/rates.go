package service

import (
	"fmt"
	"strings"

	"paygo/internal/domain"

	"github.com/shopspring/decimal"
)

// ResolveRate returns the effective commission percentage (0-100) for an
// agent or super-agent. An individual non-zero rate on the user wins;
// otherwise the platform default setting for the role applies. A missing or
// unparseable default is a deployment misconfiguration, not a retryable
// condition.
func ResolveRate(st Stores, entityID uint, role string) (decimal.Decimal, error) {
	u, err := st.Users.GetByID(entityID)
	if err != nil {
		return decimal.Zero, err
	}
	if u.CommissionRate.IsPositive() {
		return u.CommissionRate, nil
	}

	key := domain.SettingAgentCommissionRate
	if role == domain.RoleSuperAgent {
		key = domain.SettingSuperAgentCommissionRate
	}
	val, err := st.Settings.Get(key)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: setting %q not found", domain.ErrConfiguration, key)
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(val))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: setting %q is not a number: %q", domain.ErrConfiguration, key, val)
	}
	return rate, nil
}
