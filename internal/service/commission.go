package service

import (
	"paygo/internal/domain"
	"paygo/internal/models"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// CommissionOutcome lists the rows one payment produced. Empty when the
// customer has no commission owner.
type CommissionOutcome struct {
	Agent *models.Commission
	Super *models.SuperAgentCommission
}

// SplitCommission computes and records the two-tier commission fan-out for
// one payment. Commission is earned on the gross payment amount, not the
// post-allocation remainder. All percentage math is decimal with round
// half-up to two places; the recorded rows always satisfy
// agentNet + superShare == gross exactly.
func SplitCommission(st Stores, customerID uint, amount decimal.Decimal, paymentID uint) (*CommissionOutcome, error) {
	kind, owner, err := resolveOwner(st, customerID)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.DirectAgent:
		return splitForAgent(st, owner, customerID, amount, paymentID)
	case domain.DirectSuperAgent:
		return splitForDirectSuperAgent(st, owner, customerID, amount, paymentID)
	default:
		return &CommissionOutcome{}, nil
	}
}

// resolveOwner finds who placed the customer's device and classifies the
// relationship into the closed owner set.
func resolveOwner(st Stores, customerID uint) (domain.OwnerKind, *models.User, error) {
	dev, err := st.Devices.FirstAssignedTo(customerID)
	if err != nil {
		return domain.NoOwner, nil, err
	}
	if dev == nil || dev.AssignedBy == nil {
		return domain.NoOwner, nil, nil
	}
	owner, err := st.Users.GetByID(*dev.AssignedBy)
	if err != nil {
		return domain.NoOwner, nil, err
	}
	switch owner.Role {
	case domain.RoleAgent:
		return domain.DirectAgent, owner, nil
	case domain.RoleSuperAgent:
		return domain.DirectSuperAgent, owner, nil
	default:
		return domain.NoOwner, nil, nil
	}
}

func splitForAgent(st Stores, agent *models.User, customerID uint, amount decimal.Decimal, paymentID uint) (*CommissionOutcome, error) {
	rate, err := ResolveRate(st, agent.ID, domain.RoleAgent)
	if err != nil {
		return nil, err
	}
	gross := amount.Mul(rate).Div(oneHundred).Round(2)

	if agent.SuperAgentID == nil {
		c := &models.Commission{
			AgentID:    agent.ID,
			CustomerID: customerID,
			PaymentID:  paymentID,
			Amount:     gross,
			Percentage: rate,
		}
		if err := st.Commissions.CreateCommission(c); err != nil {
			return nil, err
		}
		return &CommissionOutcome{Agent: c}, nil
	}

	superRate, err := ResolveRate(st, *agent.SuperAgentID, domain.RoleSuperAgent)
	if err != nil {
		return nil, err
	}
	superShare := gross.Mul(superRate).Div(oneHundred).Round(2)
	agentNet := gross.Sub(superShare)

	c := &models.Commission{
		AgentID:    agent.ID,
		CustomerID: customerID,
		PaymentID:  paymentID,
		Amount:     agentNet,
		Percentage: rate,
	}
	if err := st.Commissions.CreateCommission(c); err != nil {
		return nil, err
	}
	sac := &models.SuperAgentCommission{
		CommissionID: c.ID,
		SuperAgentID: *agent.SuperAgentID,
		AgentID:      agent.ID,
		Amount:       superShare,
		Percentage:   superRate,
	}
	if err := st.Commissions.CreateSuperAgentCommission(sac); err != nil {
		return nil, err
	}
	return &CommissionOutcome{Agent: c, Super: sac}, nil
}

// splitForDirectSuperAgent handles a super-agent who owns the customer with
// no intermediate agent. The gross is computed at the resolved agent rate,
// the Commission row carries a zero net for the owner, and the super-agent
// row carries the full gross at the resolved super-agent percentage.
// TODO: confirm the intended split with product before changing this math.
func splitForDirectSuperAgent(st Stores, owner *models.User, customerID uint, amount decimal.Decimal, paymentID uint) (*CommissionOutcome, error) {
	agentRate, err := ResolveRate(st, owner.ID, domain.RoleAgent)
	if err != nil {
		return nil, err
	}
	gross := amount.Mul(agentRate).Div(oneHundred).Round(2)

	superRate, err := ResolveRate(st, owner.ID, domain.RoleSuperAgent)
	if err != nil {
		return nil, err
	}

	c := &models.Commission{
		AgentID:    owner.ID,
		CustomerID: customerID,
		PaymentID:  paymentID,
		Amount:     decimal.Zero,
		Percentage: agentRate,
	}
	if err := st.Commissions.CreateCommission(c); err != nil {
		return nil, err
	}
	sac := &models.SuperAgentCommission{
		CommissionID: c.ID,
		SuperAgentID: owner.ID,
		AgentID:      owner.ID,
		Amount:       gross,
		Percentage:   superRate,
	}
	if err := st.Commissions.CreateSuperAgentCommission(sac); err != nil {
		return nil, err
	}
	return &CommissionOutcome{Agent: c, Super: sac}, nil
}
