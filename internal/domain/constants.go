package domain

const (
	RoleAdmin      = "admin"
	RoleAgent      = "agent"
	RoleSuperAgent = "super-agent"
	RoleCustomer   = "customer"
)

const (
	LoanStatusPending   = "pending"
	LoanStatusActive    = "active"
	LoanStatusCompleted = "completed"
	LoanStatusDefaulted = "defaulted"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

const (
	DeviceStatusAvailable       = "available"
	DeviceStatusAssigned        = "assigned"
	DeviceStatusFaulty          = "faulty"
	DeviceStatusPendingApproval = "pending_approval"
)

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Platform-wide default commission rates, used when an agent or super-agent
// has no individual override.
const (
	SettingAgentCommissionRate      = "general_agent_commission_rate"
	SettingSuperAgentCommissionRate = "general_super_agent_commission_rate"
)

// CycleDays returns the base billing cycle length in days for a payment
// frequency. Unknown frequencies fall back to monthly.
func CycleDays(frequency string) int {
	switch frequency {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	default:
		return 30
	}
}

// OwnerKind classifies who owns the commission on a customer's payments:
// the agent who assigned the device, a super-agent who assigned it directly,
// or nobody.
type OwnerKind int

const (
	NoOwner OwnerKind = iota
	DirectAgent
	DirectSuperAgent
)
