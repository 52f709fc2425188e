package saas

import (
	"time"
)

// PlanTier represents the pricing tier of a subscription plan
type PlanTier string

const (
	PlanTierStarter      PlanTier = "starter"
	PlanTierProfessional PlanTier = "professional"
	PlanTierEnterprise   PlanTier = "enterprise"
)

// PlanTiers returns all plan tiers in catalog order
func PlanTiers() []PlanTier {
	return []PlanTier{PlanTierStarter, PlanTierProfessional, PlanTierEnterprise}
}

// Plan represents a row in the static plan catalog dimension
type Plan struct {
	PlanID           int64     `json:"plan_id"`
	PlanName         string    `json:"plan_name"`
	PlanTier         PlanTier  `json:"plan_tier"`
	BasePriceMonthly float64   `json:"base_price_monthly"`
	BasePriceAnnual  float64   `json:"base_price_annual"`
	Features         string    `json:"features"`
	MaxUsers         int       `json:"max_users"`
	CreatedDate      time.Time `json:"created_date"`
}

// AccountStatus represents the lifecycle state of a customer account
type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "active"
	AccountStatusChurned AccountStatus = "churned"
)

// CustomerSegment represents the market segment a customer belongs to.
// The segment drives company size assignment and is not persisted directly.
type CustomerSegment string

const (
	SegmentSMB        CustomerSegment = "SMB"
	SegmentMidMarket  CustomerSegment = "Mid-Market"
	SegmentEnterprise CustomerSegment = "Enterprise"
)

// Customer represents a customer account record
type Customer struct {
	CustomerID    int64         `json:"customer_id"`
	Email         string        `json:"email"`
	CompanyName   string        `json:"company_name"`
	SignupDate    time.Time     `json:"signup_date"`
	EndDate       *time.Time    `json:"end_date,omitempty"`
	AccountStatus AccountStatus `json:"account_status"`
	Industry      string        `json:"industry"`
	CompanySize   string        `json:"company_size"`
	Country       string        `json:"country"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Window returns the customer's active date window: signup through churn,
// or through horizonEnd when the customer has not churned.
func (c *Customer) Window(horizonEnd time.Time) (time.Time, time.Time) {
	if c.EndDate != nil {
		return c.SignupDate, *c.EndDate
	}
	return c.SignupDate, horizonEnd
}

// SubscriptionStatus represents the status of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive     SubscriptionStatus = "active"
	SubscriptionStatusPaused     SubscriptionStatus = "paused"
	SubscriptionStatusChurned    SubscriptionStatus = "churned"
	SubscriptionStatusUpgraded   SubscriptionStatus = "upgraded"
	SubscriptionStatusDowngraded SubscriptionStatus = "downgraded"
)

// BillingCycle represents how often a subscription is charged
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleAnnual  BillingCycle = "annual"
)

// Subscription represents a subscription lifecycle record
type Subscription struct {
	SubscriptionID int64              `json:"subscription_id"`
	CustomerID     int64              `json:"customer_id"`
	PlanID         int64              `json:"plan_id"`
	StartDate      time.Time          `json:"start_date"`
	EndDate        *time.Time         `json:"end_date,omitempty"`
	Status         SubscriptionStatus `json:"status"`
	MRRAmount      float64            `json:"mrr_amount"`
	BillingCycle   BillingCycle       `json:"billing_cycle"`
	Amount         float64            `json:"amount"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// PaymentStatus represents the outcome of a payment transaction
type PaymentStatus string

const (
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodPayPal       PaymentMethod = "paypal"
)

// Payment represents a payment transaction record. Amount is negative
// exactly when the payment was refunded.
type Payment struct {
	PaymentID      int64         `json:"payment_id"`
	SubscriptionID int64         `json:"subscription_id"`
	PaymentDate    time.Time     `json:"payment_date"`
	Amount         float64       `json:"amount"`
	Status         PaymentStatus `json:"status"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	CreatedAt      time.Time     `json:"created_at"`
}

// EventType represents the kind of product usage event
type EventType string

const (
	EventTypeLogin        EventType = "login"
	EventTypeFeatureUsage EventType = "feature_usage"
	EventTypeExport       EventType = "export"
	EventTypeAPICall      EventType = "api_call"
)

// UsageEvent represents a product usage log record
type UsageEvent struct {
	EventID       int64     `json:"event_id"`
	CustomerID    int64     `json:"customer_id"`
	EventDate     time.Time `json:"event_date"`
	EventType     EventType `json:"event_type"`
	UsageQuantity int       `json:"usage_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

// TicketCategory represents the category of a support ticket
type TicketCategory string

const (
	TicketCategoryBilling        TicketCategory = "billing"
	TicketCategoryTechnical      TicketCategory = "technical"
	TicketCategoryFeatureRequest TicketCategory = "feature_request"
	TicketCategoryOther          TicketCategory = "other"
)

// TicketPriority represents the priority of a support ticket
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// SupportTicket represents a customer support ticket record.
// SatisfactionScore is nil exactly when the ticket is unresolved.
type SupportTicket struct {
	TicketID          int64          `json:"ticket_id"`
	CustomerID        int64          `json:"customer_id"`
	CreatedDate       time.Time      `json:"created_date"`
	ResolvedDate      *time.Time     `json:"resolved_date,omitempty"`
	Category          TicketCategory `json:"category"`
	Priority          TicketPriority `json:"priority"`
	SatisfactionScore *int           `json:"satisfaction_score,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}
