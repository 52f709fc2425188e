package saas

// Table names as persisted to CSV and loaded into the analytical store.
const (
	TablePlans          = "plans"
	TableCustomers      = "customers"
	TableSubscriptions  = "subscriptions"
	TablePayments       = "payments"
	TableUsageEvents    = "usage_events"
	TableSupportTickets = "support_tickets"
)

// TableNames returns all table names in generation order.
func TableNames() []string {
	return []string{
		TablePlans,
		TableCustomers,
		TableSubscriptions,
		TablePayments,
		TableUsageEvents,
		TableSupportTickets,
	}
}

// Dataset holds one complete generated dataset, one slice per table.
type Dataset struct {
	Plans          []Plan
	Customers      []Customer
	Subscriptions  []Subscription
	Payments       []Payment
	UsageEvents    []UsageEvent
	SupportTickets []SupportTicket
}

// Counts returns the row count per table.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		TablePlans:          len(d.Plans),
		TableCustomers:      len(d.Customers),
		TableSubscriptions:  len(d.Subscriptions),
		TablePayments:       len(d.Payments),
		TableUsageEvents:    len(d.UsageEvents),
		TableSupportTickets: len(d.SupportTickets),
	}
}
