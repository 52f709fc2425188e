package warehouse

import (
	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

// column pairs a column name with its SQL type for the loaded table DDL.
// The types are the portable subset accepted by both sqlite and postgres.
type column struct {
	name    string
	sqlType string
}

// tableSpec describes how one dataset table maps onto its CSV file and its
// warehouse table: header/column order and row rendering.
type tableSpec struct {
	name    string
	columns []column
	records func(*saas.Dataset) [][]string
}

func (s tableSpec) header() []string {
	h := make([]string, len(s.columns))
	for i, c := range s.columns {
		h[i] = c.name
	}
	return h
}

func loadSpecs() []tableSpec {
	return []tableSpec{
		{
			name: saas.TablePlans,
			columns: []column{
				{"plan_id", "INTEGER"},
				{"plan_name", "TEXT"},
				{"plan_tier", "TEXT"},
				{"base_price_monthly", "REAL"},
				{"base_price_annual", "REAL"},
				{"features", "TEXT"},
				{"max_users", "INTEGER"},
				{"created_date", "TIMESTAMP"},
			},
			records: func(ds *saas.Dataset) [][]string {
				recs := make([][]string, 0, len(ds.Plans))
				for _, p := range ds.Plans {
					recs = append(recs, []string{
						formatInt(p.PlanID),
						p.PlanName,
						string(p.PlanTier),
						formatFloat(p.BasePriceMonthly),
						formatFloat(p.BasePriceAnnual),
						p.Features,
						formatInt(int64(p.MaxUsers)),
						formatTime(p.CreatedDate),
					})
				}
				return recs
			},
		},
		{
			name: saas.TableCustomers,
			columns: []column{
				{"customer_id", "INTEGER"},
				{"email", "TEXT"},
				{"company_name", "TEXT"},
				{"signup_date", "TIMESTAMP"},
				{"end_date", "TIMESTAMP"},
				{"account_status", "TEXT"},
				{"industry", "TEXT"},
				{"company_size", "TEXT"},
				{"country", "TEXT"},
				{"created_at", "TIMESTAMP"},
				{"updated_at", "TIMESTAMP"},
			},
			records: func(ds *saas.Dataset) [][]string {
				recs := make([][]string, 0, len(ds.Customers))
				for _, c := range ds.Customers {
					recs = append(recs, []string{
						formatInt(c.CustomerID),
						c.Email,
						c.CompanyName,
						formatTime(c.SignupDate),
						formatTimePtr(c.EndDate),
						string(c.AccountStatus),
						c.Industry,
						c.CompanySize,
						c.Country,
						formatTime(c.CreatedAt),
						formatTime(c.UpdatedAt),
					})
				}
				return recs
			},
		},
		{
			name: saas.TableSubscriptions,
			columns: []column{
				{"subscription_id", "INTEGER"},
				{"customer_id", "INTEGER"},
				{"plan_id", "INTEGER"},
				{"start_date", "TIMESTAMP"},
				{"end_date", "TIMESTAMP"},
				{"status", "TEXT"},
				{"mrr_amount", "REAL"},
				{"billing_cycle", "TEXT"},
				{"amount", "REAL"},
				{"created_at", "TIMESTAMP"},
				{"updated_at", "TIMESTAMP"},
			},
			records: func(ds *saas.Dataset) [][]string {
				recs := make([][]string, 0, len(ds.Subscriptions))
				for _, s := range ds.Subscriptions {
					recs = append(recs, []string{
						formatInt(s.SubscriptionID),
						formatInt(s.CustomerID),
						formatInt(s.PlanID),
						formatTime(s.StartDate),
						formatTimePtr(s.EndDate),
						string(s.Status),
						formatFloat(s.MRRAmount),
						string(s.BillingCycle),
						formatFloat(s.Amount),
						formatTime(s.CreatedAt),
						formatTime(s.UpdatedAt),
					})
				}
				return recs
			},
		},
		{
			name: saas.TablePayments,
			columns: []column{
				{"payment_id", "INTEGER"},
				{"subscription_id", "INTEGER"},
				{"payment_date", "TIMESTAMP"},
				{"amount", "REAL"},
				{"status", "TEXT"},
				{"payment_method", "TEXT"},
				{"created_at", "TIMESTAMP"},
			},
			records: func(ds *saas.Dataset) [][]string {
				recs := make([][]string, 0, len(ds.Payments))
				for _, p := range ds.Payments {
					recs = append(recs, []string{
						formatInt(p.PaymentID),
						formatInt(p.SubscriptionID),
						formatTime(p.PaymentDate),
						formatFloat(p.Amount),
						string(p.Status),
						string(p.PaymentMethod),
						formatTime(p.CreatedAt),
					})
				}
				return recs
			},
		},
		{
			name: saas.TableUsageEvents,
			columns: []column{
				{"event_id", "INTEGER"},
				{"customer_id", "INTEGER"},
				{"event_date", "TIMESTAMP"},
				{"event_type", "TEXT"},
				{"usage_quantity", "INTEGER"},
				{"created_at", "TIMESTAMP"},
			},
			records: func(ds *saas.Dataset) [][]string {
				recs := make([][]string, 0, len(ds.UsageEvents))
				for _, e := range ds.UsageEvents {
					recs = append(recs, []string{
						formatInt(e.EventID),
						formatInt(e.CustomerID),
						formatTime(e.EventDate),
						string(e.EventType),
						formatInt(int64(e.UsageQuantity)),
						formatTime(e.CreatedAt),
					})
				}
				return recs
			},
		},
		{
			name: saas.TableSupportTickets,
			columns: []column{
				{"ticket_id", "INTEGER"},
				{"customer_id", "INTEGER"},
				{"created_date", "TIMESTAMP"},
				{"resolved_date", "TIMESTAMP"},
				{"category", "TEXT"},
				{"priority", "TEXT"},
				{"satisfaction_score", "INTEGER"},
				{"created_at", "TIMESTAMP"},
			},
			records: func(ds *saas.Dataset) [][]string {
				recs := make([][]string, 0, len(ds.SupportTickets))
				for _, t := range ds.SupportTickets {
					recs = append(recs, []string{
						formatInt(t.TicketID),
						formatInt(t.CustomerID),
						formatTime(t.CreatedDate),
						formatTimePtr(t.ResolvedDate),
						string(t.Category),
						string(t.Priority),
						formatIntPtr(t.SatisfactionScore),
						formatTime(t.CreatedAt),
					})
				}
				return recs
			},
		},
	}
}
