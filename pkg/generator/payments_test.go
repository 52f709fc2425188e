package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

func generatePayments(t *testing.T, gen *Generator) ([]saas.Subscription, []saas.Payment, GenStats) {
	t.Helper()
	plans := gen.Plans()
	customers := gen.Customers(gen.Config().NumCustomers)
	subs := gen.Subscriptions(customers, plans, gen.Config().NumSubscriptions)
	payments, stats := gen.Payments(subs, gen.Config().NumPayments)
	return subs, payments, stats
}

func TestPaymentsRefundSign(t *testing.T) {
	gen := newTestGenerator()
	_, payments, _ := generatePayments(t, gen)
	require.NotEmpty(t, payments)

	for _, p := range payments {
		if p.Status == saas.PaymentStatusRefunded {
			assert.Negative(t, p.Amount, "refunded payment %d must be negative", p.PaymentID)
		} else {
			assert.Positive(t, p.Amount, "payment %d (%s) must be positive", p.PaymentID, p.Status)
		}
	}
}

func TestPaymentsOnlyAgainstEligibleSubscriptions(t *testing.T) {
	gen := newTestGenerator()
	subs, payments, _ := generatePayments(t, gen)

	byID := make(map[int64]saas.Subscription, len(subs))
	for _, s := range subs {
		byID[s.SubscriptionID] = s
	}

	for _, p := range payments {
		sub, ok := byID[p.SubscriptionID]
		require.True(t, ok, "payment %d references unknown subscription", p.PaymentID)

		switch sub.Status {
		case saas.SubscriptionStatusActive, saas.SubscriptionStatusPaused:
		case saas.SubscriptionStatusChurned:
			assert.NotNil(t, sub.EndDate,
				"payment %d against churned subscription with no end date", p.PaymentID)
		default:
			t.Errorf("payment %d against ineligible subscription status %s", p.PaymentID, sub.Status)
		}

		windowEnd := gen.Config().HorizonEnd
		if sub.EndDate != nil {
			windowEnd = *sub.EndDate
		}
		assert.False(t, p.PaymentDate.Before(sub.StartDate),
			"payment %d before subscription start", p.PaymentID)
		assert.True(t, p.PaymentDate.Before(windowEnd),
			"payment %d after subscription window", p.PaymentID)
	}
}

func TestPaymentsRequestedVersusRealized(t *testing.T) {
	gen := newTestGenerator()
	_, payments, stats := generatePayments(t, gen)

	assert.Equal(t, gen.Config().NumPayments, stats.Requested)
	assert.Equal(t, len(payments), stats.Realized)
	assert.LessOrEqual(t, stats.Realized, stats.Requested)
}

func TestPaymentsNoEligibleSubscriptions(t *testing.T) {
	gen := newTestGenerator()
	payments, stats := gen.Payments(nil, 10)
	assert.Empty(t, payments)
	assert.Equal(t, 10, stats.Requested)
	assert.Zero(t, stats.Realized)
}
