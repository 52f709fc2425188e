package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

func TestUsageEventsWithinCustomerWindow(t *testing.T) {
	gen := newTestGenerator()
	customers := gen.Customers(gen.Config().NumCustomers)
	events, stats := gen.UsageEvents(customers, gen.Config().NumUsageEvents)
	require.NotEmpty(t, events)
	assert.Equal(t, len(events), stats.Realized)

	byID := make(map[int64]saas.Customer, len(customers))
	for _, c := range customers {
		byID[c.CustomerID] = c
	}

	for _, e := range events {
		customer, ok := byID[e.CustomerID]
		require.True(t, ok, "event %d references unknown customer", e.EventID)

		windowStart, windowEnd := customer.Window(gen.Config().HorizonEnd)
		assert.False(t, e.EventDate.Before(windowStart),
			"event %d before customer signup", e.EventID)
		assert.True(t, e.EventDate.Before(windowEnd),
			"event %d after customer window end", e.EventID)
		assert.Positive(t, e.UsageQuantity)
	}
}

func TestUsageEventsChurnedLoginQuantityUnmultiplied(t *testing.T) {
	gen := newTestGenerator()
	customers := gen.Customers(gen.Config().NumCustomers)
	events, _ := gen.UsageEvents(customers, gen.Config().NumUsageEvents)

	byID := make(map[int64]saas.Customer, len(customers))
	for _, c := range customers {
		byID[c.CustomerID] = c
	}

	for _, e := range events {
		if e.EventType != saas.EventTypeLogin {
			continue
		}
		if byID[e.CustomerID].AccountStatus == saas.AccountStatusChurned {
			assert.Equal(t, 1, e.UsageQuantity,
				"churned customer login %d must not be multiplied", e.EventID)
		} else {
			assert.LessOrEqual(t, e.UsageQuantity, 4)
		}
	}
}

func TestUsageEventsFavorActiveCustomers(t *testing.T) {
	gen := newTestGenerator()
	customers := gen.Customers(gen.Config().NumCustomers)
	events, _ := gen.UsageEvents(customers, gen.Config().NumUsageEvents)

	byID := make(map[int64]saas.Customer, len(customers))
	active, churned := 0, 0
	for _, c := range customers {
		byID[c.CustomerID] = c
		if c.AccountStatus == saas.AccountStatusActive {
			active++
		} else {
			churned++
		}
	}
	if churned == 0 {
		t.Skip("sample produced no churned customers")
	}

	activeEvents, churnedEvents := 0, 0
	for _, e := range events {
		if byID[e.CustomerID].AccountStatus == saas.AccountStatusActive {
			activeEvents++
		} else {
			churnedEvents++
		}
	}
	// Active customers appear four times as often in the draw pool; their
	// per-customer event rate must clearly exceed the churned rate.
	activeRate := float64(activeEvents) / float64(active)
	churnedRate := float64(churnedEvents) / float64(churned)
	assert.Greater(t, activeRate, churnedRate)
}

func TestUsageEventsEventTypeDistributionCovered(t *testing.T) {
	gen := newTestGenerator()
	customers := gen.Customers(gen.Config().NumCustomers)
	events, _ := gen.UsageEvents(customers, gen.Config().NumUsageEvents)

	seen := make(map[saas.EventType]int)
	for _, e := range events {
		seen[e.EventType]++
	}
	for _, et := range eventTypes {
		assert.Greater(t, seen[et], 0, "event type %s never generated", et)
	}
}
