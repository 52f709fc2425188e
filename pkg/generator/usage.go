package generator

import (
	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

var eventTypes = []saas.EventType{
	saas.EventTypeLogin,
	saas.EventTypeFeatureUsage,
	saas.EventTypeExport,
	saas.EventTypeAPICall,
}

var eventTypeWeights = []float64{0.4, 0.3, 0.15, 0.15}

// UsageEvents generates up to e usage event records. The customer pool
// concatenates the active-customer list three extra times with the full
// customer list before shuffling, so active accounts log disproportionately
// more events. Active customers additionally multiply their base usage
// quantity, encoding the usage-retention correlation.
func (g *Generator) UsageEvents(customers []saas.Customer, e int) ([]saas.UsageEvent, GenStats) {
	g.logger.WithField("count", e).Info("generating usage event records")
	bar := g.newBar(e, "usage events")

	byID := make(map[int64]*saas.Customer, len(customers))
	var activeIDs []int64
	for i := range customers {
		c := &customers[i]
		byID[c.CustomerID] = c
		if c.AccountStatus == saas.AccountStatusActive {
			activeIDs = append(activeIDs, c.CustomerID)
		}
	}

	pool := make([]int64, 0, len(activeIDs)*3+len(customers))
	for i := 0; i < 3; i++ {
		pool = append(pool, activeIDs...)
	}
	for i := range customers {
		pool = append(pool, customers[i].CustomerID)
	}
	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	events := make([]saas.UsageEvent, 0, e)
	eventID := int64(1)
	for i := 0; i < e; i++ {
		_ = bar.Add(1)
		customer := byID[pool[i%len(pool)]]

		windowStart, windowEnd := customer.Window(g.cfg.HorizonEnd)
		windowDays := daysBetween(windowStart, windowEnd)
		if windowDays < 1 {
			continue
		}

		eventDate := addDays(windowStart, g.rng.Intn(windowDays))
		eventType := eventTypes[g.weightedIndex(eventTypeWeights)]

		baseQuantity := 1
		if eventType != saas.EventTypeLogin {
			baseQuantity = g.intBetween(1, 100)
		}
		quantity := baseQuantity
		if customer.AccountStatus == saas.AccountStatusActive {
			quantity = baseQuantity * g.intBetween(1, 5)
		}

		events = append(events, saas.UsageEvent{
			EventID:       eventID,
			CustomerID:    customer.CustomerID,
			EventDate:     eventDate,
			EventType:     eventType,
			UsageQuantity: quantity,
			CreatedAt:     eventDate,
		})
		eventID++
	}

	return events, GenStats{Requested: e, Realized: len(events)}
}
