package generator

import (
	"time"

	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

var subscriptionStatuses = []saas.SubscriptionStatus{
	saas.SubscriptionStatusActive,
	saas.SubscriptionStatusPaused,
	saas.SubscriptionStatusChurned,
	saas.SubscriptionStatusUpgraded,
	saas.SubscriptionStatusDowngraded,
}

var subscriptionStatusWeights = []float64{0.70, 0.05, 0.15, 0.05, 0.05}

const (
	monthlyCycleRate = 0.7

	maxChurnedLifetimeDays = 730
	minChurnedLifetimeDays = 30
	maxChangedLifetimeDays = 365
	minChangedLifetimeDays = 60
	maxPausedLifetimeDays  = 180
	minPausedLifetimeDays  = 30
)

// Subscriptions generates m subscription records against the given customers
// and plan catalog. Customers are drawn round-robin from a shuffled pool in
// which active customers appear five times as often as churned ones, so active
// accounts accumulate more subscriptions.
//
// Status resolution order: a churned customer forces any subscription started
// before the customer's churn date into churned status ending on that date;
// only otherwise is the status drawn probabilistically.
func (g *Generator) Subscriptions(customers []saas.Customer, plans []saas.Plan, m int) []saas.Subscription {
	g.logger.WithField("count", m).Info("generating subscription records")
	bar := g.newBar(m, "subscriptions")

	byID := make(map[int64]*saas.Customer, len(customers))
	for i := range customers {
		byID[customers[i].CustomerID] = &customers[i]
	}

	pool := g.customerPool(customers, 5)

	// Subscriptions that begin after their customer already churned escape
	// the churn override. The sampled pool permits these; keep them but
	// surface the count as a realism gap.
	startedAfterChurn := 0

	subscriptions := make([]saas.Subscription, 0, m)
	for i := 0; i < m; i++ {
		customer := byID[pool[i%len(pool)]]

		startDate := customer.SignupDate
		if maxOffset := daysBetween(customer.SignupDate, g.cfg.HorizonEnd); maxOffset > 0 {
			startDate = addDays(customer.SignupDate, g.rng.Intn(maxOffset))
		}

		plan := plans[g.rng.Intn(len(plans))]

		cycle := saas.BillingCycleAnnual
		if g.rng.Float64() < monthlyCycleRate {
			cycle = saas.BillingCycleMonthly
		}
		amount := plan.BasePriceMonthly
		if cycle == saas.BillingCycleAnnual {
			amount = plan.BasePriceAnnual
		}

		sub := saas.Subscription{
			SubscriptionID: int64(i + 1),
			CustomerID:     customer.CustomerID,
			PlanID:         plan.PlanID,
			StartDate:      startDate,
			MRRAmount:      saas.MRR(amount, cycle),
			BillingCycle:   cycle,
			Amount:         amount,
			CreatedAt:      startDate,
		}

		if customer.EndDate != nil && startDate.Before(*customer.EndDate) {
			// Customer churn dominates subscription state.
			sub.Status = saas.SubscriptionStatusChurned
			end := *customer.EndDate
			sub.EndDate = &end
		} else {
			if customer.EndDate != nil {
				startedAfterChurn++
			}
			sub.Status = subscriptionStatuses[g.weightedIndex(subscriptionStatusWeights)]
			sub.EndDate = g.subscriptionEndDate(sub.Status, startDate, customer.EndDate)
		}

		if sub.EndDate != nil {
			sub.UpdatedAt = minTime(*sub.EndDate, g.cfg.HorizonEnd)
		} else {
			sub.UpdatedAt = minTime(addDays(startDate, g.intBetween(0, 30)), g.cfg.HorizonEnd)
		}

		subscriptions = append(subscriptions, sub)
		_ = bar.Add(1)
	}

	if startedAfterChurn > 0 {
		g.logger.WithField("count", startedAfterChurn).
			Warn("subscriptions start after their customer's churn date")
	}
	return subscriptions
}

// customerPool builds the weighted draw pool: active customer IDs repeated
// weight times, churned customer IDs once, shuffled.
func (g *Generator) customerPool(customers []saas.Customer, weight int) []int64 {
	var active, churned []int64
	for _, c := range customers {
		if c.AccountStatus == saas.AccountStatusActive {
			active = append(active, c.CustomerID)
		} else {
			churned = append(churned, c.CustomerID)
		}
	}

	pool := make([]int64, 0, len(active)*weight+len(churned))
	for i := 0; i < weight; i++ {
		pool = append(pool, active...)
	}
	pool = append(pool, churned...)
	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool
}

// subscriptionEndDate draws the end date for a probabilistically assigned
// status. Lifetime windows are status-specific and capped by the customer's
// churn date (churned status only) or the horizon end; when the available
// window is at or below the minimum lifetime, the end date collapses to the
// applicable ceiling.
func (g *Generator) subscriptionEndDate(status saas.SubscriptionStatus, startDate time.Time, customerEnd *time.Time) *time.Time {
	var end time.Time
	switch status {
	case saas.SubscriptionStatusChurned:
		maxEnd := g.cfg.HorizonEnd
		if customerEnd != nil {
			maxEnd = *customerEnd
		}
		maxActiveDays := daysBetween(startDate, maxEnd)
		if maxActiveDays > maxChurnedLifetimeDays {
			maxActiveDays = maxChurnedLifetimeDays
		}
		if maxActiveDays <= minChurnedLifetimeDays {
			end = maxEnd
		} else {
			end = minTime(addDays(startDate, g.intBetween(minChurnedLifetimeDays, maxActiveDays)), maxEnd)
		}
	case saas.SubscriptionStatusUpgraded, saas.SubscriptionStatusDowngraded:
		// Transition to a successor subscription; the successor itself is
		// not modeled.
		maxActiveDays := daysBetween(startDate, g.cfg.HorizonEnd)
		if maxActiveDays > maxChangedLifetimeDays {
			maxActiveDays = maxChangedLifetimeDays
		}
		if maxActiveDays <= minChangedLifetimeDays {
			end = g.cfg.HorizonEnd
		} else {
			end = minTime(addDays(startDate, g.intBetween(minChangedLifetimeDays, maxActiveDays)), g.cfg.HorizonEnd)
		}
	case saas.SubscriptionStatusPaused:
		maxActiveDays := daysBetween(startDate, g.cfg.HorizonEnd)
		if maxActiveDays > maxPausedLifetimeDays {
			maxActiveDays = maxPausedLifetimeDays
		}
		if maxActiveDays <= minPausedLifetimeDays {
			end = g.cfg.HorizonEnd
		} else {
			end = minTime(addDays(startDate, g.intBetween(minPausedLifetimeDays, maxActiveDays)), g.cfg.HorizonEnd)
		}
	default:
		return nil
	}
	return &end
}
