package generator

import (
	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

var paymentStatuses = []saas.PaymentStatus{
	saas.PaymentStatusSuccess,
	saas.PaymentStatusFailed,
	saas.PaymentStatusRefunded,
}

var paymentStatusWeights = []float64{0.92, 0.05, 0.03}

var paymentMethods = []saas.PaymentMethod{
	saas.PaymentMethodCreditCard,
	saas.PaymentMethodBankTransfer,
	saas.PaymentMethodPayPal,
}

// Payments generates up to p payment records by sampling eligible
// subscriptions uniformly with replacement. Eligible subscriptions are active,
// paused, or churned with a known end date. Draws whose active window is
// under one day produce no row, so the realized count may fall below p.
func (g *Generator) Payments(subscriptions []saas.Subscription, p int) ([]saas.Payment, GenStats) {
	g.logger.WithField("count", p).Info("generating payment records")
	bar := g.newBar(p, "payments")

	var eligible []*saas.Subscription
	for i := range subscriptions {
		s := &subscriptions[i]
		switch s.Status {
		case saas.SubscriptionStatusActive, saas.SubscriptionStatusPaused:
			eligible = append(eligible, s)
		case saas.SubscriptionStatusChurned:
			if s.EndDate != nil {
				eligible = append(eligible, s)
			}
		}
	}
	if len(eligible) == 0 {
		g.logger.Warn("no payment-eligible subscriptions")
		return nil, GenStats{Requested: p}
	}

	payments := make([]saas.Payment, 0, p)
	paymentID := int64(1)
	for i := 0; i < p; i++ {
		_ = bar.Add(1)
		sub := eligible[g.rng.Intn(len(eligible))]

		windowEnd := g.cfg.HorizonEnd
		if sub.EndDate != nil {
			windowEnd = *sub.EndDate
		}
		windowDays := daysBetween(sub.StartDate, windowEnd)
		if windowDays < 1 {
			continue
		}

		paymentDate := addDays(sub.StartDate, g.rng.Intn(windowDays))
		status := paymentStatuses[g.weightedIndex(paymentStatusWeights)]

		amount := sub.Amount
		if status == saas.PaymentStatusRefunded {
			amount = -amount
		}

		payments = append(payments, saas.Payment{
			PaymentID:      paymentID,
			SubscriptionID: sub.SubscriptionID,
			PaymentDate:    paymentDate,
			Amount:         amount,
			Status:         status,
			PaymentMethod:  paymentMethods[g.rng.Intn(len(paymentMethods))],
			CreatedAt:      paymentDate,
		})
		paymentID++
	}

	return payments, GenStats{Requested: p, Realized: len(payments)}
}
