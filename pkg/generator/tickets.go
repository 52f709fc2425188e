package generator

import (
	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

var ticketCategories = []saas.TicketCategory{
	saas.TicketCategoryBilling,
	saas.TicketCategoryTechnical,
	saas.TicketCategoryFeatureRequest,
	saas.TicketCategoryOther,
}

var ticketPriorities = []saas.TicketPriority{
	saas.TicketPriorityLow,
	saas.TicketPriorityMedium,
	saas.TicketPriorityHigh,
	saas.TicketPriorityUrgent,
}

var satisfactionScoreWeights = []float64{0.10, 0.15, 0.30, 0.35, 0.10}

const (
	ticketResolutionRate    = 0.8
	meanResolutionDays      = 3.0
	maxResolutionDays       = 30.0
	ticketResolvedScoreBase = 1
)

// SupportTickets generates up to t support ticket records against uniformly
// sampled customers. 80% of tickets resolve, with the resolution delay drawn
// from an exponential distribution (mean 3 days, capped at 30) and clamped to
// the customer's window end. Unresolved tickets carry no satisfaction score.
func (g *Generator) SupportTickets(customers []saas.Customer, t int) ([]saas.SupportTicket, GenStats) {
	g.logger.WithField("count", t).Info("generating support ticket records")
	bar := g.newBar(t, "support tickets")

	tickets := make([]saas.SupportTicket, 0, t)
	ticketID := int64(1)
	for i := 0; i < t; i++ {
		_ = bar.Add(1)
		customer := &customers[g.rng.Intn(len(customers))]

		windowStart, windowEnd := customer.Window(g.cfg.HorizonEnd)
		windowDays := daysBetween(windowStart, windowEnd)
		if windowDays < 1 {
			continue
		}

		createdDate := addDays(windowStart, g.rng.Intn(windowDays))

		ticket := saas.SupportTicket{
			TicketID:    ticketID,
			CustomerID:  customer.CustomerID,
			CreatedDate: createdDate,
			Category:    ticketCategories[g.rng.Intn(len(ticketCategories))],
			Priority:    ticketPriorities[g.rng.Intn(len(ticketPriorities))],
			CreatedAt:   createdDate,
		}

		if g.rng.Float64() < ticketResolutionRate {
			resolutionDays := g.rng.ExpFloat64() * meanResolutionDays
			if resolutionDays > maxResolutionDays {
				resolutionDays = maxResolutionDays
			}
			resolved := minTime(addDays(createdDate, int(resolutionDays)), windowEnd)
			ticket.ResolvedDate = &resolved

			score := ticketResolvedScoreBase + g.weightedIndex(satisfactionScoreWeights)
			ticket.SatisfactionScore = &score
		}

		tickets = append(tickets, ticket)
		ticketID++
	}

	return tickets, GenStats{Requested: t, Realized: len(tickets)}
}
