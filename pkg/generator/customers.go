package generator

import (
	"math"

	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

var industries = []string{
	"Technology", "Healthcare", "Finance", "Retail", "Education",
	"Manufacturing", "Consulting", "Real Estate", "Media", "Other",
}

var segmentWeights = []float64{0.6, 0.3, 0.1}

var segments = []saas.CustomerSegment{
	saas.SegmentSMB, saas.SegmentMidMarket, saas.SegmentEnterprise,
}

var companySizes = []string{"Small", "Medium", "Large"}

const (
	churnRate          = 0.05
	seasonalAmplitude  = 30.0
	minChurnOffsetDays = 30
	maxChurnOffsetDays = 365
)

// Customers generates n customer records. Signup dates spread linearly across
// the horizon with a sinusoidal perturbation emulating seasonal signup bursts;
// 5% of customers churn with an end date between 30 and 365 days after signup.
func (g *Generator) Customers(n int) []saas.Customer {
	g.logger.WithField("count", n).Info("generating customer records")
	bar := g.newBar(n, "customers")

	horizonDays := daysBetween(g.cfg.HorizonStart, g.cfg.HorizonEnd)

	customers := make([]saas.Customer, 0, n)
	for i := 0; i < n; i++ {
		segment := segments[g.weightedIndex(segmentWeights)]

		// Two full sine periods across the horizon.
		phase := 0.0
		if n > 1 {
			phase = float64(i) * 4 * math.Pi / float64(n-1)
		}
		seasonal := math.Sin(phase) * seasonalAmplitude
		dayOffset := int(float64(i)*float64(horizonDays)/float64(n) + seasonal)
		if dayOffset < 0 {
			dayOffset = 0
		}
		if dayOffset > horizonDays {
			dayOffset = horizonDays
		}
		signupDate := addDays(g.cfg.HorizonStart, dayOffset)

		hasChurned := g.rng.Float64() < churnRate

		customer := saas.Customer{
			CustomerID:    int64(i + 1),
			SignupDate:    signupDate,
			AccountStatus: saas.AccountStatusActive,
			CreatedAt:     signupDate,
		}
		if hasChurned {
			churnDays := g.intBetween(minChurnOffsetDays, maxChurnOffsetDays)
			end := minTime(addDays(signupDate, churnDays), g.cfg.HorizonEnd)
			customer.EndDate = &end
			customer.AccountStatus = saas.AccountStatusChurned
			customer.UpdatedAt = end
		} else {
			customer.UpdatedAt = minTime(addDays(signupDate, g.intBetween(0, 90)), g.cfg.HorizonEnd)
		}

		customer.Email = g.fakeEmail(customer.CustomerID)
		customer.CompanyName = g.fakeCompany()
		customer.Industry = industries[g.rng.Intn(len(industries))]
		customer.CompanySize = g.companySize(segment)
		customer.Country = g.fakeCountry()

		customers = append(customers, customer)
		_ = bar.Add(1)
	}
	return customers
}

// companySize maps segment to company size: enterprise accounts are always
// large, everyone else draws uniformly.
func (g *Generator) companySize(segment saas.CustomerSegment) string {
	if segment == saas.SegmentEnterprise {
		return "Large"
	}
	return companySizes[g.rng.Intn(len(companySizes))]
}
