package saas

import "math"

// AnnualDiscount is the discount applied to annual billing relative to
// twelve months of monthly billing.
const AnnualDiscount = 0.2

// TierPricing defines the catalog shape for one plan tier: how many plan
// variants exist and which discrete price and seat-cap choices they draw from.
type TierPricing struct {
	Tier            PlanTier
	VariantCount    int
	MonthlyPrices   []float64
	MaxUsersChoices []int
}

// DefaultTierPricing returns the catalog definition for each plan tier.
func DefaultTierPricing() map[PlanTier]TierPricing {
	return map[PlanTier]TierPricing{
		PlanTierStarter: {
			Tier:            PlanTierStarter,
			VariantCount:    2,
			MonthlyPrices:   []float64{29, 49, 79},
			MaxUsersChoices: []int{5, 10},
		},
		PlanTierProfessional: {
			Tier:            PlanTierProfessional,
			VariantCount:    3,
			MonthlyPrices:   []float64{99, 149, 199},
			MaxUsersChoices: []int{25, 50},
		},
		PlanTierEnterprise: {
			Tier:            PlanTierEnterprise,
			VariantCount:    1,
			MonthlyPrices:   []float64{499, 799, 999},
			MaxUsersChoices: []int{999},
		},
	}
}

// AnnualPrice returns the annual price for a monthly base price with the
// standard annual discount applied.
func AnnualPrice(monthly float64) float64 {
	return math.Trunc(monthly * 12 * (1 - AnnualDiscount))
}

// MRR returns the monthly recurring revenue normalized from the charged
// price for the given billing cycle, rounded to cents.
func MRR(chargedAmount float64, cycle BillingCycle) float64 {
	if cycle == BillingCycleAnnual {
		return Round2(chargedAmount / 12)
	}
	return Round2(chargedAmount)
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
