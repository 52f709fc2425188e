package generator

import (
	"fmt"
	"strings"

	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

// Plans generates the static plan catalog dimension: a tier-specific number
// of variants per tier, each with a price and seat cap drawn from the tier's
// discrete choice sets. The catalog is dated one year before the horizon so
// every subscription can reference an existing plan.
func (g *Generator) Plans() []saas.Plan {
	g.logger.Info("generating plan catalog")

	pricing := saas.DefaultTierPricing()
	createdDate := addDays(g.cfg.HorizonStart, -365)

	var plans []saas.Plan
	planID := int64(1)
	for _, tier := range saas.PlanTiers() {
		tp := pricing[tier]
		for i := 0; i < tp.VariantCount; i++ {
			monthly := tp.MonthlyPrices[g.rng.Intn(len(tp.MonthlyPrices))]
			maxUsers := tp.MaxUsersChoices[g.rng.Intn(len(tp.MaxUsersChoices))]

			name := titleCase(string(tier))
			if i > 0 {
				name = fmt.Sprintf("%s %d", name, i+1)
			}

			plans = append(plans, saas.Plan{
				PlanID:           planID,
				PlanName:         name,
				PlanTier:         tier,
				BasePriceMonthly: monthly,
				BasePriceAnnual:  saas.AnnualPrice(monthly),
				Features:         fmt.Sprintf("Features for %s plan", tier),
				MaxUsers:         maxUsers,
				CreatedDate:      createdDate,
			})
			planID++
		}
	}
	return plans
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
