package billing

import (
	"math"

	"hausverwaltung-backend/models"
)

// Reading is one utility meter pair for a billing cycle.
type Reading struct {
	Previous float64
	Current  float64
}

// Usage is the consumed quantity for the cycle, clamped at zero so a
// reversed pair (current < previous) never produces a negative charge.
func (r Reading) Usage() float64 {
	return math.Max(0, r.Current-r.Previous)
}

// UtilityCharge is the computed breakdown for one utility.
type UtilityCharge struct {
	Usage float64 `json:"usage"`
	Rate  float64 `json:"rate"`
	Cost  float64 `json:"cost"`
}

// Breakdown holds both utility charges for a cycle. Costs are kept at full
// precision here; rounding happens once, when the invoice is assembled.
type Breakdown struct {
	Water       UtilityCharge `json:"water"`
	Electricity UtilityCharge `json:"electricity"`
}

// ProviderTotals are landlord-entered lump amounts for provider-billed
// properties; they bypass the usage computation entirely.
type ProviderTotals struct {
	Water       float64
	Electricity float64
}

// Calculate derives the utility cost breakdown for a billing cycle.
//   - submetered: cost = clamped usage x resolved rate, per utility
//   - provider:   cost = entered lump total, usage/rate stay zero
//   - included:   both costs are zero, utilities are implicit in rent
func Calculate(billingType models.UtilityBillingType, water, electricity Reading, rates Rates, provider ProviderTotals) Breakdown {
	switch billingType {
	case models.BillingProvider:
		return Breakdown{
			Water:       UtilityCharge{Cost: provider.Water},
			Electricity: UtilityCharge{Cost: provider.Electricity},
		}
	case models.BillingIncluded:
		return Breakdown{}
	default: // submetered
		waterUsage := water.Usage()
		elecUsage := electricity.Usage()
		return Breakdown{
			Water: UtilityCharge{
				Usage: waterUsage,
				Rate:  rates.Water,
				Cost:  waterUsage * rates.Water,
			},
			Electricity: UtilityCharge{
				Usage: elecUsage,
				Rate:  rates.Electricity,
				Cost:  elecUsage * rates.Electricity,
			},
		}
	}
}
