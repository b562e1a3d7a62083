package billing

import (
	"errors"

	"hausverwaltung-backend/utils"
)

// ErrMissingUnitData is returned when the unit (and thus its rent) cannot
// be resolved; no partial bill is ever created in that case.
var ErrMissingUnitData = errors.New("unit data missing: rent could not be resolved")

// Charges are the fixed and per-cycle amounts combined with the utility
// breakdown. Rent and association dues come from the unit/property; late
// fee, penalty and discount are landlord-entered for the cycle. Absent
// inputs are simply zero values.
type Charges struct {
	Rent            float64
	AssociationDues float64
	LateFee         float64
	Penalty         float64
	Discount        float64
}

// Invoice is the assembled amount-due breakdown, every figure rounded to
// two decimal places. Total is floored at zero: a discount larger than the
// remaining charges never produces a credit balance.
type Invoice struct {
	WaterCost       float64 `json:"water_cost"`
	ElectricityCost float64 `json:"electricity_cost"`
	Rent            float64 `json:"rent"`
	AssociationDues float64 `json:"association_dues"`
	LateFee         float64 `json:"late_fee"`
	Penalty         float64 `json:"penalty"`
	Discount        float64 `json:"discount"`
	Subtotal        float64 `json:"subtotal"`
	Total           float64 `json:"total_amount_due"`
}

// Assemble combines the utility breakdown with the cycle's charges:
//
//	subtotal = electricity + water + rent + association dues
//	total    = subtotal + late fee + penalty - discount
func Assemble(b Breakdown, ch Charges) Invoice {
	inv := Invoice{
		WaterCost:       utils.Round2(b.Water.Cost),
		ElectricityCost: utils.Round2(b.Electricity.Cost),
		Rent:            utils.Round2(ch.Rent),
		AssociationDues: utils.Round2(ch.AssociationDues),
		LateFee:         utils.Round2(ch.LateFee),
		Penalty:         utils.Round2(ch.Penalty),
		Discount:        utils.Round2(ch.Discount),
	}
	inv.Subtotal = utils.Round2(inv.ElectricityCost + inv.WaterCost + inv.Rent + inv.AssociationDues)
	inv.Total = utils.Round2(inv.Subtotal + inv.LateFee + inv.Penalty - inv.Discount)
	if inv.Total < 0 {
		inv.Total = 0
	}
	return inv
}
