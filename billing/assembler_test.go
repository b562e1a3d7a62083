package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hausverwaltung-backend/utils"
)

func TestAssemble_FullInvoice(t *testing.T) {
	// rent=10000, dues=0, late=0, penalty=200, discount=100,
	// water=131.25, electricity=1581.30 -> total 11812.55
	b := Breakdown{
		Water:       UtilityCharge{Usage: 5.25, Rate: 25, Cost: 131.25},
		Electricity: UtilityCharge{Usage: 150.6, Rate: 10.5, Cost: 1581.30},
	}
	inv := Assemble(b, Charges{
		Rent:     10000,
		Penalty:  200,
		Discount: 100,
	})

	assert.InDelta(t, 131.25, inv.WaterCost, 1e-9)
	assert.InDelta(t, 1581.30, inv.ElectricityCost, 1e-9)
	assert.InDelta(t, 11712.55, inv.Subtotal, 1e-9)
	assert.InDelta(t, 11812.55, inv.Total, 1e-9)
}

func TestAssemble_BlankInputsAreZero(t *testing.T) {
	inv := Assemble(Breakdown{}, Charges{Rent: 5000})
	assert.InDelta(t, 5000, inv.Subtotal, 1e-9)
	assert.InDelta(t, 5000, inv.Total, 1e-9)
	assert.Zero(t, inv.WaterCost)
	assert.Zero(t, inv.LateFee)
}

func TestAssemble_TotalFlooredAtZero(t *testing.T) {
	inv := Assemble(Breakdown{}, Charges{Rent: 100, Discount: 500})
	assert.Zero(t, inv.Total)
}

func TestAssemble_RoundsCostsAtTheBoundary(t *testing.T) {
	// 3.333 m3 * 3 = 9.999 -> rounds to 10.00 only when assembled
	b := Breakdown{Water: UtilityCharge{Usage: 3.333, Rate: 3, Cost: 9.999}}
	inv := Assemble(b, Charges{})
	assert.InDelta(t, 10.00, inv.WaterCost, 1e-9)
	assert.InDelta(t, 10.00, inv.Total, 1e-9)
}

// Recomputing the total from the assembled components must reproduce the
// assembled total exactly (round-trip consistency of persisted bills).
func TestAssemble_RoundTripConsistency(t *testing.T) {
	cases := []struct {
		b  Breakdown
		ch Charges
	}{
		{
			Breakdown{
				Water:       UtilityCharge{Cost: 131.25},
				Electricity: UtilityCharge{Cost: 1581.30},
			},
			Charges{Rent: 10000, Penalty: 200, Discount: 100},
		},
		{
			Breakdown{Water: UtilityCharge{Cost: 0.004}},
			Charges{Rent: 123.456, AssociationDues: 78.9, LateFee: 1.005},
		},
		{Breakdown{}, Charges{}},
	}
	for _, tc := range cases {
		inv := Assemble(tc.b, tc.ch)
		recomputed := utils.Round2(inv.WaterCost + inv.ElectricityCost + inv.Rent +
			inv.AssociationDues + inv.LateFee + inv.Penalty - inv.Discount)
		if recomputed < 0 {
			recomputed = 0
		}
		assert.Equal(t, recomputed, inv.Total)
	}
}
