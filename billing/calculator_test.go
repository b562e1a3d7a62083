package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hausverwaltung-backend/models"
)

func TestReadingUsage_NeverNegative(t *testing.T) {
	cases := []struct {
		name     string
		previous float64
		current  float64
		want     float64
	}{
		{"normal", 100.5, 105.75, 5.25},
		{"equal", 50, 50, 0},
		{"reversed", 2650.8, 2500.2, 0},
		{"zero pair", 0, 0, 0},
		{"fresh meter", 0, 12.5, 12.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reading{Previous: tc.previous, Current: tc.current}.Usage()
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestCalculate_SubmeteredWater(t *testing.T) {
	// water prev=100.5 current=105.75 rate=25.0 -> cost 131.25
	b := Calculate(models.BillingSubmetered,
		Reading{Previous: 100.5, Current: 105.75},
		Reading{},
		Rates{Water: 25.0},
		ProviderTotals{},
	)
	assert.InDelta(t, 5.25, b.Water.Usage, 1e-9)
	assert.InDelta(t, 131.25, b.Water.Cost, 1e-9)
	assert.InDelta(t, 0, b.Electricity.Cost, 1e-9)
}

func TestCalculate_ReversedElectricityClampsToZero(t *testing.T) {
	// prev=2650.8 current=2500.2 rate=10.5 -> usage 0, cost 0.00
	b := Calculate(models.BillingSubmetered,
		Reading{},
		Reading{Previous: 2650.8, Current: 2500.2},
		Rates{Electricity: 10.5},
		ProviderTotals{},
	)
	assert.Zero(t, b.Electricity.Usage)
	assert.Zero(t, b.Electricity.Cost)
}

func TestCalculate_ProviderBypassesUsage(t *testing.T) {
	b := Calculate(models.BillingProvider,
		Reading{Previous: 1, Current: 9}, // readings must be ignored
		Reading{Previous: 2, Current: 8},
		Rates{Water: 25, Electricity: 10},
		ProviderTotals{Water: 340.10, Electricity: 1200.55},
	)
	assert.InDelta(t, 340.10, b.Water.Cost, 1e-9)
	assert.InDelta(t, 1200.55, b.Electricity.Cost, 1e-9)
	assert.Zero(t, b.Water.Usage)
	assert.Zero(t, b.Electricity.Usage)
	assert.Zero(t, b.Water.Rate)
}

func TestCalculate_IncludedIsAllZero(t *testing.T) {
	b := Calculate(models.BillingIncluded,
		Reading{Previous: 100, Current: 200},
		Reading{Previous: 100, Current: 200},
		Rates{Water: 25, Electricity: 10},
		ProviderTotals{Water: 500, Electricity: 500},
	)
	assert.Equal(t, Breakdown{}, b)
}
