package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strOf(s string) *string { return &s }

func TestPropertyAmountUpdates(t *testing.T) {
	t.Run("string amounts become rounded column values", func(t *testing.T) {
		in := PropertyUpdateDTO{
			AssociationDues: strOf("1250.506"),
			LateFee:         strOf("75"),
		}
		amounts, err := propertyAmountUpdates(&in)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{
			"association_dues": 1250.51,
			"late_fee":         75.0,
		}, amounts)
	})

	t.Run("omitted fields stay out of the patch", func(t *testing.T) {
		in := PropertyUpdateDTO{LateFee: strOf("10.25")}
		amounts, err := propertyAmountUpdates(&in)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"late_fee": 10.25}, amounts)
	})

	t.Run("non-numeric amount is rejected", func(t *testing.T) {
		in := PropertyUpdateDTO{AssociationDues: strOf("abc")}
		_, err := propertyAmountUpdates(&in)
		assert.Error(t, err)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		in := PropertyUpdateDTO{LateFee: strOf("-5")}
		_, err := propertyAmountUpdates(&in)
		assert.Error(t, err)
	})
}
