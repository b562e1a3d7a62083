package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func netOf(v float64) *float64 { return &v }

func TestItemNet_FallsBackToGrossAmount(t *testing.T) {
	withNet := Item{Amount: 100, NetAmount: netOf(97.5)}
	assert.Equal(t, 97.5, withNet.Net())

	manual := Item{Amount: 100}
	assert.Equal(t, 100.0, manual.Net())
}

func TestGroupByProperty_GroupsAndTotals(t *testing.T) {
	items := []Item{
		{PaymentID: "p1", PropertyID: 2, PropertyName: "Hillside", Amount: 5000, PaymentDate: "2026-08-02T00:00:00Z"},
		{PaymentID: "p2", PropertyID: 1, PropertyName: "Riverview", Amount: 10000, NetAmount: netOf(9700), PaymentDate: "2026-08-01T00:00:00Z"},
		{PaymentID: "p3", PropertyID: 1, PropertyName: "Riverview", Amount: 2500, PaymentDate: "2026-08-03T00:00:00Z"},
	}

	groups := GroupByProperty(items)
	require.Len(t, groups, 2)

	// Groups come out ordered by property id.
	assert.Equal(t, uint(1), groups[0].PropertyID)
	assert.Equal(t, "Riverview", groups[0].PropertyName)
	assert.Equal(t, 12200.0, groups[0].NetTotal) // 9700 net + 2500 gross
	require.Len(t, groups[0].Items, 2)
	assert.Equal(t, "p2", groups[0].Items[0].PaymentID)
	assert.Equal(t, "p3", groups[0].Items[1].PaymentID)

	assert.Equal(t, uint(2), groups[1].PropertyID)
	assert.Equal(t, 5000.0, groups[1].NetTotal)
}

func TestGroupByProperty_OrderIsDeterministic(t *testing.T) {
	// Same payment date: payment id breaks the tie.
	items := []Item{
		{PaymentID: "b", PropertyID: 1, PaymentDate: "2026-08-01T00:00:00Z"},
		{PaymentID: "a", PropertyID: 1, PaymentDate: "2026-08-01T00:00:00Z"},
	}
	first := GroupByProperty(items)
	second := GroupByProperty([]Item{items[1], items[0]})

	require.Len(t, first, 1)
	assert.Equal(t, "a", first[0].Items[0].PaymentID)
	assert.Equal(t, first, second)
}

func TestGroupByProperty_Empty(t *testing.T) {
	assert.Empty(t, GroupByProperty(nil))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"p1", "p2", "p3"}, Dedupe([]string{"p1", "p2", "p1", "", "p3", "p2"}))
	assert.Empty(t, Dedupe(nil))
}

func TestApply_PartialSuccess(t *testing.T) {
	// One eligible payment and one a concurrent admin already moved: the
	// eligible id goes through, the stale one is rejected on its own.
	payoutStatus := map[string]string{
		"p1": "unpaid",
		"p2": "in_payout",
	}
	res := Apply([]string{"p1", "p2"}, func(id string) (bool, error) {
		if payoutStatus[id] != "unpaid" {
			return false, nil
		}
		payoutStatus[id] = "in_payout"
		return true, nil
	})

	assert.Equal(t, []string{"p1"}, res.Succeeded)
	assert.Equal(t, []string{"p2"}, res.Rejected)
}

func TestApply_UpdateErrorRejectsOnlyThatID(t *testing.T) {
	res := Apply([]string{"p1", "p2", "p3"}, func(id string) (bool, error) {
		if id == "p2" {
			return false, assert.AnError
		}
		return true, nil
	})

	assert.Equal(t, []string{"p1", "p3"}, res.Succeeded)
	assert.Equal(t, []string{"p2"}, res.Rejected)
}

func TestApply_DeduplicatesBeforeUpdating(t *testing.T) {
	calls := make(map[string]int)
	res := Apply([]string{"p1", "p1", "", "p2"}, func(id string) (bool, error) {
		calls[id]++
		return true, nil
	})

	assert.Equal(t, []string{"p1", "p2"}, res.Succeeded)
	assert.Empty(t, res.Rejected)
	assert.Equal(t, map[string]int{"p1": 1, "p2": 1}, calls)
}

func TestApply_EmptyBatch(t *testing.T) {
	res := Apply(nil, func(string) (bool, error) { return true, nil })
	assert.Empty(t, res.Succeeded)
	assert.Empty(t, res.Rejected)
}
