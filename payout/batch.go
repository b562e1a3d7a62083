// Package payout selects confirmed-but-undisbursed payments and groups
// them by property for batch disbursement. The batch itself is ephemeral:
// only per-payment payout_status is persisted.
package payout

import (
	"sort"

	"hausverwaltung-backend/utils"
)

// Item is one disbursement-eligible payment, flattened with the property
// its unit belongs to. Grouping is by property rather than landlord since
// a landlord may own several properties.
type Item struct {
	PaymentID    string   `json:"payment_id"`
	PropertyID   uint     `json:"property_id"`
	PropertyName string   `json:"property_name"`
	Amount       float64  `json:"amount"`
	NetAmount    *float64 `json:"net_amount"`
	PaymentDate  string   `json:"payment_date"` // RFC3339; zero-valued payments sort first
}

// Net is the disbursable amount: net_amount when the gateway reported one,
// otherwise the gross amount.
func (it Item) Net() float64 {
	if it.NetAmount != nil {
		return *it.NetAmount
	}
	return it.Amount
}

// Group is all eligible payments of one property with their net total,
// shown to the admin before disbursement.
type Group struct {
	PropertyID   uint    `json:"property_id"`
	PropertyName string  `json:"property_name"`
	NetTotal     float64 `json:"net_total"`
	Items        []Item  `json:"payments"`
}

// GroupByProperty buckets items per property. Within a group items are
// ordered by payment date ascending with payment id as tie-break; groups
// come out ordered by property id. The ordering is imposed here so batch
// listings are reproducible.
func GroupByProperty(items []Item) []Group {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].PaymentDate != sorted[j].PaymentDate {
			return sorted[i].PaymentDate < sorted[j].PaymentDate
		}
		return sorted[i].PaymentID < sorted[j].PaymentID
	})

	byProperty := make(map[uint]*Group)
	order := make([]uint, 0)
	for _, it := range sorted {
		g, ok := byProperty[it.PropertyID]
		if !ok {
			g = &Group{PropertyID: it.PropertyID, PropertyName: it.PropertyName}
			byProperty[it.PropertyID] = g
			order = append(order, it.PropertyID)
		}
		g.Items = append(g.Items, it)
		g.NetTotal += it.Net()
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	groups := make([]Group, 0, len(order))
	for _, id := range order {
		g := byProperty[id]
		g.NetTotal = utils.Round2(g.NetTotal)
		groups = append(groups, *g)
	}
	return groups
}

// Result is the per-id outcome of one batch status transition.
type Result struct {
	Succeeded []string `json:"succeeded"`
	Rejected  []string `json:"rejected"`
}

// Apply drives one status transition over a batch of payment ids. Ids are
// deduplicated, then each is handed to update independently: update reports
// whether the payment actually moved, and an id that fails or was already
// moved by someone else lands in Rejected without disturbing the rest of
// the batch. A whole-batch failure is never an outcome.
func Apply(ids []string, update func(id string) (bool, error)) Result {
	res := Result{Succeeded: []string{}, Rejected: []string{}}
	for _, id := range Dedupe(ids) {
		moved, err := update(id)
		if err != nil || !moved {
			res.Rejected = append(res.Rejected, id)
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	return res
}

// Dedupe drops empty and repeated ids while preserving first-seen order.
// Client selections can contain duplicates after stale refreshes; the
// engine never processes the same payment twice in one batch.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
