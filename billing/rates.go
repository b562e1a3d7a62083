package billing

import (
	"time"

	"gorm.io/gorm"

	"hausverwaltung-backend/models"
)

// Rates holds the effective per-unit utility prices for a property.
// A zero value means "unconfigured", not a valid zero-cost tariff;
// callers decide how to surface that.
type Rates struct {
	Water       float64 `json:"water"`       // currency per m3
	Electricity float64 `json:"electricity"` // currency per kWh
}

// RateRecord is the resolver's view of one provider billing record.
type RateRecord struct {
	UtilityType   models.UtilityType
	Rate          float64
	EffectiveFrom time.Time
}

// LatestEffective deterministically selects one rate per utility type: the
// record with the latest effective_from that is not after asOf. When two
// records share an effective_from, the one later in the slice wins, so
// callers should order records oldest-first. Types with no applicable
// record resolve to zero.
func LatestEffective(records []RateRecord, asOf time.Time) Rates {
	var rates Rates
	var waterFrom, elecFrom time.Time
	haveWater, haveElec := false, false

	for _, r := range records {
		if r.EffectiveFrom.After(asOf) {
			continue
		}
		switch r.UtilityType {
		case models.UtilityWater:
			if !haveWater || !r.EffectiveFrom.Before(waterFrom) {
				rates.Water = r.Rate
				waterFrom = r.EffectiveFrom
				haveWater = true
			}
		case models.UtilityElectricity:
			if !haveElec || !r.EffectiveFrom.Before(elecFrom) {
				rates.Electricity = r.Rate
				elecFrom = r.EffectiveFrom
				haveElec = true
			}
		}
	}
	return rates
}

// ResolveRates loads a property's rate records and picks the effective pair
// as of the given billing date. Missing records are not an error.
func ResolveRates(db *gorm.DB, propertyID uint, asOf time.Time) (Rates, error) {
	var recs []models.UtilityRate
	err := db.
		Where("property_id = ? AND effective_from <= ?", propertyID, asOf).
		Order("effective_from ASC, id ASC").
		Find(&recs).Error
	if err != nil {
		return Rates{}, err
	}

	records := make([]RateRecord, 0, len(recs))
	for _, r := range recs {
		records = append(records, RateRecord{
			UtilityType:   r.UtilityType,
			Rate:          r.Rate,
			EffectiveFrom: r.EffectiveFrom,
		})
	}
	return LatestEffective(records, asOf), nil
}
