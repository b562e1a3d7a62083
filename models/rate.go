package models

import "time"

type UtilityType string

const (
	UtilityWater       UtilityType = "water"
	UtilityElectricity UtilityType = "electricity"
)

// UtilityRate is one provider billing record for a property. The effective
// rate per utility type is the last record whose effective_from is not in
// the future; a property with no record for a type resolves to rate zero.
type UtilityRate struct {
	Id            uint        `json:"id" gorm:"primaryKey"`
	PropertyID    uint        `json:"property_id" gorm:"not null;index:idx_utility_rates_property_type,priority:1"`
	UtilityType   UtilityType `json:"utility_type" gorm:"type:varchar(16);not null;index:idx_utility_rates_property_type,priority:2"`
	Rate          float64     `json:"rate" gorm:"type:numeric(12,4)"` // currency per m3 or kWh
	EffectiveFrom time.Time   `json:"effective_from" gorm:"not null"`
	CreatedAt     time.Time   `json:"created_at"`
}
