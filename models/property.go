package models

import "time"

// UtilityBillingType controls how per-unit utility charges are derived.
type UtilityBillingType string

const (
	// BillingSubmetered: the landlord records per-unit meter readings each cycle.
	BillingSubmetered UtilityBillingType = "submetered"
	// BillingProvider: the utility company bills a lump total entered directly.
	BillingProvider UtilityBillingType = "provider"
	// BillingIncluded: utility cost is folded into rent; zero itemized charge.
	BillingIncluded UtilityBillingType = "included"
)

type Property struct {
	Id                 uint               `json:"id" gorm:"primaryKey"`
	LandlordID         string             `json:"landlord_id" gorm:"not null;index"`
	Name               string             `json:"name" gorm:"not null"`
	Address            string             `json:"address" gorm:"not null"`
	City               string             `json:"city"`
	Zip                string             `json:"zip"`
	AssociationDues    float64            `json:"association_dues" gorm:"type:numeric(12,2)"`
	LateFee            float64            `json:"late_fee" gorm:"type:numeric(12,2)"`
	UtilityBillingType UtilityBillingType `json:"utility_billing_type" gorm:"type:varchar(16);not null;default:'submetered'"`
	CreatedAt          time.Time          `json:"created_at"`
}

type Unit struct {
	Id          uint      `json:"id" gorm:"primaryKey"`
	PropertyID  uint      `json:"property_id" gorm:"not null;index"`
	Property    Property  `json:"-" gorm:"foreignKey:PropertyID;references:Id"`
	Label       string    `json:"label" gorm:"not null"`
	MonthlyRent float64   `json:"monthly_rent" gorm:"type:numeric(12,2)"`
	CreatedAt   time.Time `json:"created_at"`
}

// Lease binds a tenant to a unit; payments reference the lease.
type Lease struct {
	Id        uint      `json:"id" gorm:"primaryKey"`
	UnitID    uint      `json:"unit_id" gorm:"not null;index"`
	Unit      Unit      `json:"-" gorm:"foreignKey:UnitID;references:Id"`
	TenantID  string    `json:"tenant_id" gorm:"not null;index"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	StartDate time.Time `json:"start_date"`
	CreatedAt time.Time `json:"created_at"`
}
