package models

import "time"

type BillStatus string

const (
	BillUnpaid  BillStatus = "unpaid"
	BillPartial BillStatus = "partial"
	BillPaid    BillStatus = "paid"
)

// Bill is one immutable utility/rent invoice for a unit and billing period.
// Component amounts are never edited after creation; a correction is a new
// Bill for a new period. The (unit_id, billing_period) pair is unique so a
// period cannot be billed twice.
type Bill struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	UnitID        uint   `json:"unit_id" gorm:"not null;index:idx_bills_unit_period,unique,priority:1"`
	Unit          Unit   `json:"-" gorm:"foreignKey:UnitID;references:Id"`
	BillingPeriod string `json:"billing_period" gorm:"size:7;not null;index:idx_bills_unit_period,unique,priority:2"` // "2006-01"

	ReadingDate time.Time `json:"reading_date"`
	DueDate     time.Time `json:"due_date"`

	// Utility breakdown as computed at creation time.
	WaterPrev        float64 `json:"water_prev" gorm:"type:numeric(12,2)"`
	WaterCurr        float64 `json:"water_curr" gorm:"type:numeric(12,2)"`
	WaterUsage       float64 `json:"water_usage" gorm:"type:numeric(12,2)"`
	WaterRate        float64 `json:"water_rate" gorm:"type:numeric(12,4)"`
	WaterCost        float64 `json:"water_cost" gorm:"type:numeric(12,2)"`
	ElectricityPrev  float64 `json:"electricity_prev" gorm:"type:numeric(12,2)"`
	ElectricityCurr  float64 `json:"electricity_curr" gorm:"type:numeric(12,2)"`
	ElectricityUsage float64 `json:"electricity_usage" gorm:"type:numeric(12,2)"`
	ElectricityRate  float64 `json:"electricity_rate" gorm:"type:numeric(12,4)"`
	ElectricityCost  float64 `json:"electricity_cost" gorm:"type:numeric(12,2)"`

	// Fixed charges and per-cycle adjustments.
	Rent            float64 `json:"rent" gorm:"type:numeric(12,2)"`
	AssociationDues float64 `json:"association_dues" gorm:"type:numeric(12,2)"`
	LateFee         float64 `json:"late_fee" gorm:"type:numeric(12,2)"`
	Penalty         float64 `json:"penalty" gorm:"type:numeric(12,2)"`
	Discount        float64 `json:"discount" gorm:"type:numeric(12,2)"`

	TotalAmountDue float64    `json:"total_amount_due" gorm:"type:numeric(12,2)"`
	Status         BillStatus `json:"status" gorm:"type:varchar(16);not null;default:'unpaid'"`

	// Payments rollup
	PaidTotal float64 `json:"paid_total" gorm:"type:numeric(12,2)"`

	CreatedAt time.Time `json:"created_at"`
}
