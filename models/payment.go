package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// PayoutStatus tracks the landlord-facing disbursement lifecycle,
// independent of PaymentStatus.
type PayoutStatus string

const (
	PayoutUnpaid   PayoutStatus = "unpaid"
	PayoutInPayout PayoutStatus = "in_payout"
	PayoutPaid     PayoutStatus = "paid"
)

type PaymentType string

const (
	PaymentTypeRent            PaymentType = "rent"
	PaymentTypeSecurityDeposit PaymentType = "security_deposit"
	PaymentTypeAdvanceRent     PaymentType = "advance_rent"
	PaymentTypeUtility         PaymentType = "utility"
	PaymentTypeOther           PaymentType = "other"
)

// Payment records money received from a tenant against a bill/lease.
// payment_status is written by landlord/admin action or the gateway webhook;
// payout_status is written only by the payout batch engine.
type Payment struct {
	ID      string `json:"payment_id" gorm:"primaryKey"`
	BillID  *uint  `json:"bill_id" gorm:"index"`
	Bill    *Bill  `json:"-" gorm:"foreignKey:BillID;references:ID"`
	LeaseID uint   `json:"lease_id" gorm:"not null;index"`
	Lease   Lease  `json:"-" gorm:"foreignKey:LeaseID;references:Id"`

	AmountPaid float64  `json:"amount_paid" gorm:"type:numeric(12,2)"`
	NetAmount  *float64 `json:"net_amount" gorm:"type:numeric(12,2)"` // after gateway fees; nil for manual payments

	PaymentType   PaymentType   `json:"payment_type" gorm:"type:varchar(24);not null"`
	PaymentMethod string        `json:"payment_method" gorm:"type:varchar(32)"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(16);not null;default:'pending';index"`
	PayoutStatus  PayoutStatus  `json:"payout_status" gorm:"type:varchar(16);not null;default:'unpaid';index"`

	ProofOfPayment   string `json:"proof_of_payment"`
	ReceiptReference string `json:"receipt_reference" gorm:"size:32;uniqueIndex"`

	// Gateway checkout fields; nil for manual payments.
	ExternalID  *string `json:"external_id" gorm:"index"`
	CheckoutURL *string `json:"checkout_url"`

	PaymentDate *time.Time `json:"payment_date"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ReceiptReference == "" {
		p.ReceiptReference = "RCP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	}
	return
}

// CanTransitionTo reports whether payment_status may move to next.
// pending is the only non-terminal state; a resolved payment keeps its
// status forever (re-asserting the current status is a no-op, not an error).
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	return s == PaymentPending
}

// DisbursementEligible is the payout selection predicate: confirmed money
// that has not yet entered a payout batch.
func (p *Payment) DisbursementEligible() bool {
	return p.PaymentStatus == PaymentConfirmed && p.PayoutStatus == PayoutUnpaid
}
