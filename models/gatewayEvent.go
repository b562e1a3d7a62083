package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentGatewayEvent stores every raw webhook notification the payment
// gateway delivers, keyed to the payment it settles. Kept verbatim so a
// disputed status transition can be traced back to the notification.
type PaymentGatewayEvent struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	PaymentID         string         `json:"payment_id" gorm:"not null;index"`
	Provider          string         `json:"provider" gorm:"type:varchar(32)"`
	OrderID           string         `json:"order_id" gorm:"index"`
	TransactionStatus string         `json:"transaction_status" gorm:"type:varchar(32)"`
	Payload           datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	ReceivedAt        time.Time      `json:"received_at"`
}
