package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hausverwaltung-backend/database"
	"hausverwaltung-backend/gateway"
	"hausverwaltung-backend/middlewares"
	"hausverwaltung-backend/models"
	"hausverwaltung-backend/observability"
	"hausverwaltung-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentCreateDTO struct {
	BillID         *uint  `json:"bill_id"`
	LeaseID        uint   `json:"lease_id" validate:"required"`
	Amount         string `json:"amount" validate:"required"`
	PaymentType    string `json:"payment_type" validate:"required,oneof=rent security_deposit advance_rent utility other"`
	PaymentMethod  string `json:"payment_method" validate:"required,min=1"`
	ProofOfPayment string `json:"proof_of_payment"`
}

// POST /api/payment records a tenant payment in pending state. Confirmation
// is a separate landlord/admin action (or a gateway webhook); recording
// money is never the same event as accepting it.
func CreatePayment(c *fiber.Ctx) error {
	var in PaymentCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	amount, err := utils.ParseAmount("amount", in.Amount)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid amount: must be positive")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	tenantID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	var lease models.Lease
	if err := db.First(&lease, "id = ?", in.LeaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "lease not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if role == string(models.RoleTenant) && lease.TenantID != tenantID {
		return fiber.NewError(fiber.StatusForbidden, "lease does not belong to you")
	}

	if in.BillID != nil {
		var bill models.Bill
		if err := db.First(&bill, "id = ? AND unit_id = ?", *in.BillID, lease.UnitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "bill not found for this lease")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "db error")
		}
	}

	payment := models.Payment{
		BillID:         in.BillID,
		LeaseID:        lease.Id,
		AmountPaid:     utils.Round2(amount),
		PaymentType:    models.PaymentType(in.PaymentType),
		PaymentMethod:  strings.TrimSpace(in.PaymentMethod),
		PaymentStatus:  models.PaymentPending,
		PayoutStatus:   models.PayoutUnpaid,
		ProofOfPayment: strings.TrimSpace(in.ProofOfPayment),
	}
	if err := db.Create(&payment).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create payment")
	}
	return c.JSON(payment)
}

// GET /api/payments?unit_id= lists payments for all leases of a unit.
func ListPayments(c *fiber.Ctx) error {
	unitID := utils.ParseIntDefault(c.Query("unit_id"), 0)
	if unitID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "missing unit_id")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}
	if err := requireUnitAccess(db, c, uint(unitID)); err != nil {
		return err
	}

	var payments []models.Payment
	err = db.
		Joins("JOIN leases ON leases.id = payments.lease_id").
		Where("leases.unit_id = ?", unitID).
		Order("payments.created_at ASC, payments.id ASC").
		Find(&payments).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	out := make([]fiber.Map, 0, len(payments))
	for _, p := range payments {
		out = append(out, fiber.Map{
			"payment_id":        p.ID,
			"amount_paid":       p.AmountPaid,
			"payment_type":      p.PaymentType,
			"payment_status":    p.PaymentStatus,
			"payout_status":     p.PayoutStatus,
			"proof_of_payment":  p.ProofOfPayment,
			"receipt_reference": p.ReceiptReference,
			"payment_date":      p.PaymentDate,
		})
	}
	return c.JSON(fiber.Map{
		"payments": out,
		"message":  "success",
	})
}

type PaymentStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed failed cancelled"`
}

// PUT /api/payment/:id/status drives the payment_status state machine.
// pending is the only source state; resolved payments never reopen.
// Confirmation does NOT touch payout_status: disbursement is a separate
// admin action on the payout routes.
func UpdatePaymentStatus(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing payment id in path")
	}

	var in PaymentStatusDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	next := models.PaymentStatus(in.Status)

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var payment models.Payment
	if err := db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Surfaced as a user-visible notice, not a hard failure.
			return fiber.NewError(fiber.StatusNotFound, "payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if err := applyStatusTransition(db, &payment, next); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"payment_id":     payment.ID,
		"payment_status": payment.PaymentStatus,
	})
}

// applyStatusTransition validates and persists one payment_status change,
// stamping payment_date and rolling the confirmed total up to the bill.
func applyStatusTransition(db *gorm.DB, payment *models.Payment, next models.PaymentStatus) error {
	if !payment.PaymentStatus.CanTransitionTo(next) {
		return fiber.NewError(fiber.StatusConflict,
			"payment already "+string(payment.PaymentStatus))
	}
	if payment.PaymentStatus == next {
		return nil // re-asserting the current status is a no-op
	}

	updates := map[string]any{"payment_status": next}
	if next == models.PaymentConfirmed {
		now := time.Now().UTC()
		updates["payment_date"] = &now
	}
	if err := db.Model(&models.Payment{}).Where("id = ?", payment.ID).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update payment")
	}
	payment.PaymentStatus = next
	observability.PaymentTransitions.WithLabelValues(string(next)).Inc()

	if next == models.PaymentConfirmed && payment.BillID != nil {
		if err := rollupBill(db, *payment.BillID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update bill rollup")
		}
	}
	return nil
}

// rollupBill recomputes a bill's paid_total from its confirmed payments
// and derives the display status (unpaid/partial/paid). Component amounts
// stay untouched; only the rollup fields move.
func rollupBill(db *gorm.DB, billID uint) error {
	var bill models.Bill
	if err := db.First(&bill, "id = ?", billID).Error; err != nil {
		return err
	}

	var paid float64
	err := db.Model(&models.Payment{}).
		Where("bill_id = ? AND payment_status = ?", billID, models.PaymentConfirmed).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&paid).Error
	if err != nil {
		return err
	}

	status := models.BillUnpaid
	switch {
	case paid >= bill.TotalAmountDue && bill.TotalAmountDue > 0:
		status = models.BillPaid
	case paid > 0:
		status = models.BillPartial
	case bill.TotalAmountDue == 0:
		status = models.BillPaid
	}

	return db.Model(&models.Bill{}).Where("id = ?", billID).Updates(map[string]any{
		"paid_total": utils.Round2(paid),
		"status":     status,
	}).Error
}

// POST /api/payment/:id/checkout initiates a gateway checkout for a
// pending payment and stores the redirect URL.
func InitiateCheckout(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing payment id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var payment models.Payment
	if err := db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if err := requirePaymentAccess(db, c, &payment); err != nil {
		return err
	}
	if payment.PaymentStatus != models.PaymentPending {
		return fiber.NewError(fiber.StatusConflict, "payment already "+string(payment.PaymentStatus))
	}

	tenantID, _ := c.Locals("userID").(string)
	var tenant models.User
	if err := db.First(&tenant, "id = ?", tenantID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	orderID := payment.ReceiptReference
	_, redirectURL, err := gateway.CreateCheckout(gateway.CheckoutRequest{
		OrderID:     orderID,
		Amount:      payment.AmountPaid,
		Description: string(payment.PaymentType) + " payment",
		FirstName:   tenant.FirstName,
		LastName:    tenant.LastName,
		Email:       tenant.Email,
	})
	if err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID).Msg("gateway checkout failed")
		return fiber.NewError(fiber.StatusBadGateway, "payment gateway unavailable")
	}

	if err := db.Model(&models.Payment{}).Where("id = ?", payment.ID).Updates(map[string]any{
		"external_id":  orderID,
		"checkout_url": redirectURL,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not store checkout")
	}

	return c.JSON(fiber.Map{
		"payment_id":   payment.ID,
		"checkout_url": redirectURL,
	})
}

// gatewayStatus maps a gateway transaction_status onto our state machine.
func gatewayStatus(transactionStatus string) (models.PaymentStatus, bool) {
	switch transactionStatus {
	case "capture", "settlement":
		return models.PaymentConfirmed, true
	case "deny", "cancel":
		return models.PaymentCancelled, true
	case "expire", "failure":
		return models.PaymentFailed, true
	case "pending":
		return models.PaymentPending, true
	default:
		return "", false
	}
}

// POST /api/payments/gateway/webhook is the gateway's notification sink:
// the only writer of payment_status besides landlord/admin action. Every
// notification is stored verbatim before the transition is applied.
func GatewayWebhook(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification body")
	}
	orderID, _ := payload["order_id"].(string)
	transactionStatus, _ := payload["transaction_status"].(string)
	if orderID == "" || transactionStatus == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing order_id/transaction_status")
	}

	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signatureKey, _ := payload["signature_key"].(string)
	if !gateway.VerifySignature(orderID, statusCode, grossAmount, signatureKey) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid signature")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var payment models.Payment
	if err := db.First(&payment, "external_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "payment not found for order")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	raw, _ := json.Marshal(payload)
	event := models.PaymentGatewayEvent{
		PaymentID:         payment.ID,
		Provider:          "midtrans",
		OrderID:           orderID,
		TransactionStatus: transactionStatus,
		Payload:           datatypes.JSON(raw),
		ReceivedAt:        time.Now().UTC(),
	}
	if err := db.Create(&event).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not store gateway event")
	}

	next, ok := gatewayStatus(transactionStatus)
	if !ok {
		log.Warn().Str("transaction_status", transactionStatus).Msg("unmapped gateway status, event stored only")
		return c.JSON(fiber.Map{"message": "event stored"})
	}

	if err := applyStatusTransition(db, &payment, next); err != nil {
		// A late notification for an already-resolved payment is normal;
		// the event above is still on record.
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code == fiber.StatusConflict {
			return c.JSON(fiber.Map{"message": "payment already resolved"})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"payment_id":     payment.ID,
		"payment_status": payment.PaymentStatus,
	})
}
