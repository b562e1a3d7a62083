package controllers

import (
	"time"

	"hausverwaltung-backend/database"
	"hausverwaltung-backend/exports"
	"hausverwaltung-backend/middlewares"
	"hausverwaltung-backend/models"
	"hausverwaltung-backend/observability"
	"hausverwaltung-backend/payout"

	"github.com/gofiber/fiber/v2"
)

// eligibleItems loads every confirmed-but-undisbursed payment flattened
// with its unit's property. Ordering is deterministic (payment_date, id).
func eligibleItems() ([]payout.Item, error) {
	type row struct {
		ID           string
		AmountPaid   float64
		NetAmount    *float64
		PaymentDate  *time.Time
		PropertyID   uint
		PropertyName string
	}
	var rows []row
	err := database.DB.Model(&models.Payment{}).
		Select("payments.id, payments.amount_paid, payments.net_amount, payments.payment_date, properties.id AS property_id, properties.name AS property_name").
		Joins("JOIN leases ON leases.id = payments.lease_id").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("payments.payment_status = ? AND payments.payout_status = ?",
			models.PaymentConfirmed, models.PayoutUnpaid).
		Order("payments.payment_date ASC, payments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]payout.Item, 0, len(rows))
	for _, r := range rows {
		date := ""
		if r.PaymentDate != nil {
			date = r.PaymentDate.UTC().Format(time.RFC3339)
		}
		items = append(items, payout.Item{
			PaymentID:    r.ID,
			PropertyID:   r.PropertyID,
			PropertyName: r.PropertyName,
			Amount:       r.AmountPaid,
			NetAmount:    r.NetAmount,
			PaymentDate:  date,
		})
	}
	return items, nil
}

// GET /api/payouts/eligible lists disbursement-eligible payments grouped
// by property with per-group net totals.
func ListEligiblePayments(c *fiber.Ctx) error {
	items, err := eligibleItems()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{
		"groups":  payout.GroupByProperty(items),
		"message": "success",
	})
}

// GET /api/payouts/export streams the disbursement-review workbook.
func ExportEligiblePayments(c *fiber.Ctx) error {
	items, err := eligibleItems()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	book, err := exports.BuildPayoutXLSX(payout.GroupByProperty(items))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not render export")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="payout-batch.xlsx"`)
	return c.Send(book)
}

type PayoutBatchDTO struct {
	PaymentIDs []string `json:"payment_ids" validate:"required,min=1,dive,required"`
}

// POST /api/payouts/mark transitions each selected payment from unpaid to
// in_payout. Every id is processed independently: the guard and write share
// one conditional UPDATE, so an id that a concurrent admin already moved is
// rejected without touching the rest of the batch. These routes run outside
// the request transaction for exactly that reason.
func MarkInPayout(c *fiber.Ctx) error {
	var in PayoutBatchDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	res := payout.Apply(in.PaymentIDs, func(id string) (bool, error) {
		u := database.DB.Model(&models.Payment{}).
			Where("id = ? AND payment_status = ? AND payout_status = ?",
				id, models.PaymentConfirmed, models.PayoutUnpaid).
			Update("payout_status", models.PayoutInPayout)
		return u.RowsAffected > 0, u.Error
	})
	observability.PayoutMarks.WithLabelValues("succeeded").Add(float64(len(res.Succeeded)))
	observability.PayoutMarks.WithLabelValues("rejected").Add(float64(len(res.Rejected)))

	return c.JSON(res)
}

// POST /api/payouts/disburse validates and deduplicates the selected ids
// and hands them to the downstream disbursement review flow. No status is
// mutated here; the engine's responsibility ends at the id set.
func InitiateDisbursement(c *fiber.Ctx) error {
	var in PayoutBatchDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	ids := payout.Dedupe(in.PaymentIDs)
	accepted := make([]string, 0, len(ids))
	skipped := make([]string, 0)
	for _, id := range ids {
		var payment models.Payment
		if err := database.DB.First(&payment, "id = ?", id).Error; err != nil {
			skipped = append(skipped, id)
			continue
		}
		if payment.PaymentStatus != models.PaymentConfirmed || payment.PayoutStatus != models.PayoutInPayout {
			skipped = append(skipped, id)
			continue
		}
		accepted = append(accepted, id)
	}

	return c.JSON(fiber.Map{
		"payment_ids": accepted,
		"skipped":     skipped,
	})
}

// POST /api/payouts/complete closes the loop after the money actually
// moved: in_payout payments become paid. Same per-id independence as mark.
func CompletePayout(c *fiber.Ctx) error {
	var in PayoutBatchDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	res := payout.Apply(in.PaymentIDs, func(id string) (bool, error) {
		u := database.DB.Model(&models.Payment{}).
			Where("id = ? AND payment_status = ? AND payout_status = ?",
				id, models.PaymentConfirmed, models.PayoutInPayout).
			Update("payout_status", models.PayoutPaid)
		return u.RowsAffected > 0, u.Error
	})

	return c.JSON(res)
}
