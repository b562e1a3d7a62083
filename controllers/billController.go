package controllers

import (
	"errors"
	"fmt"
	"time"

	"hausverwaltung-backend/billing"
	"hausverwaltung-backend/database"
	"hausverwaltung-backend/exports"
	"hausverwaltung-backend/middlewares"
	"hausverwaltung-backend/models"
	"hausverwaltung-backend/observability"
	"hausverwaltung-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BillCreateDTO struct {
	UnitID        uint   `json:"unit_id" validate:"required"`
	BillingPeriod string `json:"billing_period" validate:"required,len=7"` // "2006-01"
	ReadingDate   string `json:"reading_date" validate:"required"`         // "2006-01-02"
	DueDate       string `json:"due_date" validate:"required"`

	// Submetered readings; blank when the property is provider/included.
	WaterPrev       string `json:"water_prev"`
	WaterCurr       string `json:"water_curr"`
	ElectricityPrev string `json:"electricity_prev"`
	ElectricityCurr string `json:"electricity_curr"`

	// Provider lump totals; blank unless billing type is provider.
	WaterTotal       string `json:"water_total"`
	ElectricityTotal string `json:"electricity_total"`

	Penalty  string `json:"penalty"`
	Discount string `json:"discount"`
}

// billAmounts is the parsed numeric view of a BillCreateDTO. All monetary
// inputs cross the API boundary as strings and are coerced here, in one
// place, before any computation.
type billAmounts struct {
	waterPrev, waterCurr  float64
	elecPrev, elecCurr    float64
	waterTotal, elecTotal float64
	penalty, discount     float64
}

func parseBillAmounts(in *BillCreateDTO) (billAmounts, error) {
	var a billAmounts
	var err error
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"water_prev", in.WaterPrev, &a.waterPrev},
		{"water_curr", in.WaterCurr, &a.waterCurr},
		{"electricity_prev", in.ElectricityPrev, &a.elecPrev},
		{"electricity_curr", in.ElectricityCurr, &a.elecCurr},
		{"water_total", in.WaterTotal, &a.waterTotal},
		{"electricity_total", in.ElectricityTotal, &a.elecTotal},
		{"penalty", in.Penalty, &a.penalty},
		{"discount", in.Discount, &a.discount},
	}
	for _, f := range fields {
		if *f.dst, err = utils.ParseAmount(f.name, f.raw); err != nil {
			return a, err
		}
	}
	return a, nil
}

// POST /api/bill creates one immutable bill for a unit and period.
// Preconditions: the unit and its property exist and belong to the acting
// landlord, due_date does not precede reading_date, and the period has not
// been billed before.
func CreateBill(c *fiber.Ctx) error {
	var in BillCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	amounts, err := parseBillAmounts(&in)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if _, err := time.Parse("2006-01", in.BillingPeriod); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid billing_period: want YYYY-MM")
	}
	readingDate, err := time.Parse("2006-01-02", in.ReadingDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid reading_date: want YYYY-MM-DD")
	}
	dueDate, err := time.Parse("2006-01-02", in.DueDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid due_date: want YYYY-MM-DD")
	}
	if dueDate.Before(readingDate) {
		return fiber.NewError(fiber.StatusBadRequest, "due_date must not precede reading_date")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	landlordID, _ := c.Locals("userID").(string)
	var unit models.Unit
	if err := db.Preload("Property").First(&unit, "id = ?", in.UnitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, billing.ErrMissingUnitData.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if unit.Property.LandlordID != landlordID {
		return fiber.NewError(fiber.StatusNotFound, "unit not found")
	}

	// Duplicate guard: one bill per unit and period.
	var count int64
	if err := db.Model(&models.Bill{}).
		Where("unit_id = ? AND billing_period = ?", unit.Id, in.BillingPeriod).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("unit already billed for %s", in.BillingPeriod))
	}

	rates, err := billing.ResolveRates(db, unit.PropertyID, readingDate)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not resolve utility rates")
	}

	breakdown := billing.Calculate(
		unit.Property.UtilityBillingType,
		billing.Reading{Previous: amounts.waterPrev, Current: amounts.waterCurr},
		billing.Reading{Previous: amounts.elecPrev, Current: amounts.elecCurr},
		rates,
		billing.ProviderTotals{Water: amounts.waterTotal, Electricity: amounts.elecTotal},
	)
	invoice := billing.Assemble(breakdown, billing.Charges{
		Rent:            unit.MonthlyRent,
		AssociationDues: unit.Property.AssociationDues,
		LateFee:         unit.Property.LateFee,
		Penalty:         amounts.penalty,
		Discount:        amounts.discount,
	})

	bill := models.Bill{
		UnitID:           unit.Id,
		BillingPeriod:    in.BillingPeriod,
		ReadingDate:      readingDate,
		DueDate:          dueDate,
		WaterPrev:        amounts.waterPrev,
		WaterCurr:        amounts.waterCurr,
		WaterUsage:       utils.Round2(breakdown.Water.Usage),
		WaterRate:        breakdown.Water.Rate,
		WaterCost:        invoice.WaterCost,
		ElectricityPrev:  amounts.elecPrev,
		ElectricityCurr:  amounts.elecCurr,
		ElectricityUsage: utils.Round2(breakdown.Electricity.Usage),
		ElectricityRate:  breakdown.Electricity.Rate,
		ElectricityCost:  invoice.ElectricityCost,
		Rent:             invoice.Rent,
		AssociationDues:  invoice.AssociationDues,
		LateFee:          invoice.LateFee,
		Penalty:          invoice.Penalty,
		Discount:         invoice.Discount,
		TotalAmountDue:   invoice.Total,
		Status:           models.BillUnpaid,
	}
	if err := db.Create(&bill).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create bill")
	}
	observability.BillsCreated.Inc()

	return c.JSON(fiber.Map{
		"bill_id":          bill.ID,
		"total_amount_due": bill.TotalAmountDue,
	})
}

// GET /api/bills?unit_id= returns the unit's billing history ordered by
// period. Read-only: calling it twice with no intervening writes yields
// identical results.
func GetBillingHistory(c *fiber.Ctx) error {
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

	var bills []models.Bill
	if err := db.Where("unit_id = ?", unitID).
		Order("billing_period ASC, id ASC").
		Find(&bills).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	history := make([]fiber.Map, 0, len(bills))
	for _, b := range bills {
		history = append(history, fiber.Map{
			"bill_id":          b.ID,
			"billing_period":   b.BillingPeriod,
			"total_amount_due": b.TotalAmountDue,
			"status":           b.Status,
			"due_date":         b.DueDate.Format("2006-01-02"),
		})
	}
	return c.JSON(fiber.Map{
		"bills":   history,
		"message": "success",
	})
}

// GET /api/bill/:id/receipt streams the printable PDF statement.
func GetBillReceipt(c *fiber.Ctx) error {
	billID := utils.ParseIntDefault(c.Params("id"), 0)
	if billID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "missing bill id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var bill models.Bill
	if err := db.Preload("Unit.Property").First(&bill, "id = ?", billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "bill not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if err := requireUnitAccess(db, c, bill.UnitID); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
			return fiber.NewError(fiber.StatusNotFound, "bill not found")
		}
		return err
	}

	var payments []models.Payment
	if err := db.Where("bill_id = ?", bill.ID).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	pdf, err := exports.BuildBillPDF(&bill, bill.Unit.Label, bill.Unit.Property.Name, payments)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not render receipt")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="bill-%d-%s.pdf"`, bill.ID, bill.BillingPeriod))
	return c.Send(pdf)
}
