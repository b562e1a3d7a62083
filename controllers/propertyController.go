package controllers

import (
	"errors"
	"strings"
	"time"

	"hausverwaltung-backend/database"
	"hausverwaltung-backend/middlewares"
	"hausverwaltung-backend/models"
	"hausverwaltung-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PropertyCreateDTO struct {
	Name               string `json:"name" validate:"required,min=1"`
	Address            string `json:"address" validate:"required,min=1"`
	City               string `json:"city" validate:"omitempty"`
	Zip                string `json:"zip" validate:"omitempty"`
	AssociationDues    string `json:"association_dues" validate:"omitempty"`
	LateFee            string `json:"late_fee" validate:"omitempty"`
	UtilityBillingType string `json:"utility_billing_type" validate:"required,oneof=submetered provider included"`
}

type PropertyUpdateDTO struct {
	Name               *string `json:"name" validate:"omitempty,min=1"`
	Address            *string `json:"address" validate:"omitempty,min=1"`
	City               *string `json:"city"`
	Zip                *string `json:"zip"`
	AssociationDues    *string `json:"association_dues" validate:"omitempty"`
	LateFee            *string `json:"late_fee" validate:"omitempty"`
	UtilityBillingType *string `json:"utility_billing_type" validate:"omitempty,oneof=submetered provider included"`
}

// POST /api/property
func CreateProperty(c *fiber.Ctx) error {
	var in PropertyCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	dues, err := utils.ParseAmount("association_dues", in.AssociationDues)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	lateFee, err := utils.ParseAmount("late_fee", in.LateFee)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	landlordID, _ := c.Locals("userID").(string)
	property := models.Property{
		LandlordID:         landlordID,
		Name:               strings.TrimSpace(in.Name),
		Address:            strings.TrimSpace(in.Address),
		City:               strings.TrimSpace(in.City),
		Zip:                strings.TrimSpace(in.Zip),
		AssociationDues:    utils.Round2(dues),
		LateFee:            utils.Round2(lateFee),
		UtilityBillingType: models.UtilityBillingType(in.UtilityBillingType),
	}

	if err := db.Create(&property).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create property")
	}
	return c.JSON(property)
}

// propertyAmountUpdates coerces the optional string-typed monetary fields
// of a property patch into rounded column values, same boundary as create.
// Fields left out of the patch stay out of the map.
func propertyAmountUpdates(in *PropertyUpdateDTO) (map[string]float64, error) {
	amounts := map[string]float64{}
	for field, raw := range map[string]*string{
		"association_dues": in.AssociationDues,
		"late_fee":         in.LateFee,
	} {
		if raw == nil {
			continue
		}
		v, err := utils.ParseAmount(field, *raw)
		if err != nil {
			return nil, err
		}
		amounts[field] = utils.Round2(v)
	}
	return amounts, nil
}

// PUT /api/property/:id
func UpdateProperty(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing property id in path")
	}

	var in PropertyUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	amounts, err := propertyAmountUpdates(&in)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	landlordID, _ := c.Locals("userID").(string)
	var existing models.Property
	if err := db.First(&existing, "id = ? AND landlord_id = ?", id, landlordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "property not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in)
	for field, v := range amounts {
		updates[field] = v
	}
	if len(updates) == 0 {
		return c.JSON(existing)
	}
	if err := db.Model(&models.Property{}).Where("id = ?", existing.Id).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update property")
	}

	var out models.Property
	if err := db.First(&out, "id = ?", existing.Id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload property")
	}
	return c.JSON(out)
}

// GET /api/properties
func GetProperties(c *fiber.Ctx) error {
	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	landlordID, _ := c.Locals("userID").(string)
	var properties []models.Property
	if err := db.Where("landlord_id = ?", landlordID).Order("id ASC").Find(&properties).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{
		"properties": properties,
		"message":    "success",
	})
}

type UnitCreateDTO struct {
	PropertyID  uint   `json:"property_id" validate:"required"`
	Label       string `json:"label" validate:"required,min=1"`
	MonthlyRent string `json:"monthly_rent" validate:"required"`
}

// POST /api/unit
func CreateUnit(c *fiber.Ctx) error {
	var in UnitCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	rent, err := utils.ParseAmount("monthly_rent", in.MonthlyRent)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	landlordID, _ := c.Locals("userID").(string)
	var property models.Property
	if err := db.First(&property, "id = ? AND landlord_id = ?", in.PropertyID, landlordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "property not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	unit := models.Unit{
		PropertyID:  property.Id,
		Label:       strings.TrimSpace(in.Label),
		MonthlyRent: utils.Round2(rent),
	}
	if err := db.Create(&unit).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create unit")
	}
	return c.JSON(unit)
}

// GET /api/units?property_id=
func GetUnits(c *fiber.Ctx) error {
	propertyID := utils.ParseIntDefault(c.Query("property_id"), 0)
	if propertyID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "missing property_id")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var units []models.Unit
	if err := db.Where("property_id = ?", propertyID).Order("id ASC").Find(&units).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{
		"units":   units,
		"message": "success",
	})
}

type RateCreateDTO struct {
	PropertyID    uint   `json:"property_id" validate:"required"`
	UtilityType   string `json:"utility_type" validate:"required,oneof=water electricity"`
	Rate          string `json:"rate" validate:"required"`
	EffectiveFrom string `json:"effective_from" validate:"required"` // "2006-01-02"
}

// POST /api/rate records a new provider billing rate for a property.
// Existing bills are never touched: a rate change only affects bills
// created afterwards.
func CreateRate(c *fiber.Ctx) error {
	var in RateCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	rate, err := utils.ParseAmount("rate", in.Rate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	effectiveFrom, err := time.Parse("2006-01-02", in.EffectiveFrom)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid effective_from: want YYYY-MM-DD")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	landlordID, _ := c.Locals("userID").(string)
	var property models.Property
	if err := db.First(&property, "id = ? AND landlord_id = ?", in.PropertyID, landlordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "property not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	record := models.UtilityRate{
		PropertyID:    property.Id,
		UtilityType:   models.UtilityType(in.UtilityType),
		Rate:          rate,
		EffectiveFrom: effectiveFrom,
	}
	if err := db.Create(&record).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create rate record")
	}
	return c.JSON(record)
}

type LeaseCreateDTO struct {
	UnitID    uint   `json:"unit_id" validate:"required"`
	TenantID  string `json:"tenant_id" validate:"required,uuid4"`
	StartDate string `json:"start_date" validate:"required"`
}

// POST /api/lease
func CreateLease(c *fiber.Ctx) error {
	var in LeaseCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	startDate, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid start_date: want YYYY-MM-DD")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	landlordID, _ := c.Locals("userID").(string)
	var unit models.Unit
	if err := db.Joins("Property").First(&unit, "units.id = ? AND \"Property\".landlord_id = ?", in.UnitID, landlordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "unit not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	var tenant models.User
	if err := db.First(&tenant, "id = ? AND role = ?", in.TenantID, models.RoleTenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "tenant not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	lease := models.Lease{
		UnitID:    unit.Id,
		TenantID:  tenant.Id,
		Active:    true,
		StartDate: startDate,
	}
	if err := db.Create(&lease).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create lease")
	}
	return c.JSON(lease)
}
