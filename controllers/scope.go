package controllers

import (
	"errors"

	"hausverwaltung-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// scopeAllowed is the access rule for reading billing and payment records:
// admins see everything, landlords see records on their own properties,
// tenants see records on their own leases.
func scopeAllowed(role, userID, landlordID, tenantID string) bool {
	switch models.Role(role) {
	case models.RoleAdmin:
		return true
	case models.RoleLandlord:
		return userID != "" && userID == landlordID
	case models.RoleTenant:
		return userID != "" && userID == tenantID
	default:
		return false
	}
}

// requireUnitAccess checks that the acting user may read a unit's records.
// Mismatches answer 404 so foreign units stay indistinguishable from
// missing ones.
func requireUnitAccess(db *gorm.DB, c *fiber.Ctx, unitID uint) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)

	if models.Role(role) == models.RoleTenant {
		// A tenant reaches a unit through any of their leases on it.
		var count int64
		if err := db.Model(&models.Lease{}).
			Where("unit_id = ? AND tenant_id = ?", unitID, userID).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "db error")
		}
		if count == 0 {
			return fiber.NewError(fiber.StatusNotFound, "unit not found")
		}
		return nil
	}

	var unit models.Unit
	if err := db.Preload("Property").First(&unit, "id = ?", unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "unit not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if !scopeAllowed(role, userID, unit.Property.LandlordID, "") {
		return fiber.NewError(fiber.StatusNotFound, "unit not found")
	}
	return nil
}

// requirePaymentAccess checks that the acting user may read or act on one
// payment, walking its lease up to the owning property.
func requirePaymentAccess(db *gorm.DB, c *fiber.Ctx, payment *models.Payment) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)

	var lease models.Lease
	if err := db.Preload("Unit.Property").First(&lease, "id = ?", payment.LeaseID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if !scopeAllowed(role, userID, lease.Unit.Property.LandlordID, lease.TenantID) {
		return fiber.NewError(fiber.StatusNotFound, "payment not found")
	}
	return nil
}
