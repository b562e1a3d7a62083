package database

import (
	"fmt"

	"hausverwaltung-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(12,2))
// - Unique bill-per-period and payout lookup indexes
// - Basic CHECK constraints (non-negative amounts and readings)
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Property{},
			&models.Unit{},
			&models.Lease{},
			&models.UtilityRate{},
			&models.Bill{},
			&models.Payment{},
			&models.PaymentGatewayEvent{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE properties ALTER COLUMN association_dues TYPE numeric(12,2)`,
			`ALTER TABLE properties ALTER COLUMN late_fee         TYPE numeric(12,2)`,
			`ALTER TABLE units      ALTER COLUMN monthly_rent     TYPE numeric(12,2)`,
			`ALTER TABLE bills      ALTER COLUMN total_amount_due TYPE numeric(12,2)`,
			`ALTER TABLE bills      ALTER COLUMN paid_total       TYPE numeric(12,2)`,
			`ALTER TABLE payments   ALTER COLUMN amount_paid      TYPE numeric(12,2)`,
			`ALTER TABLE payments   ALTER COLUMN net_amount       TYPE numeric(12,2)`,
			`ALTER TABLE utility_rates ALTER COLUMN rate          TYPE numeric(12,4)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_bills_unit_period ON bills (unit_id, billing_period)`,
			`CREATE INDEX IF NOT EXISTS idx_payments_payout_lookup ON payments (payment_status, payout_status)`,
			`CREATE INDEX IF NOT EXISTS idx_utility_rates_property_type ON utility_rates (property_id, utility_type)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Persisted total is never negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'bills'::regclass
					  AND conname  = 'chk_bills_total_nonneg'
				) THEN
					ALTER TABLE bills
					ADD CONSTRAINT chk_bills_total_nonneg
					CHECK (total_amount_due >= 0);
				END IF;
			END $$;`,
			// Payments.amount_paid >= 0
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payments'::regclass
					  AND conname  = 'chk_payments_amount_paid_nonneg'
				) THEN
					ALTER TABLE payments
					ADD CONSTRAINT chk_payments_amount_paid_nonneg
					CHECK (amount_paid >= 0);
				END IF;
			END $$;`,
			// Meter readings are non-negative decimals
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'bills'::regclass
					  AND conname  = 'chk_bills_readings_nonneg'
				) THEN
					ALTER TABLE bills
					ADD CONSTRAINT chk_bills_readings_nonneg
					CHECK (water_prev >= 0 AND water_curr >= 0 AND electricity_prev >= 0 AND electricity_curr >= 0);
				END IF;
			END $$;`,
			// Utility rates are non-negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'utility_rates'::regclass
					  AND conname  = 'chk_utility_rates_rate_nonneg'
				) THEN
					ALTER TABLE utility_rates
					ADD CONSTRAINT chk_utility_rates_rate_nonneg
					CHECK (rate >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
