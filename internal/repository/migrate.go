package repository

import (
	"gorm.io/gorm"

	"servicemarket/internal/domain"
)

// Migrate creates the schema plus the partial unique index that
// enforces slot exclusivity: at most one non-terminal, non-deleted
// booking per (provider, date, time).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.ProviderProfile{},
		&domain.Service{},
		&bookingModel{},
		&domain.Review{},
	); err != nil {
		return err
	}

	// Partial indexes are supported by both postgres and sqlite.
	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_active_slot
ON bookings (provider_id, booking_date, booking_time)
WHERE status IN ('pending','confirmed','in_progress') AND deleted_at IS NULL
`).Error
}
