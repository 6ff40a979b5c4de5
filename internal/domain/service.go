package domain

import "time"

// Service is a priced, durationed offering owned by a provider.
// IsActive gates whether new bookings may reference it.
type Service struct {
	ID              int64     `json:"id"`
	ProviderID      int64     `json:"provider_id" validate:"required"`
	Name            string    `json:"name" validate:"required"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price" validate:"gte=0"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
