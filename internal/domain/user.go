package domain

import "time"

type UserRole string

const (
	RoleClient   UserRole = "client"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email" gorm:"size:255;uniqueIndex"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProviderProfile holds per-provider marketplace policy. The commission
// percentage here is only a live setting: bookings snapshot it at
// creation and never re-read it.
type ProviderProfile struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"user_id" gorm:"uniqueIndex"`
	CompanyName          string    `json:"company_name,omitempty"`
	CommissionPercentage float64   `json:"commission_percentage"`
	CallingCharge        float64   `json:"calling_charge"`
	CreatedAt            time.Time `json:"created_at"`
}

// Actor identifies who is performing a state-machine or checkout call.
// Passed explicitly; services never read ambient session state.
type Actor struct {
	ID   int64
	Role UserRole
}
