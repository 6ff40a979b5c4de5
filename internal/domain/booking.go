package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// Terminal reports whether no further status transitions are permitted.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodStripe       PaymentMethod = "stripe"
	PaymentMethodCash         PaymentMethod = "cash"
)

// Booking is the central entity. Parties are held by id only; the
// monetary split and contact fields are snapshots taken at creation and
// never recomputed from live provider or profile data.
type Booking struct {
	ID              int64  `json:"id"`
	ReferenceNumber string `json:"reference_number"`

	ClientID   int64 `json:"client_id"`
	ProviderID int64 `json:"provider_id"`
	ServiceID  int64 `json:"service_id"`

	// Slot: (ProviderID, BookingDate, BookingTime). BookingDate is a
	// calendar date at UTC midnight, BookingTime is "15:04".
	BookingDate time.Time `json:"booking_date"`
	BookingTime string    `json:"booking_time"`

	Quantity             int     `json:"quantity"`
	TotalAmount          float64 `json:"total_amount"`
	CallingCharge        float64 `json:"calling_charge"`
	RemainingAmount      float64 `json:"remaining_amount"`
	CommissionPercentage float64 `json:"commission_percentage"`
	CommissionAmount     float64 `json:"commission_amount"`
	ProviderAmount       float64 `json:"provider_amount"`

	Status              BookingStatus `json:"status"`
	PaymentStatus       PaymentStatus `json:"payment_status"`
	CallingChargeStatus PaymentStatus `json:"calling_charge_status"`
	PaymentMethod       PaymentMethod `json:"payment_method,omitempty"`
	TransactionID       string        `json:"transaction_id,omitempty"`
	TransactionDate     *time.Time    `json:"transaction_date,omitempty"`

	Notes   string `json:"notes,omitempty"`
	Address string `json:"address"`
	Phone   string `json:"phone"`

	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
}
