package checkout

type CartItem struct {
	ServiceID int64 `json:"service_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Items       []CartItem `json:"items" binding:"required"`
	BookingDate string     `json:"booking_date" binding:"required"` // 2006-01-02
	BookingTime string     `json:"booking_time" binding:"required"` // 15:04
	Address     string     `json:"address" binding:"required"`
	Phone       string     `json:"phone" binding:"required"`
	Notes       string     `json:"notes"`
}

// BookingSummary is what checkout exposes to the presentation layer:
// identity, status and the financial breakdown, nothing mutable.
type BookingSummary struct {
	ID              int64   `json:"id"`
	ReferenceNumber string  `json:"reference_number"`
	ServiceID       int64   `json:"service_id"`
	ProviderID      int64   `json:"provider_id"`
	Status          string  `json:"status"`
	TotalAmount     float64 `json:"total_amount"`
	CallingCharge   float64 `json:"calling_charge"`
	RemainingAmount float64 `json:"remaining_amount"`
	CommissionAmt   float64 `json:"commission_amount"`
	ProviderAmount  float64 `json:"provider_amount"`
}
