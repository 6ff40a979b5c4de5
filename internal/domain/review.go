package domain

import "time"

// Review is one-to-one with a completed booking. Once the provider has
// replied the review is immutable; the reply itself is a one-time write.
type Review struct {
	ID            int64      `json:"id"`
	BookingID     int64      `json:"booking_id" gorm:"uniqueIndex"`
	ServiceID     int64      `json:"service_id"`
	ClientID      int64      `json:"client_id"`
	ProviderID    int64      `json:"provider_id"`
	Rating        int        `json:"rating"`
	Comment       string     `json:"comment,omitempty"`
	ProviderReply *string    `json:"provider_reply,omitempty"`
	RepliedAt     *time.Time `json:"replied_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
