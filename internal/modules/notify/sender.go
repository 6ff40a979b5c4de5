package notify

import (
	"context"
	"time"
)

// Event is the wire shape pushed to connected clients.
type Event struct {
	Type      string    `json:"type"`
	BookingID int64     `json:"booking_id"`
	Reference string    `json:"reference,omitempty"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sender pushes booking lifecycle events through the hub. Delivery is
// best effort; offline users simply miss the event.
type Sender struct {
	hub *Hub
}

func NewSender(hub *Hub) *Sender {
	return &Sender{hub: hub}
}

func (s *Sender) NotifyBookingCreated(ctx context.Context, providerUserID, bookingID int64, reference string) error {
	s.hub.SendToUser(providerUserID, Event{
		Type:      "booking.created",
		BookingID: bookingID,
		Reference: reference,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

func (s *Sender) NotifyBookingStatusChanged(ctx context.Context, userID, bookingID int64, status string) error {
	s.hub.SendToUser(userID, Event{
		Type:      "booking.status_changed",
		BookingID: bookingID,
		Status:    status,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

func (s *Sender) NotifyPaymentRecorded(ctx context.Context, providerUserID, bookingID int64, reference string) error {
	s.hub.SendToUser(providerUserID, Event{
		Type:      "payment.recorded",
		BookingID: bookingID,
		Reference: reference,
		Timestamp: time.Now().UTC(),
	})
	return nil
}
