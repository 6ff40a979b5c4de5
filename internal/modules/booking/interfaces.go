package booking

import (
	"context"

	"servicemarket/internal/domain"
)

// BookingRepository is the persistence boundary for lifecycle
// mutations. Only this module and the checkout engine ever write
// booking state.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateTransition(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	SoftDelete(ctx context.Context, id int64) error
	ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error)
	ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Booking, error)
}

type NotificationSender interface {
	NotifyBookingStatusChanged(ctx context.Context, userID, bookingID int64, status string) error
}
