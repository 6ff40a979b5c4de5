package payment

import (
	"context"

	"servicemarket/internal/domain"
)

type BookingStore interface {
	GetByReference(ctx context.Context, ref string) (*domain.Booking, error)
	RecordBankTransfer(ctx context.Context, b *domain.Booking) error
}

type NotificationSender interface {
	NotifyPaymentRecorded(ctx context.Context, providerUserID, bookingID int64, reference string) error
}
