package checkout

import (
	"context"

	"servicemarket/internal/repository"
)

// Store opens the atomic unit of work spanning all cart items.
type Store interface {
	InTx(ctx context.Context, fn func(tx repository.CheckoutTx) error) error
}

// NotificationSender delivers best-effort diagnostics; never required
// for correctness.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, providerUserID, bookingID int64, reference string) error
}
