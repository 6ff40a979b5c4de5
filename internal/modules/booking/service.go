package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"servicemarket/internal/apperr"
	"servicemarket/internal/domain"
	"servicemarket/internal/repository"
)

type Service struct {
	bookings BookingRepository
	notifs   NotificationSender

	now func() time.Time
}

func NewService(bookings BookingRepository, notifs NotificationSender) *Service {
	return &Service{
		bookings: bookings,
		notifs:   notifs,
		now:      time.Now,
	}
}

// Transition moves a booking along the lifecycle on behalf of an
// explicit actor. Re-applying the current status is rejected so
// duplicate submissions surface instead of silently passing.
func (s *Service) Transition(ctx context.Context, bookingID int64, actor domain.Actor, target domain.BookingStatus, reason string) (*domain.Booking, error) {
	if !target.Valid() {
		return nil, apperr.New(apperr.KindInvalidInput, "unknown booking status %q", target)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "booking %d not found", bookingID)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "loading booking")
	}

	if target == b.Status {
		return nil, apperr.New(apperr.KindInvalidTransition, "booking is already %s", b.Status)
	}
	if !transitionKnown(b.Status, target) {
		return nil, apperr.New(apperr.KindInvalidTransition, "cannot move booking from %s to %s", b.Status, target)
	}
	if !roleAllowed(b.Status, target, actor.Role) {
		return nil, apperr.New(apperr.KindForbidden, "role %s may not move booking from %s to %s", actor.Role, b.Status, target)
	}
	if err := s.checkOwnership(b, actor); err != nil {
		return nil, err
	}

	from := b.Status
	now := s.now().UTC()
	b.Status = target
	switch target {
	case domain.BookingCancelled:
		b.CancelledAt = &now
		b.CancellationReason = reason
	case domain.BookingCompleted:
		b.CompletedAt = &now
	}

	// The write compares against the status read above; losing that
	// race means the matrix was checked against stale state.
	if err := s.bookings.UpdateTransition(ctx, b, from); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "booking %d not found", bookingID)
		}
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, apperr.New(apperr.KindInvalidTransition, "booking was updated concurrently and is no longer %s", from)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "updating booking status")
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingStatusChanged(ctx, b.ClientID, b.ID, string(target))
		_ = s.notifs.NotifyBookingStatusChanged(ctx, b.ProviderID, b.ID, string(target))
	}

	return b, nil
}

// SetPaymentStatus records a manual payment-status change, e.g. a
// refund captured outside the system. Admin only; all other payment
// writes go through the bank-transfer confirmation path.
func (s *Service) SetPaymentStatus(ctx context.Context, bookingID int64, actor domain.Actor, status domain.PaymentStatus) (*domain.Booking, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperr.New(apperr.KindForbidden, "only admin may set payment status directly")
	}
	if !status.Valid() {
		return nil, apperr.New(apperr.KindInvalidInput, "unknown payment status %q", status)
	}

	if err := s.bookings.UpdatePaymentStatus(ctx, bookingID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "booking %d not found", bookingID)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "updating payment status")
	}

	return s.getUpdated(ctx, bookingID)
}

// Delete soft-deletes a booking: hidden from every query, retained for
// audit. Admin only.
func (s *Service) Delete(ctx context.Context, bookingID int64, actor domain.Actor) error {
	if actor.Role != domain.RoleAdmin {
		return apperr.New(apperr.KindForbidden, "only admin may delete bookings")
	}
	if err := s.bookings.SoftDelete(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "booking %d not found", bookingID)
		}
		return apperr.Wrap(apperr.KindPersistence, err, "deleting booking")
	}
	return nil
}

// GetForActor returns a booking readable by the actor: admins see
// everything, clients and providers only their own.
func (s *Service) GetForActor(ctx context.Context, bookingID int64, actor domain.Actor) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "booking %d not found", bookingID)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "loading booking")
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleClient:
		if b.ClientID != actor.ID {
			return nil, apperr.New(apperr.KindForbidden, "booking belongs to another client")
		}
	case domain.RoleProvider:
		if b.ProviderID != actor.ID {
			return nil, apperr.New(apperr.KindForbidden, "booking belongs to another provider")
		}
	default:
		return nil, apperr.New(apperr.KindForbidden, "unknown role %s", actor.Role)
	}

	return b, nil
}

func (s *Service) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	out, err := s.bookings.ListByClient(ctx, clientID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, err, "listing client bookings")
	}
	return out, nil
}

func (s *Service) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Booking, error) {
	out, err := s.bookings.ListByProvider(ctx, providerID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, err, "listing provider bookings")
	}
	return out, nil
}

func (s *Service) checkOwnership(b *domain.Booking, actor domain.Actor) error {
	switch actor.Role {
	case domain.RoleProvider:
		if b.ProviderID != actor.ID {
			return apperr.New(apperr.KindForbidden, "booking belongs to another provider")
		}
	case domain.RoleClient:
		if b.ClientID != actor.ID {
			return apperr.New(apperr.KindForbidden, "booking belongs to another client")
		}
	}
	return nil
}

func (s *Service) getUpdated(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, err, "reloading booking")
	}
	return b, nil
}
