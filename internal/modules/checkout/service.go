package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"servicemarket/internal/apperr"
	"servicemarket/internal/domain"
	"servicemarket/internal/pricing"
	"servicemarket/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	minAddressLen = 10
	minPhoneLen   = 10
)

type Service struct {
	store  Store
	notifs NotificationSender

	// platform fallback when the provider has no calling charge policy
	defaultCallingCharge float64

	now func() time.Time
}

func NewService(store Store, notifs NotificationSender, defaultCallingCharge float64) *Service {
	return &Service{
		store:                store,
		notifs:               notifs,
		defaultCallingCharge: defaultCallingCharge,
		now:                  time.Now,
	}
}

// Checkout turns a cart into confirmed-conflict-free pending bookings,
// one per item, all-or-nothing. Prices and commission rates are read
// fresh inside the transaction; nothing from the request is trusted for
// money.
func (s *Service) Checkout(ctx context.Context, clientID int64, req CheckoutRequest) ([]BookingSummary, error) {
	slotDate, slotTime, err := s.validate(clientID, req)
	if err != nil {
		return nil, err
	}

	var created []*domain.Booking

	txErr := s.store.InTx(ctx, func(tx repository.CheckoutTx) error {
		// commission/calling-charge snapshots, read once per provider
		profiles := make(map[int64]*domain.ProviderProfile)

		for _, item := range req.Items {
			svc, err := tx.GetService(ctx, item.ServiceID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.New(apperr.KindServiceUnavailable, "service %d does not exist", item.ServiceID)
				}
				return apperr.Wrap(apperr.KindPersistence, err, "loading service")
			}
			if !svc.IsActive {
				return apperr.New(apperr.KindServiceUnavailable, "service %q is not available for booking", svc.Name)
			}

			taken, err := tx.SlotTaken(ctx, svc.ProviderID, slotDate, slotTime)
			if err != nil {
				return apperr.Wrap(apperr.KindPersistence, err, "checking slot availability")
			}
			if taken {
				return apperr.New(apperr.KindSlotConflict,
					"slot %s %s is already booked for service %q", req.BookingDate, req.BookingTime, svc.Name)
			}

			profile, ok := profiles[svc.ProviderID]
			if !ok {
				profile, err = tx.GetProviderProfile(ctx, svc.ProviderID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return apperr.New(apperr.KindServiceUnavailable, "provider for service %q is not available", svc.Name)
					}
					return apperr.Wrap(apperr.KindPersistence, err, "loading provider profile")
				}
				profiles[svc.ProviderID] = profile
			}

			callingCharge := profile.CallingCharge
			if callingCharge <= 0 {
				callingCharge = s.defaultCallingCharge
			}

			split, err := pricing.ComputeSplit(svc.Price, item.Quantity, callingCharge, profile.CommissionPercentage)
			if err != nil {
				return err
			}

			b := &domain.Booking{
				ReferenceNumber:      newReference(),
				ClientID:             clientID,
				ProviderID:           svc.ProviderID,
				ServiceID:            svc.ID,
				BookingDate:          slotDate,
				BookingTime:          slotTime,
				Quantity:             item.Quantity,
				TotalAmount:          split.Total,
				CallingCharge:        split.CallingCharge,
				RemainingAmount:      split.Remaining,
				CommissionPercentage: profile.CommissionPercentage,
				CommissionAmount:     split.CommissionAmount,
				ProviderAmount:       split.ProviderAmount,
				Status:               domain.BookingPending,
				PaymentStatus:        domain.PaymentPending,
				CallingChargeStatus:  domain.PaymentPending,
				Notes:                req.Notes,
				Address:              strings.TrimSpace(req.Address),
				Phone:                strings.TrimSpace(req.Phone),
			}

			if err := tx.CreateBooking(ctx, b); err != nil {
				if errors.Is(err, repository.ErrSlotTaken) {
					return apperr.New(apperr.KindSlotConflict,
						"slot %s %s was booked concurrently for service %q", req.BookingDate, req.BookingTime, svc.Name)
				}
				return apperr.Wrap(apperr.KindPersistence, err, "creating booking")
			}

			created = append(created, b)
		}

		return nil
	})
	if txErr != nil {
		var ae *apperr.Error
		if errors.As(txErr, &ae) {
			return nil, txErr
		}
		return nil, apperr.Wrap(apperr.KindPersistence, txErr, "checkout transaction failed")
	}

	if s.notifs != nil {
		for _, b := range created {
			_ = s.notifs.NotifyBookingCreated(ctx, b.ProviderID, b.ID, b.ReferenceNumber)
		}
	}

	out := make([]BookingSummary, 0, len(created))
	for _, b := range created {
		out = append(out, BookingSummary{
			ID:              b.ID,
			ReferenceNumber: b.ReferenceNumber,
			ServiceID:       b.ServiceID,
			ProviderID:      b.ProviderID,
			Status:          string(b.Status),
			TotalAmount:     b.TotalAmount,
			CallingCharge:   b.CallingCharge,
			RemainingAmount: b.RemainingAmount,
			CommissionAmt:   b.CommissionAmount,
			ProviderAmount:  b.ProviderAmount,
		})
	}
	return out, nil
}

func (s *Service) validate(clientID int64, req CheckoutRequest) (time.Time, string, error) {
	if clientID <= 0 {
		return time.Time{}, "", apperr.New(apperr.KindInvalidInput, "missing client identity")
	}
	if len(req.Items) == 0 {
		return time.Time{}, "", apperr.New(apperr.KindInvalidInput, "cart is empty")
	}
	for _, item := range req.Items {
		if item.ServiceID <= 0 || item.Quantity < 1 {
			return time.Time{}, "", apperr.New(apperr.KindInvalidInput, "cart item must reference a service with quantity of at least 1")
		}
	}
	if len(strings.TrimSpace(req.Address)) < minAddressLen {
		return time.Time{}, "", apperr.New(apperr.KindInvalidInput, "address must be at least %d characters", minAddressLen)
	}
	if len(strings.TrimSpace(req.Phone)) < minPhoneLen {
		return time.Time{}, "", apperr.New(apperr.KindInvalidInput, "phone must be at least %d characters", minPhoneLen)
	}

	day, err := time.Parse(dateLayout, req.BookingDate)
	if err != nil {
		return time.Time{}, "", apperr.New(apperr.KindInvalidInput, "booking_date must be in YYYY-MM-DD format")
	}
	tod, err := time.Parse(timeLayout, req.BookingTime)
	if err != nil {
		return time.Time{}, "", apperr.New(apperr.KindInvalidInput, "booking_time must be in HH:MM format")
	}

	slotDate := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	slotAt := slotDate.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute)
	if !slotAt.After(s.now().UTC()) {
		return time.Time{}, "", apperr.New(apperr.KindInvalidInput, "booking time must be in the future")
	}

	return slotDate, tod.Format(timeLayout), nil
}

func newReference() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK-" + strings.ToUpper(raw[:10])
}
