package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"servicemarket/internal/apperr"
	"servicemarket/internal/domain"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings BookingStore
	notifs   NotificationSender
}

func NewService(bookings BookingStore, notifs NotificationSender) *Service {
	return &Service{bookings: bookings, notifs: notifs}
}

// ConfirmBankTransfer records a client's claim that the calling charge
// was paid by bank transfer. Verification of the actual transfer is a
// manual back-office step; this call only captures the transaction
// reference against the booking.
func (s *Service) ConfirmBankTransfer(ctx context.Context, req ConfirmBankTransferRequest) (*domain.Booking, error) {
	if strings.TrimSpace(req.Reference) == "" || strings.TrimSpace(req.TransactionID) == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "reference and transaction_id are required")
	}
	txnDate, err := time.Parse(dateLayout, req.TransactionDate)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, "transaction_date must be in YYYY-MM-DD format")
	}

	b, err := s.bookings.GetByReference(ctx, req.Reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "booking %s not found", req.Reference)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "loading booking")
	}

	if b.CallingChargeStatus != domain.PaymentPending {
		return nil, apperr.New(apperr.KindInvalidTransition, "calling charge for %s is already %s", b.ReferenceNumber, b.CallingChargeStatus)
	}
	if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
		return nil, apperr.New(apperr.KindInvalidTransition, "booking %s is %s and no longer accepts payment", b.ReferenceNumber, b.Status)
	}

	b.CallingChargeStatus = domain.PaymentPaid
	b.PaymentMethod = domain.PaymentMethodBankTransfer
	b.TransactionID = strings.TrimSpace(req.TransactionID)
	b.TransactionDate = &txnDate
	if req.Notes != "" {
		if b.Notes != "" {
			b.Notes += "\n"
		}
		b.Notes += strings.TrimSpace(req.Notes)
	}

	if err := s.bookings.RecordBankTransfer(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "booking %s not found", req.Reference)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "recording bank transfer")
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyPaymentRecorded(ctx, b.ProviderID, b.ID, b.ReferenceNumber)
	}

	return b, nil
}
