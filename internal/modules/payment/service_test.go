package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"servicemarket/internal/apperr"
	"servicemarket/internal/domain"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) GetByReference(ctx context.Context, ref string) (*domain.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) RecordBankTransfer(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func unpaidBooking() *domain.Booking {
	return &domain.Booking{
		ID:                  77,
		ClientID:            5,
		ProviderID:          42,
		ReferenceNumber:     "BK-AB12CD34EF",
		Status:              domain.BookingPending,
		CallingChargeStatus: domain.PaymentPending,
	}
}

func validRequest() ConfirmBankTransferRequest {
	return ConfirmBankTransferRequest{
		Reference:       "BK-AB12CD34EF",
		TransactionID:   "TXN-998877",
		TransactionDate: "2026-03-15",
	}
}

func TestConfirmBankTransfer_RecordsTransaction(t *testing.T) {
	store := new(MockBookingStore)
	store.On("GetByReference", mock.Anything, "BK-AB12CD34EF").Return(unpaidBooking(), nil)
	store.On("RecordBankTransfer", mock.Anything, mock.Anything).Return(nil)

	service := NewService(store, nil)

	req := validRequest()
	req.Notes = "paid from savings account"

	b, err := service.ConfirmBankTransfer(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, b.CallingChargeStatus)
	assert.Equal(t, domain.PaymentMethodBankTransfer, b.PaymentMethod)
	assert.Equal(t, "TXN-998877", b.TransactionID)
	assert.NotNil(t, b.TransactionDate)
	assert.Equal(t, "paid from savings account", b.Notes)
	store.AssertExpectations(t)
}

func TestConfirmBankTransfer_AppendsToExistingNotes(t *testing.T) {
	b := unpaidBooking()
	b.Notes = "ring the doorbell twice"

	store := new(MockBookingStore)
	store.On("GetByReference", mock.Anything, "BK-AB12CD34EF").Return(b, nil)
	store.On("RecordBankTransfer", mock.Anything, mock.Anything).Return(nil)

	service := NewService(store, nil)

	req := validRequest()
	req.Notes = "transfer sent 15 March"

	updated, err := service.ConfirmBankTransfer(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, "ring the doorbell twice\ntransfer sent 15 March", updated.Notes)
}

func TestConfirmBankTransfer_UnknownReference(t *testing.T) {
	store := new(MockBookingStore)
	store.On("GetByReference", mock.Anything, "BK-MISSING000").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(store, nil)

	req := validRequest()
	req.Reference = "BK-MISSING000"

	_, err := service.ConfirmBankTransfer(context.Background(), req)

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestConfirmBankTransfer_AlreadyPaid(t *testing.T) {
	b := unpaidBooking()
	b.CallingChargeStatus = domain.PaymentPaid

	store := new(MockBookingStore)
	store.On("GetByReference", mock.Anything, "BK-AB12CD34EF").Return(b, nil)

	service := NewService(store, nil)

	_, err := service.ConfirmBankTransfer(context.Background(), validRequest())

	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
}

func TestConfirmBankTransfer_RejectedAfterCancellation(t *testing.T) {
	b := unpaidBooking()
	b.Status = domain.BookingCancelled

	store := new(MockBookingStore)
	store.On("GetByReference", mock.Anything, "BK-AB12CD34EF").Return(b, nil)

	service := NewService(store, nil)

	_, err := service.ConfirmBankTransfer(context.Background(), validRequest())

	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
	store.AssertNotCalled(t, "RecordBankTransfer", mock.Anything, mock.Anything)
}

func TestConfirmBankTransfer_AcceptedWhileConfirmed(t *testing.T) {
	b := unpaidBooking()
	b.Status = domain.BookingConfirmed

	store := new(MockBookingStore)
	store.On("GetByReference", mock.Anything, "BK-AB12CD34EF").Return(b, nil)
	store.On("RecordBankTransfer", mock.Anything, mock.Anything).Return(nil)

	service := NewService(store, nil)

	updated, err := service.ConfirmBankTransfer(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, updated.CallingChargeStatus)
}

func TestConfirmBankTransfer_BadTransactionDate(t *testing.T) {
	service := NewService(new(MockBookingStore), nil)

	req := validRequest()
	req.TransactionDate = "15/03/2026"

	_, err := service.ConfirmBankTransfer(context.Background(), req)

	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}
