package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"servicemarket/internal/apperr"
	"servicemarket/internal/domain"
	"servicemarket/internal/repository"
)

type stubStore struct {
	tx repository.CheckoutTx
}

func (s stubStore) InTx(_ context.Context, fn func(tx repository.CheckoutTx) error) error {
	return fn(s.tx)
}

type MockCheckoutTx struct {
	mock.Mock
}

func (m *MockCheckoutTx) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockCheckoutTx) GetProviderProfile(ctx context.Context, providerID int64) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderProfile), args.Error(1)
}

func (m *MockCheckoutTx) SlotTaken(ctx context.Context, providerID int64, date time.Time, timeOfDay string) (bool, error) {
	args := m.Called(ctx, providerID, date, timeOfDay)
	return args.Bool(0), args.Error(1)
}

func (m *MockCheckoutTx) CreateBooking(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil && b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		Items:       []CartItem{{ServiceID: 7, Quantity: 1}},
		BookingDate: "2030-06-15",
		BookingTime: "14:00",
		Address:     "12 Riverside Avenue, Apt 3",
		Phone:       "+7 777 123 4567",
		Notes:       "ring the doorbell twice",
	}
}

func pipeRepairService() *domain.Service {
	return &domain.Service{
		ID:         7,
		ProviderID: 42,
		Name:       "Pipe Repair",
		Price:      100.00,
		IsActive:   true,
	}
}

func TestCheckout_Success(t *testing.T) {
	tx := new(MockCheckoutTx)
	tx.On("GetService", mock.Anything, int64(7)).Return(pipeRepairService(), nil)
	tx.On("SlotTaken", mock.Anything, int64(42), mock.Anything, "14:00").Return(false, nil)
	tx.On("GetProviderProfile", mock.Anything, int64(42)).Return(&domain.ProviderProfile{
		UserID:               42,
		CommissionPercentage: 10,
		CallingCharge:        20.00,
	}, nil)
	tx.On("CreateBooking", mock.Anything, mock.Anything).Return(nil)

	service := NewService(stubStore{tx: tx}, nil, 15.00)

	bookings, err := service.Checkout(context.Background(), 5, validRequest())

	assert.NoError(t, err)
	assert.Len(t, bookings, 1)

	b := bookings[0]
	assert.Equal(t, int64(999), b.ID)
	assert.NotEmpty(t, b.ReferenceNumber)
	assert.Equal(t, "pending", b.Status)
	assert.Equal(t, 100.00, b.TotalAmount)
	assert.Equal(t, 20.00, b.CallingCharge)
	assert.Equal(t, 80.00, b.RemainingAmount)
	assert.Equal(t, 8.00, b.CommissionAmt)
	assert.Equal(t, 72.00, b.ProviderAmount)
	tx.AssertExpectations(t)
}

func TestCheckout_EmptyCart(t *testing.T) {
	service := NewService(stubStore{tx: new(MockCheckoutTx)}, nil, 15.00)

	req := validRequest()
	req.Items = nil

	_, err := service.Checkout(context.Background(), 5, req)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestCheckout_ShortAddressAndPhone(t *testing.T) {
	service := NewService(stubStore{tx: new(MockCheckoutTx)}, nil, 15.00)

	req := validRequest()
	req.Address = "short"
	_, err := service.Checkout(context.Background(), 5, req)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	req = validRequest()
	req.Phone = "123"
	_, err = service.Checkout(context.Background(), 5, req)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestCheckout_SlotExactlyNowFails(t *testing.T) {
	service := NewService(stubStore{tx: new(MockCheckoutTx)}, nil, 15.00)
	service.now = func() time.Time {
		return time.Date(2030, 6, 15, 14, 0, 0, 0, time.UTC)
	}

	_, err := service.Checkout(context.Background(), 5, validRequest())

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestCheckout_SlotOneSecondInFutureSucceeds(t *testing.T) {
	tx := new(MockCheckoutTx)
	tx.On("GetService", mock.Anything, int64(7)).Return(pipeRepairService(), nil)
	tx.On("SlotTaken", mock.Anything, int64(42), mock.Anything, "14:00").Return(false, nil)
	tx.On("GetProviderProfile", mock.Anything, int64(42)).Return(&domain.ProviderProfile{
		UserID:               42,
		CommissionPercentage: 10,
		CallingCharge:        20.00,
	}, nil)
	tx.On("CreateBooking", mock.Anything, mock.Anything).Return(nil)

	service := NewService(stubStore{tx: tx}, nil, 15.00)
	service.now = func() time.Time {
		return time.Date(2030, 6, 15, 13, 59, 59, 0, time.UTC)
	}

	bookings, err := service.Checkout(context.Background(), 5, validRequest())

	assert.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestCheckout_InactiveServiceFailsWhole(t *testing.T) {
	inactive := pipeRepairService()
	inactive.IsActive = false

	tx := new(MockCheckoutTx)
	tx.On("GetService", mock.Anything, int64(7)).Return(inactive, nil)

	service := NewService(stubStore{tx: tx}, nil, 15.00)

	bookings, err := service.Checkout(context.Background(), 5, validRequest())

	assert.Error(t, err)
	assert.Equal(t, apperr.KindServiceUnavailable, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Pipe Repair")
	assert.Nil(t, bookings)
}

func TestCheckout_MissingServiceFailsWhole(t *testing.T) {
	tx := new(MockCheckoutTx)
	tx.On("GetService", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(stubStore{tx: tx}, nil, 15.00)

	_, err := service.Checkout(context.Background(), 5, validRequest())

	assert.Equal(t, apperr.KindServiceUnavailable, apperr.KindOf(err))
}

func TestCheckout_SlotConflictOnPrecheck(t *testing.T) {
	tx := new(MockCheckoutTx)
	tx.On("GetService", mock.Anything, int64(7)).Return(pipeRepairService(), nil)
	tx.On("SlotTaken", mock.Anything, int64(42), mock.Anything, "14:00").Return(true, nil)

	service := NewService(stubStore{tx: tx}, nil, 15.00)

	_, err := service.Checkout(context.Background(), 5, validRequest())

	assert.Equal(t, apperr.KindSlotConflict, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Pipe Repair")
}

func TestCheckout_ConcurrentInsertLosesWithSlotConflict(t *testing.T) {
	tx := new(MockCheckoutTx)
	tx.On("GetService", mock.Anything, int64(7)).Return(pipeRepairService(), nil)
	tx.On("SlotTaken", mock.Anything, int64(42), mock.Anything, "14:00").Return(false, nil)
	tx.On("GetProviderProfile", mock.Anything, int64(42)).Return(&domain.ProviderProfile{
		UserID:               42,
		CommissionPercentage: 10,
		CallingCharge:        20.00,
	}, nil)
	tx.On("CreateBooking", mock.Anything, mock.Anything).Return(repository.ErrSlotTaken)

	service := NewService(stubStore{tx: tx}, nil, 15.00)

	bookings, err := service.Checkout(context.Background(), 5, validRequest())

	assert.Equal(t, apperr.KindSlotConflict, apperr.KindOf(err))
	assert.Nil(t, bookings)
}

func TestCheckout_SecondItemFailureCreatesNothing(t *testing.T) {
	second := &domain.Service{ID: 8, ProviderID: 43, Name: "Drain Cleaning", Price: 60.00, IsActive: false}

	tx := new(MockCheckoutTx)
	tx.On("GetService", mock.Anything, int64(7)).Return(pipeRepairService(), nil)
	tx.On("GetService", mock.Anything, int64(8)).Return(second, nil)
	tx.On("SlotTaken", mock.Anything, int64(42), mock.Anything, "14:00").Return(false, nil)
	tx.On("GetProviderProfile", mock.Anything, int64(42)).Return(&domain.ProviderProfile{
		UserID:               42,
		CommissionPercentage: 10,
		CallingCharge:        20.00,
	}, nil)
	tx.On("CreateBooking", mock.Anything, mock.Anything).Return(nil)

	service := NewService(stubStore{tx: tx}, nil, 15.00)

	req := validRequest()
	req.Items = append(req.Items, CartItem{ServiceID: 8, Quantity: 1})

	bookings, err := service.Checkout(context.Background(), 5, req)

	// the unit of work fails as a whole; nothing is returned
	assert.Equal(t, apperr.KindServiceUnavailable, apperr.KindOf(err))
	assert.Nil(t, bookings)
}

func TestCheckout_DefaultCallingChargeApplied(t *testing.T) {
	tx := new(MockCheckoutTx)
	tx.On("GetService", mock.Anything, int64(7)).Return(pipeRepairService(), nil)
	tx.On("SlotTaken", mock.Anything, int64(42), mock.Anything, "14:00").Return(false, nil)
	tx.On("GetProviderProfile", mock.Anything, int64(42)).Return(&domain.ProviderProfile{
		UserID:               42,
		CommissionPercentage: 10,
		CallingCharge:        0, // no provider policy -> platform default
	}, nil)
	tx.On("CreateBooking", mock.Anything, mock.Anything).Return(nil)

	service := NewService(stubStore{tx: tx}, nil, 15.00)

	bookings, err := service.Checkout(context.Background(), 5, validRequest())

	assert.NoError(t, err)
	assert.Equal(t, 15.00, bookings[0].CallingCharge)
	assert.Equal(t, 85.00, bookings[0].RemainingAmount)
}
