package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"servicemarket/internal/apperr"
	"servicemarket/internal/domain"
	"servicemarket/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateTransition(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error {
	args := m.Called(ctx, b, from)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, providerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:         123,
		ClientID:   5,
		ProviderID: 42,
		ServiceID:  7,
		Status:     domain.BookingPending,
	}
}

func TestTransition_ProviderCompletesOwnPendingBooking(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(123)).Return(pendingBooking(), nil)
	repo.On("UpdateTransition", mock.Anything, mock.Anything, domain.BookingPending).Return(nil)

	service := NewService(repo, nil)

	b, err := service.Transition(context.Background(), 123,
		domain.Actor{ID: 42, Role: domain.RoleProvider}, domain.BookingCompleted, "")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
	assert.NotNil(t, b.CompletedAt)
	repo.AssertExpectations(t)
}

func TestTransition_ClientMayNotComplete(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(123)).Return(pendingBooking(), nil)

	service := NewService(repo, nil)

	_, err := service.Transition(context.Background(), 123,
		domain.Actor{ID: 5, Role: domain.RoleClient}, domain.BookingCompleted, "")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestTransition_AdminCannotCancelCompleted(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.BookingCompleted

	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(123)).Return(b, nil)

	service := NewService(repo, nil)

	_, err := service.Transition(context.Background(), 123,
		domain.Actor{ID: 1, Role: domain.RoleAdmin}, domain.BookingCancelled, "mistake")

	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
}

func TestTransition_NoOpIsRejected(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(123)).Return(pendingBooking(), nil)

	service := NewService(repo, nil)

	// re-applying the current status must fail, e.g. a duplicate click
	_, err := service.Transition(context.Background(), 123,
		domain.Actor{ID: 1, Role: domain.RoleAdmin}, domain.BookingPending, "")

	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
}

func TestTransition_ProviderMustOwnBooking(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(123)).Return(pendingBooking(), nil)

	service := NewService(repo, nil)

	_, err := service.Transition(context.Background(), 123,
		domain.Actor{ID: 777, Role: domain.RoleProvider}, domain.BookingConfirmed, "")

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestTransition_ClientCancelsOwnPendingBooking(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(123)).Return(pendingBooking(), nil)
	repo.On("UpdateTransition", mock.Anything, mock.Anything, domain.BookingPending).Return(nil)

	service := NewService(repo, nil)

	b, err := service.Transition(context.Background(), 123,
		domain.Actor{ID: 5, Role: domain.RoleClient}, domain.BookingCancelled, "changed my mind")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.NotNil(t, b.CancelledAt)
	assert.Equal(t, "changed my mind", b.CancellationReason)
}

func TestTransition_LostRaceIsRejected(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(123)).Return(pendingBooking(), nil)
	repo.On("UpdateTransition", mock.Anything, mock.Anything, domain.BookingPending).
		Return(repository.ErrStatusChanged)

	service := NewService(repo, nil)

	// A concurrent transition moved the booking between our read and
	// our write; the stale decision must not go through.
	_, err := service.Transition(context.Background(), 123,
		domain.Actor{ID: 5, Role: domain.RoleClient}, domain.BookingCancelled, "changed my mind")

	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
}

func TestTransition_UnknownBooking(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(999)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo, nil)

	_, err := service.Transition(context.Background(), 999,
		domain.Actor{ID: 1, Role: domain.RoleAdmin}, domain.BookingConfirmed, "")

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTransition_UnknownTargetStatus(t *testing.T) {
	service := NewService(new(MockBookingRepository), nil)

	_, err := service.Transition(context.Background(), 123,
		domain.Actor{ID: 1, Role: domain.RoleAdmin}, domain.BookingStatus("archived"), "")

	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestSetPaymentStatus_AdminOnly(t *testing.T) {
	service := NewService(new(MockBookingRepository), nil)

	_, err := service.SetPaymentStatus(context.Background(), 123,
		domain.Actor{ID: 42, Role: domain.RoleProvider}, domain.PaymentRefunded)

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestSetPaymentStatus_AdminRecordsRefund(t *testing.T) {
	refunded := pendingBooking()
	refunded.PaymentStatus = domain.PaymentRefunded

	repo := new(MockBookingRepository)
	repo.On("UpdatePaymentStatus", mock.Anything, int64(123), domain.PaymentRefunded).Return(nil)
	repo.On("GetByID", mock.Anything, int64(123)).Return(refunded, nil)

	service := NewService(repo, nil)

	b, err := service.SetPaymentStatus(context.Background(), 123,
		domain.Actor{ID: 1, Role: domain.RoleAdmin}, domain.PaymentRefunded)

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, b.PaymentStatus)
}

func TestGetForActor_ScopesReads(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(123)).Return(pendingBooking(), nil)

	service := NewService(repo, nil)

	_, err := service.GetForActor(context.Background(), 123, domain.Actor{ID: 5, Role: domain.RoleClient})
	assert.NoError(t, err)

	_, err = service.GetForActor(context.Background(), 123, domain.Actor{ID: 6, Role: domain.RoleClient})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = service.GetForActor(context.Background(), 123, domain.Actor{ID: 1, Role: domain.RoleAdmin})
	assert.NoError(t, err)
}

func TestDelete_AdminOnly(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("SoftDelete", mock.Anything, int64(123)).Return(nil)

	service := NewService(repo, nil)

	err := service.Delete(context.Background(), 123, domain.Actor{ID: 5, Role: domain.RoleClient})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = service.Delete(context.Background(), 123, domain.Actor{ID: 1, Role: domain.RoleAdmin})
	assert.NoError(t, err)
}
