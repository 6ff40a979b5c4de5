package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"servicemarket/internal/domain"
)

// CheckoutTx is the slice of storage the checkout engine may touch
// inside one atomic unit of work. Everything runs against the same
// transaction; either every cart item's booking commits or none does.
type CheckoutTx interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetProviderProfile(ctx context.Context, providerID int64) (*domain.ProviderProfile, error)
	SlotTaken(ctx context.Context, providerID int64, date time.Time, timeOfDay string) (bool, error)
	CreateBooking(ctx context.Context, b *domain.Booking) error
}

type CheckoutStore struct {
	db *gorm.DB
}

func NewCheckoutStore(db *gorm.DB) *CheckoutStore {
	return &CheckoutStore{db: db}
}

func (s *CheckoutStore) InTx(ctx context.Context, fn func(tx CheckoutTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&checkoutTx{db: tx})
	})
}

type checkoutTx struct {
	db *gorm.DB
}

func (t *checkoutTx) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	var svc domain.Service
	tx := t.db.WithContext(ctx).First(&svc, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &svc, nil
}

func (t *checkoutTx) GetProviderProfile(ctx context.Context, providerID int64) (*domain.ProviderProfile, error) {
	var p domain.ProviderProfile
	tx := t.db.WithContext(ctx).Where("user_id = ?", providerID).First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (t *checkoutTx) SlotTaken(ctx context.Context, providerID int64, date time.Time, timeOfDay string) (bool, error) {
	var cnt int64
	tx := t.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("provider_id = ? AND booking_date = ? AND booking_time = ? AND status IN ?",
			providerID, date, timeOfDay, activeStatuses).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// CreateBooking inserts one booking. The active-slot unique index is
// the last line of defense against two concurrent checkouts passing the
// SlotTaken pre-check for the same slot: the loser's insert fails and
// the whole unit of work rolls back.
func (t *checkoutTx) CreateBooking(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := t.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error, activeSlotIndex) {
			return ErrSlotTaken
		}
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}
