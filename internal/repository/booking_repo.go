package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"servicemarket/internal/domain"
)

// ErrSlotTaken is returned when an insert hits the active-slot unique
// index: another non-terminal booking already occupies
// (provider_id, booking_date, booking_time).
var ErrSlotTaken = errors.New("slot already booked")

// ErrStatusChanged is returned when a transition write finds the row no
// longer in the status the decision was made against: a concurrent
// transition got there first.
var ErrStatusChanged = errors.New("booking status changed concurrently")

const activeSlotIndex = "idx_active_slot"

// activeStatuses are the non-terminal statuses that count toward slot
// occupancy.
var activeStatuses = []string{
	string(domain.BookingPending),
	string(domain.BookingConfirmed),
	string(domain.BookingInProgress),
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64  `gorm:"column:id;primaryKey"`
	ReferenceNumber string `gorm:"column:reference_number;size:32;uniqueIndex"`

	ClientID   int64 `gorm:"column:client_id;index"`
	ProviderID int64 `gorm:"column:provider_id;index"`
	ServiceID  int64 `gorm:"column:service_id;index"`

	BookingDate time.Time `gorm:"column:booking_date"`
	BookingTime string    `gorm:"column:booking_time;size:5"`

	Quantity             int     `gorm:"column:quantity"`
	TotalAmount          float64 `gorm:"column:total_amount"`
	CallingCharge        float64 `gorm:"column:calling_charge"`
	RemainingAmount      float64 `gorm:"column:remaining_amount"`
	CommissionPercentage float64 `gorm:"column:commission_percentage"`
	CommissionAmount     float64 `gorm:"column:commission_amount"`
	ProviderAmount       float64 `gorm:"column:provider_amount"`

	Status              string     `gorm:"column:status;size:20"`
	PaymentStatus       string     `gorm:"column:payment_status;size:20"`
	CallingChargeStatus string     `gorm:"column:calling_charge_status;size:20"`
	PaymentMethod       string     `gorm:"column:payment_method;size:20"`
	TransactionID       string     `gorm:"column:transaction_id;size:128"`
	TransactionDate     *time.Time `gorm:"column:transaction_date"`

	Notes   *string `gorm:"column:notes;type:text"`
	Address string  `gorm:"column:address;type:text"`
	Phone   string  `gorm:"column:phone;size:32"`

	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
	CompletedAt        *time.Time     `gorm:"column:completed_at"`
	CancelledAt        *time.Time     `gorm:"column:cancelled_at"`
	CancellationReason string         `gorm:"column:cancellation_reason;type:text"`
	DeletedAt          gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:                   m.ID,
		ReferenceNumber:      m.ReferenceNumber,
		ClientID:             m.ClientID,
		ProviderID:           m.ProviderID,
		ServiceID:            m.ServiceID,
		BookingDate:          m.BookingDate,
		BookingTime:          m.BookingTime,
		Quantity:             m.Quantity,
		TotalAmount:          m.TotalAmount,
		CallingCharge:        m.CallingCharge,
		RemainingAmount:      m.RemainingAmount,
		CommissionPercentage: m.CommissionPercentage,
		CommissionAmount:     m.CommissionAmount,
		ProviderAmount:       m.ProviderAmount,
		Status:               domain.BookingStatus(m.Status),
		PaymentStatus:        domain.PaymentStatus(m.PaymentStatus),
		CallingChargeStatus:  domain.PaymentStatus(m.CallingChargeStatus),
		PaymentMethod:        domain.PaymentMethod(m.PaymentMethod),
		TransactionID:        m.TransactionID,
		TransactionDate:      m.TransactionDate,
		Notes:                notes,
		Address:              m.Address,
		Phone:                m.Phone,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		CompletedAt:          m.CompletedAt,
		CancelledAt:          m.CancelledAt,
		CancellationReason:   m.CancellationReason,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:                   b.ID,
		ReferenceNumber:      b.ReferenceNumber,
		ClientID:             b.ClientID,
		ProviderID:           b.ProviderID,
		ServiceID:            b.ServiceID,
		BookingDate:          b.BookingDate,
		BookingTime:          b.BookingTime,
		Quantity:             b.Quantity,
		TotalAmount:          b.TotalAmount,
		CallingCharge:        b.CallingCharge,
		RemainingAmount:      b.RemainingAmount,
		CommissionPercentage: b.CommissionPercentage,
		CommissionAmount:     b.CommissionAmount,
		ProviderAmount:       b.ProviderAmount,
		Status:               string(b.Status),
		PaymentStatus:        string(b.PaymentStatus),
		CallingChargeStatus:  string(b.CallingChargeStatus),
		PaymentMethod:        string(b.PaymentMethod),
		TransactionID:        b.TransactionID,
		TransactionDate:      b.TransactionDate,
		Notes:                notes,
		Address:              b.Address,
		Phone:                b.Phone,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
		CompletedAt:          b.CompletedAt,
		CancelledAt:          b.CancelledAt,
		CancellationReason:   b.CancellationReason,
	}
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, ref string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("reference_number = ?", ref).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	return r.list(ctx, "client_id = ?", clientID, limit, offset)
}

func (r *BookingRepository) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Booking, error) {
	return r.list(ctx, "provider_id = ?", providerID, limit, offset)
}

func (r *BookingRepository) list(ctx context.Context, cond string, arg int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// UpdateTransition persists the outcome of a state-machine transition:
// status plus the timestamps and reason the transition stamped. The
// write is a compare-and-swap against the status the caller read, so a
// transition that raced a concurrent one cannot overwrite its result.
func (r *BookingRepository) UpdateTransition(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", b.ID, string(from)).
		Select("status", "completed_at", "cancelled_at", "cancellation_reason", "updated_at").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&bookingModel{}).
			Where("id = ?", b.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrStatusChanged
	}
	return nil
}

// UpdatePaymentStatus writes payment_status directly. Admin-only path;
// the service layer enforces the actor gate.
func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("payment_status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecordBankTransfer captures a client's transfer claim against the
// calling charge.
func (r *BookingRepository) RecordBankTransfer(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", b.ID).
		Select("calling_charge_status", "payment_method", "transaction_id", "transaction_date", "notes", "updated_at").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete hides a booking from all queries while keeping the row for
// audit.
func (r *BookingRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// isUniqueViolation detects duplicate-key failures on both postgres
// (pgconn, SQLSTATE 23505) and sqlite (message match).
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "duplicate key value violates unique constraint") ||
		strings.Contains(s, "23505")
}
