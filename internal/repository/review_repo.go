package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"servicemarket/internal/domain"
)

// ErrDuplicateReview is returned when a booking already has a review.
var ErrDuplicateReview = errors.New("booking already reviewed")

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		if isUniqueViolation(err, "") {
			return ErrDuplicateReview
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	tx := r.db.WithContext(ctx).First(&rv, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &rv, nil
}

func (r *ReviewRepository) ListByService(ctx context.Context, serviceID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []domain.Review
	tx := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

// SetReply writes the provider's one-time reply. The guard on
// provider_reply IS NULL makes the write idempotence-safe at the
// storage level as well.
func (r *ReviewRepository) SetReply(ctx context.Context, reviewID int64, reply string, at time.Time) (*domain.Review, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ? AND provider_reply IS NULL", reviewID).
		Updates(map[string]any{
			"provider_reply": reply,
			"replied_at":     at,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, reviewID)
}
