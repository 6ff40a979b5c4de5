package review

import (
	"context"
	"time"

	"servicemarket/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByService(ctx context.Context, serviceID int64, limit, offset int) ([]domain.Review, error)
	SetReply(ctx context.Context, reviewID int64, reply string, at time.Time) (*domain.Review, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
