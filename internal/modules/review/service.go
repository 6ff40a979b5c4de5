package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"servicemarket/internal/apperr"
	"servicemarket/internal/domain"
	"servicemarket/internal/repository"
)

type Service struct {
	reviews  ReviewRepository
	bookings BookingReader
}

func NewService(reviews ReviewRepository, bookings BookingReader) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// Create leaves a review for a completed booking. Only the client who
// made the booking may review it, and each booking takes one review.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateReviewRequest) (*domain.Review, error) {
	if actor.Role != domain.RoleClient {
		return nil, apperr.New(apperr.KindForbidden, "only clients can leave reviews")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.New(apperr.KindInvalidInput, "rating must be between 1 and 5")
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "booking %d not found", req.BookingID)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "loading booking")
	}
	if b.ClientID != actor.ID {
		return nil, apperr.New(apperr.KindForbidden, "you can only review your own bookings")
	}
	if b.Status != domain.BookingCompleted {
		return nil, apperr.New(apperr.KindInvalidInput, "only completed bookings can be reviewed")
	}

	rv := &domain.Review{
		BookingID:  b.ID,
		ServiceID:  b.ServiceID,
		ClientID:   b.ClientID,
		ProviderID: b.ProviderID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, apperr.New(apperr.KindInvalidInput, "booking %d already has a review", b.ID)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "saving review")
	}
	return rv, nil
}

// Reply records the provider's one-time response to a review.
func (s *Service) Reply(ctx context.Context, actor domain.Actor, reviewID int64, req ReplyRequest) (*domain.Review, error) {
	if actor.Role != domain.RoleProvider {
		return nil, apperr.New(apperr.KindForbidden, "only providers can reply to reviews")
	}
	reply := strings.TrimSpace(req.Reply)
	if reply == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "reply cannot be empty")
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "review %d not found", reviewID)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "loading review")
	}
	if rv.ProviderID != actor.ID {
		return nil, apperr.New(apperr.KindForbidden, "you can only reply to reviews of your own services")
	}
	if rv.ProviderReply != nil {
		return nil, apperr.New(apperr.KindInvalidTransition, "review %d already has a reply", reviewID)
	}

	updated, err := s.reviews.SetReply(ctx, reviewID, reply, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindInvalidTransition, "review %d already has a reply", reviewID)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "saving reply")
	}
	return updated, nil
}

func (s *Service) ListByService(ctx context.Context, serviceID int64, limit, offset int) ([]domain.Review, error) {
	out, err := s.reviews.ListByService(ctx, serviceID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, err, "listing reviews")
	}
	return out, nil
}
