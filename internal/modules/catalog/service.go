package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"servicemarket/internal/apperr"
	"servicemarket/internal/domain"
)

// Service exposes the read side of the catalog. Listings and lookups
// only; service management stays with the seeding tooling.
type Service struct {
	services ServiceRepository
}

func NewService(services ServiceRepository) *Service {
	return &Service{services: services}
}

func (s *Service) ListActive(ctx context.Context, limit, offset int) ([]domain.Service, error) {
	out, err := s.services.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, err, "listing services")
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "service %d not found", id)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "loading service")
	}
	return svc, nil
}

func (s *Service) ListByProvider(ctx context.Context, providerID int64) ([]domain.Service, error) {
	out, err := s.services.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, err, "listing provider services")
	}
	return out, nil
}
