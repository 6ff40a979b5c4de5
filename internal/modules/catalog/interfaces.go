package catalog

import (
	"context"

	"servicemarket/internal/domain"
)

type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListActive(ctx context.Context, limit, offset int) ([]domain.Service, error)
	ListByProvider(ctx context.Context, providerID int64) ([]domain.Service, error)
}
