package projection

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

// Service reads the repository once per call and projects the result
type Service struct {
	store   repository.Store
	started time.Time
}

func NewService(store repository.Store) *Service {
	return &Service{store: store, started: time.Now()}
}

func (s *Service) Catalog(ctx context.Context, category string, q Query) ([]domain.Product, error) {
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, err
	}
	return CatalogByCategory(products, category, q), nil
}

func (s *Service) Stories(ctx context.Context) ([]domain.Story, error) {
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, err
	}
	return StoryFeed(products), nil
}

func (s *Service) Rates(ctx context.Context) (domain.MetalRate, error) {
	rate, err := s.store.Rates().Get(ctx, domain.RateKey)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// defaults are stamped with the service start so repeated reads agree
		return RateSnapshot(nil, s.started), nil
	case err != nil:
		return domain.MetalRate{}, err
	}
	return RateSnapshot(rate, s.started), nil
}
