package catalog

import (
	"context"

	"github.com/asaskevich/EventBus"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

type RateInput struct {
	Gold   float64 `json:"gold" validate:"gt=0"`
	Silver float64 `json:"silver" validate:"gt=0"`
}

type RateService struct {
	repo repository.RateRepository
	bus  EventBus.Bus
}

// Update writes new rates, keeping the replaced ones as previous values
func (s *RateService) Update(ctx context.Context, in RateInput) (*domain.MetalRate, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	rate, err := s.repo.UpsertSingleton(ctx, domain.RateKey, in.Gold, in.Silver)
	if err != nil {
		return nil, err
	}
	publish(s.bus, TopicUpdated, Event{Kind: KindRates, ID: domain.RateKey})
	return rate, nil
}
