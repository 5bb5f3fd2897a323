package catalog

import (
	"context"

	"github.com/asaskevich/EventBus"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/media"
	"github.com/shreejewels/storefront/internal/repository"
)

// SliderInput is a slider form. ID may be supplied by the client on create.
type SliderInput struct {
	ID       string            `validate:"max=64"`
	Title    string            `validate:"max=200"`
	Subtitle string            `validate:"max=500"`
	Link     string            `validate:"max=1024"`
	Image    media.ImageSource `validate:"-"`
}

type SliderService struct {
	repo     repository.SliderRepository
	resolver *media.Resolver
	bus      EventBus.Bus
}

func (s *SliderService) List(ctx context.Context) ([]domain.SliderItem, error) {
	return s.repo.List(ctx)
}

func (s *SliderService) Create(ctx context.Context, in SliderInput) (*domain.SliderItem, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	image, err := s.resolver.Resolve(ctx, in.Image)
	if err != nil {
		return nil, err
	}
	item := &domain.SliderItem{
		ID:       in.ID,
		Image:    image,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Link:     in.Link,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		discard(ctx, s.resolver, image, "")
		return nil, err
	}
	publish(s.bus, TopicCreated, Event{Kind: KindSlider, ID: item.ID, Image: item.Image})
	return item, nil
}

func (s *SliderService) Update(ctx context.Context, id string, in SliderInput) (*domain.SliderItem, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	image, err := s.resolver.ResolveOrKeep(ctx, in.Image, existing.Image)
	if err != nil {
		return nil, err
	}
	fields := domain.Fields{
		domain.FieldImage:    image,
		domain.FieldTitle:    in.Title,
		domain.FieldSubtitle: in.Subtitle,
		domain.FieldLink:     in.Link,
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		discard(ctx, s.resolver, image, existing.Image)
		return nil, err
	}
	ev := Event{Kind: KindSlider, ID: id, Image: image}
	if image != existing.Image {
		ev.PrevImage = existing.Image
	}
	publish(s.bus, TopicUpdated, ev)
	return s.repo.Get(ctx, id)
}

func (s *SliderService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(s.bus, TopicDeleted, Event{Kind: KindSlider, ID: id, Image: existing.Image})
	return nil
}
