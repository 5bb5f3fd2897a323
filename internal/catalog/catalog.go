// Package catalog runs admin mutations: resolve the image, persist, then publish.
package catalog

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"

	"github.com/shreejewels/storefront/internal/media"
	"github.com/shreejewels/storefront/internal/repository"
)

type Services struct {
	Products *ProductService
	Slider   *SliderService
	Rates    *RateService
	bus      EventBus.Bus
}

func NewServices(store repository.Store, resolver *media.Resolver) (*Services, error) {
	bus := EventBus.New()
	if err := subscribe(bus, resolver); err != nil {
		return nil, errors.Wrap(err, "subscribe catalog events")
	}
	return &Services{
		Products: &ProductService{repo: store.Products(), resolver: resolver, bus: bus},
		Slider:   &SliderService{repo: store.Slider(), resolver: resolver, bus: bus},
		Rates:    &RateService{repo: store.Rates(), bus: bus},
		bus:      bus,
	}, nil
}

// Wait blocks until pending async handlers (media cleanup) are done
func (s *Services) Wait() {
	s.bus.WaitAsync()
}

func publish(bus EventBus.Bus, topic string, ev Event) {
	ev.At = time.Now()
	bus.Publish(topic, ev)
}

// discard drops a freshly stored upload whose document write failed
func discard(ctx context.Context, resolver *media.Resolver, ref, kept string) {
	if ref != kept {
		resolver.Delete(ctx, ref)
	}
}
