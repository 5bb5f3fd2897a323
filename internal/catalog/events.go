package catalog

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/shreejewels/storefront/internal/media"
	"github.com/shreejewels/storefront/pkg/metrics"
)

const (
	TopicCreated = "catalog:created"
	TopicUpdated = "catalog:updated"
	TopicDeleted = "catalog:deleted"
)

type Kind string

const (
	KindProduct Kind = "product"
	KindSlider  Kind = "slider"
	KindRates   Kind = "rates"
)

// Event describes one committed mutation. PrevImage is set when an update replaced the image.
type Event struct {
	Kind      Kind
	ID        string
	Image     string
	PrevImage string
	At        time.Time
}

func auditEvent(topic string) func(Event) {
	return func(ev Event) {
		metrics.Incr(metrics.MetricAdminMutations)
		zap.L().Info("catalog mutation",
			zap.String("topic", topic),
			zap.String("kind", string(ev.Kind)),
			zap.String("id", ev.ID),
			zap.Time("at", ev.At))
	}
}

// subscribe wires the audit log and the fire-and-forget media cleanup
func subscribe(bus EventBus.Bus, resolver *media.Resolver) error {
	for _, topic := range []string{TopicCreated, TopicUpdated, TopicDeleted} {
		if err := bus.Subscribe(topic, auditEvent(topic)); err != nil {
			return err
		}
	}
	if err := bus.SubscribeAsync(TopicDeleted, func(ev Event) {
		resolver.Delete(context.Background(), ev.Image)
	}, false); err != nil {
		return err
	}
	return bus.SubscribeAsync(TopicUpdated, func(ev Event) {
		if ev.PrevImage != "" && ev.PrevImage != ev.Image {
			resolver.Delete(context.Background(), ev.PrevImage)
		}
	}, false)
}
