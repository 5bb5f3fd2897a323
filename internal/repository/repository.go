// Package repository defines the persistence contracts of the storefront.
// Backends live in the boltstore, mongostore and gormstore sub packages.
package repository

import (
	"context"
	"strings"

	"github.com/shreejewels/storefront/internal/domain"
)

// ProductRepository handles product documents.
// List returns newest first.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	// Create assigns an identity when p.ID is empty and stamps CreatedAt/UpdatedAt
	Create(ctx context.Context, p *domain.Product) error
	// Update merges fields into the stored document and stamps UpdatedAt
	Update(ctx context.Context, id string, fields domain.Fields) error
	Delete(ctx context.Context, id string) error
}

// SliderRepository handles hero slider documents.
// List returns insertion order.
type SliderRepository interface {
	List(ctx context.Context) ([]domain.SliderItem, error)
	Get(ctx context.Context, id string) (*domain.SliderItem, error)
	Create(ctx context.Context, item *domain.SliderItem) error
	Update(ctx context.Context, id string, fields domain.Fields) error
	Delete(ctx context.Context, id string) error
}

// RateRepository handles the metal rate singleton
type RateRepository interface {
	// Get returns domain.ErrNotFound until the first upsert
	Get(ctx context.Context, key string) (*domain.MetalRate, error)
	// UpsertSingleton replaces the document under key, carrying the replaced
	// gold/silver values into PreviousGold/PreviousSilver.
	UpsertSingleton(ctx context.Context, key string, gold, silver float64) (*domain.MetalRate, error)
}

// Store bundles the three collections of one backend
type Store interface {
	Name() string
	Products() ProductRepository
	Slider() SliderRepository
	Rates() RateRepository
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// ProductUpdatable removes keys that must never be overwritten by an update
func ProductUpdatable(fields domain.Fields) domain.Fields {
	return fields.Only(domain.ProductFields)
}

func SliderUpdatable(fields domain.Fields) domain.Fields {
	return fields.Only(domain.SliderFields)
}

const maxSliderIDLen = 64

// ValidSliderID reports whether id can be used as a client generated slider identity
func ValidSliderID(id string) bool {
	if id == "" || len(id) > maxSliderIDLen {
		return false
	}
	return !strings.ContainsAny(id, "/\\ \t\r\n$")
}
