package boltstore

import (
	"context"
	"time"

	"go.etcd.io/bbolt"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

type RateRepository struct {
	db *bbolt.DB
}

var _ repository.RateRepository = (*RateRepository)(nil)

func (r *RateRepository) Get(ctx context.Context, key string) (*domain.MetalRate, error) {
	var rate domain.MetalRate
	err := r.db.View(func(tx *bbolt.Tx) error {
		return getDoc(tx, bucketRates, key, &rate)
	})
	if err != nil {
		return nil, unavailable(err)
	}
	rate.Key = key
	return &rate, nil
}

// UpsertSingleton reads and replaces the document in a single write transaction
func (r *RateRepository) UpsertSingleton(ctx context.Context, key string, gold, silver float64) (*domain.MetalRate, error) {
	var next domain.MetalRate
	err := r.db.Update(func(tx *bbolt.Tx) error {
		var current *domain.MetalRate
		if raw := tx.Bucket(bucketRates).Get([]byte(key)); raw != nil {
			current = &domain.MetalRate{}
			if err := json.Unmarshal(raw, current); err != nil {
				return err
			}
		}
		next = domain.NextRate(current, gold, silver, time.Now())
		next.Key = key
		return putDoc(tx, bucketRates, key, &next)
	})
	if err != nil {
		return nil, unavailable(err)
	}
	return &next, nil
}
