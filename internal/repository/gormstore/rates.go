package gormstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

type RateRepository struct {
	db *gorm.DB
}

var _ repository.RateRepository = (*RateRepository)(nil)

func (r *RateRepository) Get(ctx context.Context, key string) (*domain.MetalRate, error) {
	var row RateRow
	if err := r.db.WithContext(ctx).Where("rate_key = ?", key).First(&row).Error; err != nil {
		return nil, mapErr(err, "rates "+key)
	}
	return row.toDomain(), nil
}

// UpsertSingleton locks the row (postgres) while the previous values are carried over
func (r *RateRepository) UpsertSingleton(ctx context.Context, key string, gold, silver float64) (*domain.MetalRate, error) {
	var next domain.MetalRate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var row RateRow
		var current *domain.MetalRate
		err := q.Where("rate_key = ?", key).First(&row).Error
		switch {
		case err == nil:
			current = row.toDomain()
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		next = domain.NextRate(current, gold, silver, time.Now())
		next.Key = key
		return tx.Save(&RateRow{
			Key:            key,
			Gold:           next.Gold,
			Silver:         next.Silver,
			LastUpdated:    next.LastUpdated,
			PreviousGold:   next.PreviousGold,
			PreviousSilver: next.PreviousSilver,
		}).Error
	})
	if err != nil {
		return nil, mapErr(err, "upsert rates")
	}
	return &next, nil
}
