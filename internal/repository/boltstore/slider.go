package boltstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

type SliderRepository struct {
	db *bbolt.DB
}

var _ repository.SliderRepository = (*SliderRepository)(nil)

func checkSliderID(id string) error {
	if !repository.ValidSliderID(id) {
		return errors.Wrapf(domain.ErrInvalidID, "slider id %q", id)
	}
	return nil
}

func (r *SliderRepository) List(ctx context.Context) ([]domain.SliderItem, error) {
	items, err := listDocs[domain.SliderItem](r.db, bucketSlider)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (r *SliderRepository) Get(ctx context.Context, id string) (*domain.SliderItem, error) {
	if err := checkSliderID(id); err != nil {
		return nil, err
	}
	var item domain.SliderItem
	err := r.db.View(func(tx *bbolt.Tx) error {
		return getDoc(tx, bucketSlider, id, &item)
	})
	if err != nil {
		return nil, unavailable(err)
	}
	return &item, nil
}

func (r *SliderRepository) Create(ctx context.Context, item *domain.SliderItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	} else if err := checkSliderID(item.ID); err != nil {
		return err
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	return unavailable(r.db.Update(func(tx *bbolt.Tx) error {
		return insertDoc(tx, bucketSlider, item.ID, item)
	}))
}

func (r *SliderRepository) Update(ctx context.Context, id string, fields domain.Fields) error {
	if err := checkSliderID(id); err != nil {
		return err
	}
	return mergeDoc[domain.SliderItem](r.db, bucketSlider, id, repository.SliderUpdatable(fields))
}

func (r *SliderRepository) Delete(ctx context.Context, id string) error {
	if err := checkSliderID(id); err != nil {
		return err
	}
	return unavailable(r.db.Update(func(tx *bbolt.Tx) error {
		return deleteDoc(tx, bucketSlider, id)
	}))
}
