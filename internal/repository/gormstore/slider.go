package gormstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

type SliderRepository struct {
	db *gorm.DB
}

var _ repository.SliderRepository = (*SliderRepository)(nil)

func checkSliderID(id string) error {
	if !repository.ValidSliderID(id) {
		return errors.Wrapf(domain.ErrInvalidID, "slider id %q", id)
	}
	return nil
}

func (r *SliderRepository) List(ctx context.Context) ([]domain.SliderItem, error) {
	var rows []SliderRow
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, mapErr(err, "list slider")
	}
	items := make([]domain.SliderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

func (r *SliderRepository) Get(ctx context.Context, id string) (*domain.SliderItem, error) {
	if err := checkSliderID(id); err != nil {
		return nil, err
	}
	var row SliderRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, mapErr(err, "slider "+id)
	}
	item := row.toDomain()
	return &item, nil
}

func (r *SliderRepository) Create(ctx context.Context, item *domain.SliderItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	} else if err := checkSliderID(item.ID); err != nil {
		return err
	}
	now := time.Now()
	row := SliderRow{
		ID:        item.ID,
		Image:     item.Image,
		Title:     item.Title,
		Subtitle:  item.Subtitle,
		Link:      item.Link,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapErr(err, "create slider")
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (r *SliderRepository) Update(ctx context.Context, id string, fields domain.Fields) error {
	if err := checkSliderID(id); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&SliderRow{}).Where("id = ?", id).
		Updates(toColumns(repository.SliderUpdatable(fields)))
	if res.Error != nil {
		return mapErr(res.Error, "update slider "+id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(domain.ErrNotFound, "slider %s", id)
	}
	return nil
}

func (r *SliderRepository) Delete(ctx context.Context, id string) error {
	if err := checkSliderID(id); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&SliderRow{})
	if res.Error != nil {
		return mapErr(res.Error, "delete slider "+id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(domain.ErrNotFound, "slider %s", id)
	}
	return nil
}
