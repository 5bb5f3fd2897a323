package gormstore

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
	"github.com/shreejewels/storefront/pkg/common"
)

type ProductRepository struct {
	db *gorm.DB
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.Wrapf(domain.ErrInvalidID, "product id %q", id)
	}
	return n, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var rows []ProductRow
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, mapErr(err, "list products")
	}
	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain())
	}
	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row ProductRow
	if err := r.db.WithContext(ctx).Where("id = ?", n).First(&row).Error; err != nil {
		return nil, mapErr(err, "product "+id)
	}
	p := row.toDomain()
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	id := common.UUIDint64()
	if p.ID != "" {
		var err error
		if id, err = parseID(p.ID); err != nil {
			return err
		}
	}
	now := time.Now()
	row := ProductRow{
		ID:          id,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Metal:       p.Metal,
		Purity:      p.Purity,
		Weight:      p.Weight,
		InStock:     p.InStock,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapErr(err, "create product")
	}
	p.ID = strconv.FormatInt(id, 10)
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, fields domain.Fields) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&ProductRow{}).Where("id = ?", n).
		Updates(toColumns(repository.ProductUpdatable(fields)))
	if res.Error != nil {
		return mapErr(res.Error, "update product "+id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(domain.ErrNotFound, "product %s", id)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where("id = ?", n).Delete(&ProductRow{})
	if res.Error != nil {
		return mapErr(res.Error, "delete product "+id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(domain.ErrNotFound, "product %s", id)
	}
	return nil
}
