package boltstore

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
	"github.com/shreejewels/storefront/pkg/common"
)

// ProductRepository stores products under their snowflake id
type ProductRepository struct {
	db *bbolt.DB
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func parseProductID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.Wrapf(domain.ErrInvalidID, "product id %q", id)
	}
	return n, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	products, err := listDocs[domain.Product](r.db, bucketProducts)
	if err != nil {
		return nil, err
	}
	// snowflake ids grow with creation time
	sort.SliceStable(products, func(i, j int) bool {
		a, _ := strconv.ParseInt(products[i].ID, 10, 64)
		b, _ := strconv.ParseInt(products[j].ID, 10, 64)
		return a > b
	})
	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := parseProductID(id); err != nil {
		return nil, err
	}
	var p domain.Product
	err := r.db.View(func(tx *bbolt.Tx) error {
		return getDoc(tx, bucketProducts, id, &p)
	})
	if err != nil {
		return nil, unavailable(err)
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = common.UUIDString()
	} else if _, err := parseProductID(p.ID); err != nil {
		return err
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return unavailable(r.db.Update(func(tx *bbolt.Tx) error {
		return insertDoc(tx, bucketProducts, p.ID, p)
	}))
}

func (r *ProductRepository) Update(ctx context.Context, id string, fields domain.Fields) error {
	if _, err := parseProductID(id); err != nil {
		return err
	}
	return mergeDoc[domain.Product](r.db, bucketProducts, id, repository.ProductUpdatable(fields))
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := parseProductID(id); err != nil {
		return err
	}
	return unavailable(r.db.Update(func(tx *bbolt.Tx) error {
		return deleteDoc(tx, bucketProducts, id)
	}))
}
