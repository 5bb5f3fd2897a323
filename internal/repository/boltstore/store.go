// Package boltstore keeps the storefront collections as JSON documents in a bbolt file.
package boltstore

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	bucketRates    = []byte("rates")
	bucketSlider   = []byte("slider")
	bucketProducts = []byte("products")
)

type Store struct {
	db       *bbolt.DB
	products *ProductRepository
	slider   *SliderRepository
	rates    *RateRepository
}

var _ repository.Store = (*Store)(nil)

// Open opens (or creates) the database file and its buckets
func Open(path string, timeout time.Duration) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: timeout})
	if err != nil {
		return nil, errors.Wrapf(domain.ErrStoreUnavailable, "open bolt %s: %v", path, err)
	}
	s := &Store{
		db:       db,
		products: &ProductRepository{db: db},
		slider:   &SliderRepository{db: db},
		rates:    &RateRepository{db: db},
	}
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Name() string { return "bolt" }

func (s *Store) Products() repository.ProductRepository { return s.products }
func (s *Store) Slider() repository.SliderRepository    { return s.slider }
func (s *Store) Rates() repository.RateRepository       { return s.rates }

func (s *Store) Migrate(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketRates, bucketSlider, bucketProducts} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return errors.Wrapf(domain.ErrStoreUnavailable, "create bucket %s: %v", b, err)
			}
		}
		return nil
	})
}

// Drop deletes the buckets, Migrate recreates them empty
func (s *Store) Drop(ctx context.Context) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketRates, bucketSlider, bucketProducts} {
			if err := tx.DeleteBucket(b); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
				return err
			}
		}
		return nil
	})
	return unavailable(err)
}

func (s *Store) Ping(ctx context.Context) error {
	return unavailable(s.db.View(func(tx *bbolt.Tx) error { return nil }))
}

func (s *Store) Close() error {
	return s.db.Close()
}

// unavailable maps bolt level failures onto domain.ErrStoreUnavailable,
// domain errors pass through untouched.
func unavailable(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{domain.ErrNotFound, domain.ErrInvalidID, domain.ErrValidation, domain.ErrStoreUnavailable} {
		if errors.Is(err, known) {
			return err
		}
	}
	return errors.Wrap(domain.ErrStoreUnavailable, err.Error())
}

func getDoc(tx *bbolt.Tx, bucket []byte, id string, out interface{}) error {
	raw := tx.Bucket(bucket).Get([]byte(id))
	if raw == nil {
		return errors.Wrapf(domain.ErrNotFound, "%s %s", bucket, id)
	}
	return json.Unmarshal(raw, out)
}

func putDoc(tx *bbolt.Tx, bucket []byte, id string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return tx.Bucket(bucket).Put([]byte(id), raw)
}

// insertDoc refuses to overwrite an existing document
func insertDoc(tx *bbolt.Tx, bucket []byte, id string, v interface{}) error {
	if tx.Bucket(bucket).Get([]byte(id)) != nil {
		return errors.Wrapf(domain.NewValidationError("id", "already exists"), "%s %s", bucket, id)
	}
	return putDoc(tx, bucket, id, v)
}

func deleteDoc(tx *bbolt.Tx, bucket []byte, id string) error {
	b := tx.Bucket(bucket)
	if b.Get([]byte(id)) == nil {
		return errors.Wrapf(domain.ErrNotFound, "%s %s", bucket, id)
	}
	return b.Delete([]byte(id))
}

func listDocs[T any](db *bbolt.DB, bucket []byte) ([]T, error) {
	items := []T{}
	err := db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(k, v []byte) error {
			var item T
			if err := json.Unmarshal(v, &item); err != nil {
				return errors.Wrapf(err, "decode %s %s", bucket, k)
			}
			items = append(items, item)
			return nil
		})
	})
	return items, unavailable(err)
}

type touchable interface {
	Touch(t time.Time)
}

// mergeDoc decodes fields over the stored document inside one write transaction
func mergeDoc[T any, PT interface {
	*T
	touchable
}](db *bbolt.DB, bucket []byte, id string, fields domain.Fields) error {
	err := db.Update(func(tx *bbolt.Tx) error {
		var doc T
		if err := getDoc(tx, bucket, id, &doc); err != nil {
			return err
		}
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "mapstructure",
			WeaklyTypedInput: true,
			Result:           &doc,
		})
		if err != nil {
			return err
		}
		if err := dec.Decode(map[string]interface{}(fields)); err != nil {
			return errors.Wrap(domain.NewValidationError("", err.Error()), "merge fields")
		}
		PT(&doc).Touch(time.Now())
		return putDoc(tx, bucket, id, &doc)
	})
	return unavailable(err)
}
